package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spendwise/spendwise/internal/models"
)

// CreateAlerts persists a batch of alerts in a single transaction, so an
// evaluation pass either commits every triggered alert or none of them.
func (s *SQLiteStore) CreateAlerts(ctx context.Context, alerts []*models.Alert) error {
	if len(alerts) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, alert := range alerts {
		if alert.ID == "" {
			alert.ID = uuid.New().String()
		}
		if alert.CreatedAt.IsZero() {
			alert.CreatedAt = time.Now().UTC()
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO alerts (id, message, is_read, user_id, budget_id, created_at)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			alert.ID, alert.Message, alert.IsRead, alert.UserID,
			nullString(alert.BudgetID), alert.CreatedAt.Unix(),
		)
		if err != nil {
			return fmt.Errorf("failed to insert alert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// ListAlerts returns the owner's alerts, newest first. Read alerts are
// excluded unless includeRead is set.
func (s *SQLiteStore) ListAlerts(ctx context.Context, userID string, includeRead bool) ([]*models.Alert, error) {
	query := `SELECT id, message, is_read, user_id, budget_id, created_at
		 FROM alerts WHERE user_id = ?`
	if !includeRead {
		query += " AND is_read = 0"
	}
	query += " ORDER BY created_at DESC, id"

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*models.Alert
	for rows.Next() {
		alert := &models.Alert{}
		var (
			budgetID  sql.NullString
			createdAt int64
		)
		if err := rows.Scan(&alert.ID, &alert.Message, &alert.IsRead, &alert.UserID, &budgetID, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan alert: %w", err)
		}
		if budgetID.Valid {
			alert.BudgetID = budgetID.String
		}
		alert.CreatedAt = time.Unix(createdAt, 0).UTC()
		alerts = append(alerts, alert)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate alerts: %w", err)
	}

	return alerts, nil
}

// HasUnreadBudgetAlert reports whether an unread alert referencing the given
// budget already exists.
func (s *SQLiteStore) HasUnreadBudgetAlert(ctx context.Context, budgetID string) (bool, error) {
	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT 1 FROM alerts WHERE budget_id = ? AND is_read = 0 LIMIT 1",
		budgetID,
	).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check unread alerts: %w", err)
	}
	return true, nil
}

// MarkAlertRead marks one alert owned by userID as read.
func (s *SQLiteStore) MarkAlertRead(ctx context.Context, alertID, userID string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE alerts SET is_read = 1 WHERE id = ? AND user_id = ?",
		alertID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to mark alert read: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read update result: %w", err)
	}
	return affected > 0, nil
}

// MarkAllAlertsRead marks every unread alert owned by userID as read and
// returns how many actually transitioned.
func (s *SQLiteStore) MarkAllAlertsRead(ctx context.Context, userID string) (int, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE alerts SET is_read = 1 WHERE user_id = ? AND is_read = 0",
		userID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark alerts read: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read update result: %w", err)
	}
	return int(affected), nil
}

// DeleteAlert removes an alert owned by userID.
func (s *SQLiteStore) DeleteAlert(ctx context.Context, alertID, userID string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM alerts WHERE id = ? AND user_id = ?",
		alertID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete alert: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return affected > 0, nil
}
