package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/spendwise/spendwise/internal/models"
	"github.com/spendwise/spendwise/internal/storage"
)

// CreateBudget inserts a new budget into the database.
func (s *SQLiteStore) CreateBudget(ctx context.Context, budget *models.Budget) error {
	if budget.ID == "" {
		budget.ID = uuid.New().String()
	}
	if budget.CreatedAt.IsZero() {
		budget.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO budgets (id, amount, category, month, year, alert_threshold, user_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		budget.ID, budget.Amount, budget.Category, budget.Month, budget.Year,
		budget.AlertThreshold, budget.UserID, budget.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert budget: %w", err)
	}

	return nil
}

// UpdateBudget replaces the amount and alert threshold of an existing budget.
func (s *SQLiteStore) UpdateBudget(ctx context.Context, budget *models.Budget) error {
	res, err := s.db.ExecContext(ctx,
		"UPDATE budgets SET amount = ?, alert_threshold = ? WHERE id = ?",
		budget.Amount, budget.AlertThreshold, budget.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update budget: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("budget not found: %s", budget.ID)
	}
	return nil
}

// GetBudgetByPeriod retrieves the budget for one (user, category, month,
// year). There is at most one thanks to the unique constraint.
func (s *SQLiteStore) GetBudgetByPeriod(ctx context.Context, userID, category string, month, year int) (*models.Budget, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, amount, category, month, year, alert_threshold, user_id, created_at
		 FROM budgets WHERE user_id = ? AND category = ? AND month = ? AND year = ?`,
		userID, category, month, year,
	)

	budget, err := scanBudget(row)
	if err == sql.ErrNoRows {
		return nil, nil // budget not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get budget: %w", err)
	}

	return budget, nil
}

// ListBudgets returns the owner's budgets matching the filter, most recent
// period first.
func (s *SQLiteStore) ListBudgets(ctx context.Context, filter storage.BudgetFilter) ([]*models.Budget, error) {
	query := `SELECT id, amount, category, month, year, alert_threshold, user_id, created_at
		 FROM budgets WHERE user_id = ?`
	args := []any{filter.UserID}

	if filter.Month != 0 {
		query += " AND month = ?"
		args = append(args, filter.Month)
	}
	if filter.Year != 0 {
		query += " AND year = ?"
		args = append(args, filter.Year)
	}
	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	query += " ORDER BY year DESC, month DESC, category"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	var budgets []*models.Budget
	for rows.Next() {
		budget, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget: %w", err)
		}
		budgets = append(budgets, budget)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate budgets: %w", err)
	}

	return budgets, nil
}

// DeleteBudget removes a budget owned by userID.
func (s *SQLiteStore) DeleteBudget(ctx context.Context, budgetID, userID string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM budgets WHERE id = ? AND user_id = ?",
		budgetID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete budget: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return affected > 0, nil
}

func scanBudget(row rowScanner) (*models.Budget, error) {
	budget := &models.Budget{}
	var createdAt int64

	err := row.Scan(&budget.ID, &budget.Amount, &budget.Category, &budget.Month,
		&budget.Year, &budget.AlertThreshold, &budget.UserID, &createdAt)
	if err != nil {
		return nil, err
	}

	budget.CreatedAt = time.Unix(createdAt, 0).UTC()
	return budget, nil
}
