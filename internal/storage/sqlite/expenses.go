package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/spendwise/spendwise/internal/models"
	"github.com/spendwise/spendwise/internal/storage"
)

// CreateExpense persists an expense and its participant set in one
// transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.ID == "" {
		expense.ID = uuid.New().String()
	}
	if expense.CreatedAt.IsZero() {
		expense.CreatedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var totalAmount any
	if expense.IsGroupExpense {
		totalAmount = expense.TotalAmount
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO expenses (id, amount, description, date, category, user_id, is_group_expense, total_amount, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		expense.ID, expense.Amount, nullString(expense.Description), expense.Date.Unix(),
		expense.Category, expense.UserID, expense.IsGroupExpense, totalAmount,
		expense.CreatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}

	for _, participantID := range expense.ParticipantIDs {
		_, err = tx.ExecContext(ctx,
			"INSERT INTO expense_participants (expense_id, user_id) VALUES (?, ?)",
			expense.ID, participantID,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// GetExpense retrieves an expense by ID, including its participants.
func (s *SQLiteStore) GetExpense(ctx context.Context, expenseID string) (*models.Expense, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, amount, description, date, category, user_id, is_group_expense, total_amount, created_at
		 FROM expenses WHERE id = ?`,
		expenseID,
	)

	expense, err := scanExpense(row)
	if err == sql.ErrNoRows {
		return nil, nil // expense not found
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	if err := s.loadParticipants(ctx, []*models.Expense{expense}); err != nil {
		return nil, err
	}

	return expense, nil
}

// ListExpenses returns the owner's expenses matching the filter, newest date
// first.
func (s *SQLiteStore) ListExpenses(ctx context.Context, filter storage.ExpenseFilter) ([]*models.Expense, error) {
	query := `SELECT id, amount, description, date, category, user_id, is_group_expense, total_amount, created_at
		 FROM expenses WHERE user_id = ?`
	args := []any{filter.UserID}

	if filter.Category != "" {
		query += " AND category = ?"
		args = append(args, filter.Category)
	}
	if !filter.From.IsZero() {
		query += " AND date >= ?"
		args = append(args, filter.From.Unix())
	}
	if !filter.To.IsZero() {
		query += " AND date < ?"
		args = append(args, filter.To.Unix())
	}
	query += " ORDER BY date DESC, id"

	return s.queryExpenses(ctx, query, args...)
}

// ListSharedExpenses returns every group expense the given user participates
// in, in stable expense-ID order.
func (s *SQLiteStore) ListSharedExpenses(ctx context.Context, participantID string) ([]*models.Expense, error) {
	query := `SELECT e.id, e.amount, e.description, e.date, e.category, e.user_id, e.is_group_expense, e.total_amount, e.created_at
		 FROM expenses e
		 JOIN expense_participants ep ON ep.expense_id = e.id
		 WHERE ep.user_id = ? AND e.is_group_expense = 1
		 ORDER BY e.id`

	return s.queryExpenses(ctx, query, participantID)
}

// DeleteExpense removes an expense owned by userID. Participants cascade.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, expenseID, userID string) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"DELETE FROM expenses WHERE id = ? AND user_id = ?",
		expenseID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to delete expense: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read delete result: %w", err)
	}
	return affected > 0, nil
}

func (s *SQLiteStore) queryExpenses(ctx context.Context, query string, args ...any) ([]*models.Expense, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		expense, err := scanExpense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	if err := s.loadParticipants(ctx, expenses); err != nil {
		return nil, err
	}

	return expenses, nil
}

// loadParticipants fills ParticipantIDs for each group expense.
func (s *SQLiteStore) loadParticipants(ctx context.Context, expenses []*models.Expense) error {
	for _, expense := range expenses {
		if !expense.IsGroupExpense {
			continue
		}

		rows, err := s.db.QueryContext(ctx,
			"SELECT user_id FROM expense_participants WHERE expense_id = ? ORDER BY user_id",
			expense.ID,
		)
		if err != nil {
			return fmt.Errorf("failed to get participants: %w", err)
		}

		for rows.Next() {
			var participantID string
			if err := rows.Scan(&participantID); err != nil {
				rows.Close()
				return fmt.Errorf("failed to scan participant: %w", err)
			}
			expense.ParticipantIDs = append(expense.ParticipantIDs, participantID)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return fmt.Errorf("failed to iterate participants: %w", err)
		}
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExpense(row rowScanner) (*models.Expense, error) {
	expense := &models.Expense{}
	var (
		description sql.NullString
		date        int64
		totalAmount decimal.NullDecimal
		createdAt   int64
	)

	err := row.Scan(&expense.ID, &expense.Amount, &description, &date, &expense.Category,
		&expense.UserID, &expense.IsGroupExpense, &totalAmount, &createdAt)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		expense.Description = description.String
	}
	if totalAmount.Valid {
		expense.TotalAmount = totalAmount.Decimal
	}
	expense.Date = time.Unix(date, 0).UTC()
	expense.CreatedAt = time.Unix(createdAt, 0).UTC()

	return expense, nil
}

func nullString(s string) any {
	if s == "" {
		return nil
	}
	return s
}
