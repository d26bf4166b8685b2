package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/spendwise/spendwise/internal/models"
	"github.com/spendwise/spendwise/internal/storage"
)

// ExpenseService manages personal expense records and period aggregates.
type ExpenseService struct {
	store storage.Store
}

// NewExpenseService creates a new ExpenseService with the given storage
// backend.
func NewExpenseService(store storage.Store) *ExpenseService {
	return &ExpenseService{store: store}
}

// AddExpenseParams describes one expense to record.
type AddExpenseParams struct {
	Amount      decimal.Decimal
	Category    string
	Description string
	Date        time.Time // zero means today
	UserID      string
}

// CategoryTotal is an aggregated expense total for one category.
type CategoryTotal struct {
	Category string
	Total    decimal.Decimal
}

// MonthTotal is an aggregated expense total for one month.
type MonthTotal struct {
	Month int
	Total decimal.Decimal
}

// AddExpense records a new personal expense.
func (s *ExpenseService) AddExpense(ctx context.Context, p AddExpenseParams) (*models.Expense, error) {
	if !p.Amount.IsPositive() {
		return nil, fmt.Errorf("amount must be positive, got %s", p.Amount)
	}
	if p.Category == "" {
		return nil, fmt.Errorf("category must not be empty")
	}
	if p.UserID == "" {
		return nil, fmt.Errorf("user id must not be empty")
	}
	if p.Date.IsZero() {
		p.Date = time.Now().UTC()
	}

	expense := &models.Expense{
		Amount:      p.Amount,
		Description: p.Description,
		Date:        p.Date,
		Category:    p.Category,
		UserID:      p.UserID,
	}
	if err := s.store.CreateExpense(ctx, expense); err != nil {
		return nil, err
	}

	slog.Debug("expense recorded",
		"expense_id", expense.ID,
		"user_id", expense.UserID,
		"category", expense.Category,
		"amount", expense.Amount,
	)
	return expense, nil
}

// Expenses returns the owner's expenses matching the filter, newest first.
func (s *ExpenseService) Expenses(ctx context.Context, filter storage.ExpenseFilter) ([]*models.Expense, error) {
	return s.store.ListExpenses(ctx, filter)
}

// DeleteExpense removes an expense owned by userID. A false result means not
// found or not owned; the caller cannot tell which.
func (s *ExpenseService) DeleteExpense(ctx context.Context, expenseID, userID string) (bool, error) {
	return s.store.DeleteExpense(ctx, expenseID, userID)
}

// TotalsByCategory sums the user's expenses per category for one month,
// sorted by category name.
func (s *ExpenseService) TotalsByCategory(ctx context.Context, month, year int, userID string) ([]CategoryTotal, error) {
	from, to, err := monthInterval(month, year)
	if err != nil {
		return nil, err
	}

	expenses, err := s.store.ListExpenses(ctx, storage.ExpenseFilter{UserID: userID, From: from, To: to})
	if err != nil {
		return nil, err
	}

	byCategory := make(map[string]decimal.Decimal)
	for _, expense := range expenses {
		byCategory[expense.Category] = byCategory[expense.Category].Add(expense.Amount)
	}

	totals := make([]CategoryTotal, 0, len(byCategory))
	for category, total := range byCategory {
		totals = append(totals, CategoryTotal{Category: category, Total: total})
	}
	sort.Slice(totals, func(i, j int) bool { return totals[i].Category < totals[j].Category })

	return totals, nil
}

// TotalsByMonth sums the user's expenses per month for one year. The result
// always has twelve entries, January through December.
func (s *ExpenseService) TotalsByMonth(ctx context.Context, year int, userID string) ([]MonthTotal, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC)

	expenses, err := s.store.ListExpenses(ctx, storage.ExpenseFilter{UserID: userID, From: from, To: to})
	if err != nil {
		return nil, err
	}

	totals := make([]MonthTotal, 12)
	for i := range totals {
		totals[i].Month = i + 1
	}
	for _, expense := range expenses {
		m := int(expense.Date.Month())
		totals[m-1].Total = totals[m-1].Total.Add(expense.Amount)
	}

	return totals, nil
}

// monthInterval returns the half-open interval [first of month, first of
// next month). December rolls over to January of the following year.
func monthInterval(month, year int) (time.Time, time.Time, error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("month must be between 1 and 12, got %d", month)
	}
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)
	return from, to, nil
}
