package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/spendwise/spendwise/internal/models"
	"github.com/spendwise/spendwise/internal/storage"
)

// BudgetService manages monthly category budgets and evaluates their status.
type BudgetService struct {
	store storage.Store
}

// NewBudgetService creates a new BudgetService with the given storage
// backend.
func NewBudgetService(store storage.Store) *BudgetService {
	return &BudgetService{store: store}
}

// SetBudgetParams describes one budget to create or update.
type SetBudgetParams struct {
	UserID         string
	Category       string
	Amount         decimal.Decimal
	Month          int
	Year           int
	AlertThreshold float64
}

// BudgetStatus is the derived state of one budget for its period. It is
// computed fresh on every call and never persisted.
type BudgetStatus struct {
	BudgetID       string
	Category       string
	Budget         decimal.Decimal
	Spent          decimal.Decimal
	Remaining      decimal.Decimal
	PercentageUsed float64
	AlertThreshold float64
	Alert          bool
}

// SetBudget creates a budget for (user, category, month, year), or updates
// the existing one in place.
func (s *BudgetService) SetBudget(ctx context.Context, p SetBudgetParams) (*models.Budget, error) {
	if p.Amount.IsNegative() {
		return nil, fmt.Errorf("amount must not be negative, got %s", p.Amount)
	}
	if p.Category == "" {
		return nil, fmt.Errorf("category must not be empty")
	}
	if p.Month < 1 || p.Month > 12 {
		return nil, fmt.Errorf("month must be between 1 and 12, got %d", p.Month)
	}
	if p.AlertThreshold < 0 || p.AlertThreshold > 1 {
		return nil, fmt.Errorf("alert threshold must be between 0 and 1, got %g", p.AlertThreshold)
	}

	existing, err := s.store.GetBudgetByPeriod(ctx, p.UserID, p.Category, p.Month, p.Year)
	if err != nil {
		return nil, err
	}

	if existing != nil {
		existing.Amount = p.Amount
		existing.AlertThreshold = p.AlertThreshold
		if err := s.store.UpdateBudget(ctx, existing); err != nil {
			return nil, err
		}
		slog.Debug("budget updated", "budget_id", existing.ID, "category", p.Category)
		return existing, nil
	}

	budget := &models.Budget{
		Amount:         p.Amount,
		Category:       p.Category,
		Month:          p.Month,
		Year:           p.Year,
		AlertThreshold: p.AlertThreshold,
		UserID:         p.UserID,
	}
	if err := s.store.CreateBudget(ctx, budget); err != nil {
		return nil, err
	}

	slog.Debug("budget created", "budget_id", budget.ID, "category", p.Category)
	return budget, nil
}

// Budgets returns the owner's budgets matching the filter.
func (s *BudgetService) Budgets(ctx context.Context, filter storage.BudgetFilter) ([]*models.Budget, error) {
	return s.store.ListBudgets(ctx, filter)
}

// Status evaluates every budget the user holds for (month, year) against the
// expenses recorded in that period. Categories without a budget produce no
// row; unbudgeted spending is invisible here.
//
// A budget with amount zero reports PercentageUsed 0 rather than dividing
// by zero; its alert flag still follows percentage >= threshold.
func (s *BudgetService) Status(ctx context.Context, month, year int, userID string) ([]BudgetStatus, error) {
	from, to, err := monthInterval(month, year)
	if err != nil {
		return nil, err
	}

	budgets, err := s.store.ListBudgets(ctx, storage.BudgetFilter{UserID: userID, Month: month, Year: year})
	if err != nil {
		return nil, err
	}

	statuses := make([]BudgetStatus, 0, len(budgets))
	for _, budget := range budgets {
		expenses, err := s.store.ListExpenses(ctx, storage.ExpenseFilter{
			UserID:   userID,
			Category: budget.Category,
			From:     from,
			To:       to,
		})
		if err != nil {
			return nil, err
		}

		var spent decimal.Decimal
		for _, expense := range expenses {
			spent = spent.Add(expense.Amount)
		}

		status := BudgetStatus{
			BudgetID:       budget.ID,
			Category:       budget.Category,
			Budget:         budget.Amount,
			Spent:          spent,
			Remaining:      budget.Amount.Sub(spent),
			AlertThreshold: budget.AlertThreshold,
		}
		ratio := decimal.Zero
		if budget.Amount.IsPositive() {
			ratio = spent.Div(budget.Amount)
		}
		status.PercentageUsed = ratio.InexactFloat64()
		status.Alert = ratio.GreaterThanOrEqual(decimal.NewFromFloat(budget.AlertThreshold))
		statuses = append(statuses, status)
	}

	return statuses, nil
}

// DeleteBudget removes a budget owned by userID.
func (s *BudgetService) DeleteBudget(ctx context.Context, budgetID, userID string) (bool, error) {
	return s.store.DeleteBudget(ctx, budgetID, userID)
}
