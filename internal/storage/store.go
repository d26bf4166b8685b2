// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"time"

	"github.com/spendwise/spendwise/internal/models"
)

// ExpenseFilter selects expenses owned by one user, optionally narrowed by
// category and date range. The range is half-open: From inclusive, To
// exclusive. Zero times mean unbounded.
type ExpenseFilter struct {
	UserID   string
	Category string
	From     time.Time
	To       time.Time
}

// BudgetFilter selects budgets owned by one user, optionally narrowed by
// period and category. Zero Month/Year mean any.
type BudgetFilter struct {
	UserID   string
	Month    int
	Year     int
	Category string
}

// Store defines the interface for record storage.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL,
// etc.) without changing the service layer.
//
// Mutations keyed by id plus owner (DeleteExpense, MarkAlertRead, ...)
// report "not found or not owned" as (false, nil) rather than an error, so
// callers can present a uniform message without distinguishing the two.
type Store interface {
	// CreateUser persists a new user. The ID and CreatedAt fields are
	// populated by the store when unset.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUser retrieves a user by ID. Returns (nil, nil) when absent.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// GetUserByUsername retrieves a user by username. Returns (nil, nil)
	// when absent.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// ListUsers returns all users ordered by username.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// CreateExpense persists an expense together with its participant set
	// in one transaction.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID, including participants.
	// Returns (nil, nil) when absent.
	GetExpense(ctx context.Context, expenseID string) (*models.Expense, error)

	// ListExpenses returns the owner's expenses matching the filter,
	// newest date first.
	ListExpenses(ctx context.Context, filter ExpenseFilter) ([]*models.Expense, error)

	// ListSharedExpenses returns every group expense the given user
	// participates in, in stable expense-ID order.
	ListSharedExpenses(ctx context.Context, participantID string) ([]*models.Expense, error)

	// DeleteExpense removes an expense owned by userID.
	DeleteExpense(ctx context.Context, expenseID, userID string) (bool, error)

	// CreateBudget persists a new budget.
	CreateBudget(ctx context.Context, budget *models.Budget) error

	// UpdateBudget replaces the amount and alert threshold of an existing
	// budget.
	UpdateBudget(ctx context.Context, budget *models.Budget) error

	// GetBudgetByPeriod retrieves the budget for one (user, category,
	// month, year). Returns (nil, nil) when absent.
	GetBudgetByPeriod(ctx context.Context, userID, category string, month, year int) (*models.Budget, error)

	// ListBudgets returns the owner's budgets matching the filter, most
	// recent period first.
	ListBudgets(ctx context.Context, filter BudgetFilter) ([]*models.Budget, error)

	// DeleteBudget removes a budget owned by userID.
	DeleteBudget(ctx context.Context, budgetID, userID string) (bool, error)

	// CreateAlerts persists a batch of alerts atomically: either the whole
	// evaluation pass commits or none of it does.
	CreateAlerts(ctx context.Context, alerts []*models.Alert) error

	// ListAlerts returns the owner's alerts, newest first. Read alerts are
	// excluded unless includeRead is set.
	ListAlerts(ctx context.Context, userID string, includeRead bool) ([]*models.Alert, error)

	// HasUnreadBudgetAlert reports whether an unread alert referencing the
	// given budget already exists.
	HasUnreadBudgetAlert(ctx context.Context, budgetID string) (bool, error)

	// MarkAlertRead marks one alert owned by userID as read.
	MarkAlertRead(ctx context.Context, alertID, userID string) (bool, error)

	// MarkAllAlertsRead marks every unread alert owned by userID as read
	// and returns how many actually transitioned.
	MarkAllAlertsRead(ctx context.Context, userID string) (int, error)

	// DeleteAlert removes an alert owned by userID.
	DeleteAlert(ctx context.Context, alertID, userID string) (bool, error)

	// CreateSettlement persists a new settlement.
	CreateSettlement(ctx context.Context, settlement *models.Settlement) error

	// ListSettlementsForUser returns every settlement the user is a party
	// to, on either side, oldest first.
	ListSettlementsForUser(ctx context.Context, userID string) ([]*models.Settlement, error)

	// Close releases any resources held by the store.
	Close() error
}
