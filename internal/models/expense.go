package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a single recorded expense.
//
// A personal expense has IsGroupExpense false and no participants. A group
// expense carries the full participant list (always including the payer) and
// the pre-split total in TotalAmount; the per-participant share is derived by
// the calculator package, never stored.
type Expense struct {
	// ID is the unique identifier for the expense (UUID format).
	ID string

	// Amount is the amount charged for this expense.
	Amount decimal.Decimal

	// Description is an optional free-form note.
	Description string

	// Date is the day the expense occurred.
	Date time.Time

	// Category is the category name (e.g. "Food", "Transport").
	Category string

	// UserID is the owning user. For group expenses this is the payer,
	// the participant who covered the full amount up front.
	UserID string

	// IsGroupExpense marks an expense shared among participants.
	IsGroupExpense bool

	// TotalAmount is the pre-split total. Only meaningful when
	// IsGroupExpense is true; zero otherwise.
	TotalAmount decimal.Decimal

	// ParticipantIDs lists the users splitting this expense, including the
	// payer. Empty for personal expenses. Order carries no meaning.
	ParticipantIDs []string

	// CreatedAt is when the record was inserted.
	CreatedAt time.Time
}
