package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget represents a monthly spending target for one category.
// At most one budget exists per (user, category, month, year); setting the
// same period again updates the existing record in place.
type Budget struct {
	// ID is the unique identifier for the budget (UUID format).
	ID string

	// Amount is the budgeted amount for the period.
	Amount decimal.Decimal

	// Category is the category name this budget applies to.
	Category string

	// Month is the calendar month (1-12).
	Month int

	// Year is the calendar year.
	Year int

	// AlertThreshold is the fraction of Amount (in [0, 1]) at which an
	// alert should be raised.
	AlertThreshold float64

	// UserID is the owning user.
	UserID string

	// CreatedAt is when the record was inserted.
	CreatedAt time.Time
}
