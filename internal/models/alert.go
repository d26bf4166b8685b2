package models

import "time"

// Alert represents a persisted budget-threshold notification.
// Alerts are created by the alert evaluator, mutated only via read/unread
// toggling, and never deleted automatically.
type Alert struct {
	// ID is the unique identifier for the alert (UUID format).
	ID string

	// Message is the human-readable alert text.
	Message string

	// IsRead reports whether the user has acknowledged the alert.
	IsRead bool

	// UserID is the owning user.
	UserID string

	// BudgetID references the budget that triggered the alert.
	// Empty when the originating budget could not be resolved.
	BudgetID string

	// CreatedAt is when the alert was raised.
	CreatedAt time.Time
}
