package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Settlement represents a payment between two users to clear debt.
//
// Settlements are a dedicated record type rather than a disguised expense:
// the balance engine interprets them with the opposite sign of an expense,
// so a payment From -> To reduces what From owes To instead of creating a
// new claim in the payer's favor.
type Settlement struct {
	// ID is the unique identifier for the settlement (UUID format).
	ID string

	// FromUserID is the user who paid (debtor settling up).
	FromUserID string

	// ToUserID is the user who received payment (creditor being paid).
	ToUserID string

	// Amount is the payment amount.
	Amount decimal.Decimal

	// Date is the day the payment was made.
	Date time.Time

	// Note is an optional description for the settlement.
	Note string

	// CreatedAt is when the record was inserted.
	CreatedAt time.Time
}
