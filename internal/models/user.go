package models

import "time"

// User represents a registered account.
type User struct {
	// ID is the unique identifier for the user (UUID format).
	ID string

	// Username is the unique display name of the user.
	Username string

	// Email is the user's email address (unique).
	// Used as the default recipient for budget alert notifications.
	Email string

	// CreatedAt is when the account was created.
	CreatedAt time.Time
}
