// Package service implements the storage-backed operations behind the CLI:
// expense bookkeeping, expense sharing and balances, budgets with threshold
// alerts, and report generation.
//
// Every operation takes the acting user's ID explicitly; there is no ambient
// default identity. Derived values (balances, budget status) are recomputed
// from the record sets on every call and never cached.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spendwise/spendwise/internal/models"
	"github.com/spendwise/spendwise/internal/storage"
)

// UserService manages user accounts.
type UserService struct {
	store storage.Store
}

// NewUserService creates a new UserService with the given storage backend.
func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

// CreateUser registers a new user with a unique username and email.
func (s *UserService) CreateUser(ctx context.Context, username, email string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(email)
	if username == "" {
		return nil, fmt.Errorf("username must not be empty")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("invalid email address: %q", email)
	}

	existing, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("username %q is already taken", username)
	}

	user := &models.User{Username: username, Email: email}
	if err := s.store.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	slog.Info("user created", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// GetUser retrieves a user by ID. Returns (nil, nil) when absent.
func (s *UserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	return s.store.GetUser(ctx, userID)
}

// ListUsers returns all users ordered by username.
func (s *UserService) ListUsers(ctx context.Context) ([]*models.User, error) {
	return s.store.ListUsers(ctx)
}
