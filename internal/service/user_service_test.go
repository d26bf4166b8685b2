package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store)
	ctx := context.Background()

	user, err := svc.CreateUser(ctx, "  alice  ", "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username, "username is trimmed")
	assert.NotEmpty(t, user.ID)

	got, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "alice", got.Username)
}

func TestCreateUserValidation(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store)
	ctx := context.Background()

	tests := []struct {
		name     string
		username string
		email    string
	}{
		{"empty username", "", "a@example.com"},
		{"whitespace username", "   ", "a@example.com"},
		{"empty email", "alice", ""},
		{"email without at sign", "alice", "not-an-email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateUser(ctx, tt.username, tt.email)
			assert.Error(t, err)
		})
	}
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store)
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, "alice", "alice@example.com")
	require.NoError(t, err)

	_, err = svc.CreateUser(ctx, "alice", "other@example.com")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already taken")
}

func TestGetUserAbsent(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store)

	got, err := svc.GetUser(context.Background(), "nonexistent-id")
	require.NoError(t, err)
	assert.Nil(t, got)
}
