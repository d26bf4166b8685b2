package service

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/spendwise/spendwise/internal/models"
	"github.com/spendwise/spendwise/internal/storage"
	"github.com/spendwise/spendwise/internal/storage/sqlite"
)

// newTestStore opens a fresh SQLite store in a per-test temp directory.
func newTestStore(t *testing.T) storage.Store {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to open test store")
	t.Cleanup(func() { store.Close() })

	return store
}

func createTestUser(t *testing.T, store storage.Store, username string) *models.User {
	t.Helper()

	user := &models.User{Username: username, Email: username + "@example.com"}
	require.NoError(t, store.CreateUser(context.Background(), user))
	return user
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func march(d int) time.Time {
	return time.Date(2026, time.March, d, 0, 0, 0, 0, time.UTC)
}
