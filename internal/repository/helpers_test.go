package repository

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/fintrack/fintrack-go/internal/model"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := Open(context.Background(), DriverSQLite, filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err, "failed to open test database")
	t.Cleanup(func() { db.Close() })

	return db
}

func createTestUser(t *testing.T, db *sql.DB, email string) *model.User {
	t.Helper()

	user := &model.User{
		Email:        email,
		Name:         "Test User",
		PasswordHash: "hash",
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))

	return user
}
