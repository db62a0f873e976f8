// Package repotest opens migrated throwaway databases for tests.
package repotest

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/fintrack/fintrack-go/internal/repository"
)

// NewSQLite returns a migrated SQLite database in a temporary directory.
// It is closed when the test finishes.
func NewSQLite(t testing.TB) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fintrack.db")
	db, err := repository.Open(context.Background(), repository.DriverSQLite, path)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}
