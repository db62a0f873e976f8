package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// Supported database drivers.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// MySQL error numbers the store classifies.
const (
	mysqlDuplicateEntry  = 1062
	mysqlNoReferencedRow = 1452
)

// NewDB opens a connection pool for driver and verifies it with a ping.
// MySQL DSNs are normalised so that times are parsed as UTC and UPDATE
// reports matched rather than changed rows.
func NewDB(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	switch driver {
	case DriverMySQL:
		return newMySQL(ctx, dsn)
	case DriverSQLite:
		return newSQLite(ctx, dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Open applies pending migrations and then opens the application pool.
// SQLite must be given a file path since migrations use their own connection.
func Open(ctx context.Context, driver, dsn string) (*sql.DB, error) {
	if err := RunMigrations(driver, dsn); err != nil {
		return nil, err
	}
	return NewDB(ctx, driver, dsn)
}

func newMySQL(ctx context.Context, dsn string) (*sql.DB, error) {
	normalized, err := normalizeMySQLDSN(dsn, false)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(DriverMySQL, normalized)
	if err != nil {
		return nil, fmt.Errorf("open mysql: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping mysql: %w", err)
	}

	return db, nil
}

func newSQLite(ctx context.Context, path string) (*sql.DB, error) {
	if err := ensureSQLiteDir(path); err != nil {
		return nil, err
	}

	db, err := sql.Open(DriverSQLite, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// A single connection serialises writers and keeps :memory: databases coherent.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{"PRAGMA journal_mode=WAL", "PRAGMA foreign_keys=ON", "PRAGMA busy_timeout=5000"} {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite %s: %w", pragma, err)
		}
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}

	slog.Debug("sqlite database opened", "path", path)
	return db, nil
}

func ensureSQLiteDir(path string) error {
	if path == ":memory:" || strings.HasPrefix(path, "file:") {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create sqlite directory: %w", err)
	}
	return nil
}

// normalizeMySQLDSN forces the connection options the store relies on.
func normalizeMySQLDSN(dsn string, multiStatements bool) (string, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return "", fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	cfg.Loc = time.UTC
	cfg.ClientFoundRows = true
	cfg.MultiStatements = multiStatements
	return cfg.FormatDSN(), nil
}

// isDuplicateKeyError reports whether err is a unique constraint violation
// from either backend.
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlDuplicateEntry
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isForeignKeyError reports whether err is a foreign key violation, such as
// inserting a record for an owner that does not exist.
func isForeignKeyError(err error) bool {
	if err == nil {
		return false
	}
	var myErr *mysql.MySQLError
	if errors.As(err, &myErr) {
		return myErr.Number == mysqlNoReferencedRow
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
