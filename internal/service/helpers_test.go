package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/fintrack/fintrack-go/internal/model"
	"github.com/fintrack/fintrack-go/internal/repository"
	"github.com/fintrack/fintrack-go/internal/repository/repotest"
)

func newTestUser(t *testing.T, db *sql.DB, email string) string {
	t.Helper()

	user := &model.User{Email: email, Name: "Test", PasswordHash: "unused", CreatedAt: time.Now().UTC()}
	if err := repository.NewUserRepository(db).Create(context.Background(), user); err != nil {
		t.Fatalf("create user %s: %v", email, err)
	}
	return user.ID
}

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	return repotest.NewSQLite(t)
}

func ptr[T any](v T) *T {
	return &v
}

func stamp(t time.Time) *model.Timestamp {
	return &model.Timestamp{Time: t}
}

func assertErrorIs(t *testing.T, err, target error) {
	t.Helper()
	if !errors.Is(err, target) {
		t.Fatalf("expected error %v, got %v", target, err)
	}
}
