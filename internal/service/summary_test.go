package service

import (
	"context"
	"testing"

	"github.com/fintrack/fintrack-go/internal/model"
	"github.com/fintrack/fintrack-go/internal/repository"
)

func TestSummary(t *testing.T) {
	db := newTestDB(t)
	alice := newTestUser(t, db, "alice@example.com")
	bob := newTestUser(t, db, "bob@example.com")
	repo := repository.NewTransactionRepository(db)
	txs := NewTransactionService(repo)
	svc := NewSummaryService(repo)
	ctx := context.Background()

	for _, req := range []model.CreateTransactionRequest{
		{Description: "Salary", Amount: 100, Type: model.TransactionIncome, Category: "work"},
		{Description: "Groceries", Amount: 40, Type: model.TransactionExpense, Category: "food"},
	} {
		if _, err := txs.Create(ctx, alice, req); err != nil {
			t.Fatalf("Create() unexpected error: %v", err)
		}
	}
	if _, err := txs.Create(ctx, bob, model.CreateTransactionRequest{
		Description: "Bonus", Amount: 999, Type: model.TransactionIncome, Category: "work",
	}); err != nil {
		t.Fatalf("Create() unexpected error: %v", err)
	}

	got, err := svc.Summary(ctx, alice)
	if err != nil {
		t.Fatalf("Summary() unexpected error: %v", err)
	}
	want := model.SummaryResponse{TotalIncome: 100, TotalExpense: 40, Balance: 60, TransactionCount: 2}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestSummary_NoTransactions(t *testing.T) {
	db := newTestDB(t)
	alice := newTestUser(t, db, "alice@example.com")
	svc := NewSummaryService(repository.NewTransactionRepository(db))

	got, err := svc.Summary(context.Background(), alice)
	if err != nil {
		t.Fatalf("Summary() unexpected error: %v", err)
	}
	if got != (model.SummaryResponse{}) {
		t.Errorf("expected all zeroes, got %+v", got)
	}
}
