package repository

import (
	"database/sql"

	"github.com/fintrack/fintrack-go/internal/model"
)

// Columns of the transactions table. Recurring rules share the descriptive ones.
const (
	TransactionsTable = "transactions"
	ColDescription    = "description"
	ColAmount         = "amount"
	ColType           = "type"
	ColCategory       = "category"
	ColDate           = "date"
)

var transactionColumns = []string{ColID, ColOwner, ColDescription, ColAmount, ColType, ColCategory, ColDate}

func scanTransaction(s rowScanner) (*model.Transaction, error) {
	var (
		t   model.Transaction
		typ string
	)
	if err := s.Scan(&t.ID, &t.UserID, &t.Description, &t.Amount, &typ, &t.Category, &t.Date); err != nil {
		return nil, err
	}
	t.Type = model.TransactionType(typ)
	t.Date = t.Date.UTC()
	return &t, nil
}

// TransactionRepository stores transactions scoped to their owner.
type TransactionRepository struct {
	*Owned[model.Transaction]
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{
		Owned: NewOwned(newCollection(db, TransactionsTable, transactionColumns, scanTransaction)),
	}
}
