package model

import "time"

// TransactionType distinguishes money coming in from money going out.
type TransactionType string

const (
	TransactionIncome  TransactionType = "income"
	TransactionExpense TransactionType = "expense"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionIncome || t == TransactionExpense
}

// Transaction is a single income or expense owned by one user.
type Transaction struct {
	ID          string          `json:"_id"`
	UserID      string          `json:"user_id"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Date        time.Time       `json:"date"`
}

// CreateTransactionRequest represents a new transaction. Date defaults to now.
type CreateTransactionRequest struct {
	Description string          `json:"description" validate:"required,min=1,max=200"`
	Amount      float64         `json:"amount" validate:"gt=0"`
	Type        TransactionType `json:"type" validate:"required,oneof=income expense"`
	Category    string          `json:"category" validate:"required,min=1,max=50"`
	Date        *Timestamp      `json:"date"`
}

// UpdateTransactionRequest is a partial update; only non-nil fields change.
type UpdateTransactionRequest struct {
	Description *string          `json:"description" validate:"omitnil,min=1,max=200"`
	Amount      *float64         `json:"amount" validate:"omitnil,gt=0"`
	Type        *TransactionType `json:"type" validate:"omitnil,oneof=income expense"`
	Category    *string          `json:"category" validate:"omitnil,min=1,max=50"`
	Date        *Timestamp       `json:"date"`
}

// TransactionFilter narrows a transaction listing. Empty fields match everything.
type TransactionFilter struct {
	Type     TransactionType
	Category string
}
