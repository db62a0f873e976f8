package model

// SummaryResponse aggregates a user's transactions.
type SummaryResponse struct {
	TotalIncome      float64 `json:"total_income"`
	TotalExpense     float64 `json:"total_expense"`
	Balance          float64 `json:"balance"`
	TransactionCount int64   `json:"transaction_count"`
}
