package model

import "time"

// Frequency is how often a recurring transaction repeats.
type Frequency string

const (
	FrequencyDaily   Frequency = "daily"
	FrequencyWeekly  Frequency = "weekly"
	FrequencyMonthly Frequency = "monthly"
	FrequencyYearly  Frequency = "yearly"
)

// RecurringTransaction is a stored recurrence rule. Occurrences are never
// materialised into Transaction records.
type RecurringTransaction struct {
	ID          string          `json:"_id"`
	UserID      string          `json:"user_id"`
	Description string          `json:"description"`
	Amount      float64         `json:"amount"`
	Type        TransactionType `json:"type"`
	Category    string          `json:"category"`
	Frequency   Frequency       `json:"frequency"`
	StartDate   time.Time       `json:"start_date"`
	IsActive    bool            `json:"is_active"`
	CreatedAt   time.Time       `json:"created_at"`
}

// CreateRecurringRequest represents a new recurrence rule.
// StartDate defaults to now and IsActive defaults to true.
type CreateRecurringRequest struct {
	Description string          `json:"description" validate:"required,min=1,max=200"`
	Amount      float64         `json:"amount" validate:"gt=0"`
	Type        TransactionType `json:"type" validate:"required,oneof=income expense"`
	Category    string          `json:"category" validate:"required,min=1,max=50"`
	Frequency   Frequency       `json:"frequency" validate:"required,oneof=daily weekly monthly yearly"`
	StartDate   *Timestamp      `json:"start_date"`
	IsActive    *bool           `json:"is_active"`
}

// UpdateRecurringRequest is a partial update of a recurrence rule.
type UpdateRecurringRequest struct {
	Description *string          `json:"description" validate:"omitnil,min=1,max=200"`
	Amount      *float64         `json:"amount" validate:"omitnil,gt=0"`
	Type        *TransactionType `json:"type" validate:"omitnil,oneof=income expense"`
	Category    *string          `json:"category" validate:"omitnil,min=1,max=50"`
	Frequency   *Frequency       `json:"frequency" validate:"omitnil,oneof=daily weekly monthly yearly"`
	StartDate   *Timestamp       `json:"start_date"`
	IsActive    *bool            `json:"is_active"`
}
