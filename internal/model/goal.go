package model

import "time"

// GoalCategory is the closed set of savings goal kinds.
type GoalCategory string

const (
	GoalEmergency  GoalCategory = "emergency"
	GoalVacation   GoalCategory = "vacation"
	GoalPurchase   GoalCategory = "purchase"
	GoalEducation  GoalCategory = "education"
	GoalRetirement GoalCategory = "retirement"
	GoalInvestment GoalCategory = "investment"
	GoalDebt       GoalCategory = "debt"
	GoalOther      GoalCategory = "other"
)

// Goal is a savings target tracked by one user.
type Goal struct {
	ID            string       `json:"_id"`
	UserID        string       `json:"user_id"`
	Name          string       `json:"name"`
	TargetAmount  float64      `json:"target_amount"`
	CurrentAmount float64      `json:"current_amount"`
	Category      GoalCategory `json:"category"`
	Deadline      *time.Time   `json:"deadline"`
	Description   *string      `json:"description"`
	CreatedAt     time.Time    `json:"created_at"`
}

// CreateGoalRequest represents a new goal. CurrentAmount defaults to 0 and
// Category to "other".
type CreateGoalRequest struct {
	Name          string       `json:"name" validate:"required,min=1,max=100"`
	TargetAmount  float64      `json:"target_amount" validate:"gt=0"`
	CurrentAmount *float64     `json:"current_amount" validate:"omitnil,gte=0"`
	Category      GoalCategory `json:"category" validate:"omitempty,oneof=emergency vacation purchase education retirement investment debt other"`
	Deadline      *Timestamp   `json:"deadline"`
	Description   *string      `json:"description" validate:"omitnil,max=500"`
}

// UpdateGoalRequest is a partial update of a goal. Deadline and Description
// may be sent as null to clear them.
type UpdateGoalRequest struct {
	Name          *string             `json:"name" validate:"omitnil,min=1,max=100"`
	TargetAmount  *float64            `json:"target_amount" validate:"omitnil,gt=0"`
	CurrentAmount *float64            `json:"current_amount" validate:"omitnil,gte=0"`
	Category      *GoalCategory       `json:"category" validate:"omitnil,oneof=emergency vacation purchase education retirement investment debt other"`
	Deadline      Nullable[Timestamp] `json:"deadline"`
	Description   Nullable[string]    `json:"description"`
}
