package repository

import (
	"database/sql"

	"github.com/fintrack/fintrack-go/internal/model"
)

// Columns of the goals table.
const (
	GoalsTable       = "goals"
	ColTargetAmount  = "target_amount"
	ColCurrentAmount = "current_amount"
	ColDeadline      = "deadline"
)

var goalColumns = []string{
	ColID, ColOwner, ColName, ColTargetAmount, ColCurrentAmount,
	ColCategory, ColDeadline, ColDescription, ColCreatedAt,
}

func scanGoal(s rowScanner) (*model.Goal, error) {
	var (
		g           model.Goal
		category    string
		deadline    sql.NullTime
		description sql.NullString
	)
	if err := s.Scan(
		&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount,
		&category, &deadline, &description, &g.CreatedAt,
	); err != nil {
		return nil, err
	}
	g.Category = model.GoalCategory(category)
	g.CreatedAt = g.CreatedAt.UTC()
	if deadline.Valid {
		d := deadline.Time.UTC()
		g.Deadline = &d
	}
	if description.Valid {
		g.Description = &description.String
	}
	return &g, nil
}

// GoalRepository stores savings goals scoped to their owner.
type GoalRepository struct {
	*Owned[model.Goal]
}

// NewGoalRepository creates a new GoalRepository.
func NewGoalRepository(db *sql.DB) *GoalRepository {
	return &GoalRepository{
		Owned: NewOwned(newCollection(db, GoalsTable, goalColumns, scanGoal)),
	}
}
