package service

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/fintrack/fintrack-go/internal/model"
	"github.com/fintrack/fintrack-go/internal/repository"
)

// maxGoalDescription matches the create-time validate tag.
const maxGoalDescription = 500

// GoalService manages savings goals.
type GoalService struct {
	records records[model.Goal]
	now     func() time.Time
}

// NewGoalService creates a new GoalService.
func NewGoalService(repo *repository.GoalRepository) *GoalService {
	return &GoalService{
		records: records[model.Goal]{
			store:    repo,
			notFound: ErrGoalNotFound,
			order: []repository.Sort{
				{Column: repository.ColCreatedAt, Desc: true},
				{Column: repository.ColID, Desc: true},
			},
		},
		now: time.Now,
	}
}

// Create stores a new goal for userID.
func (s *GoalService) Create(ctx context.Context, userID string, req model.CreateGoalRequest) (*model.Goal, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	current := 0.0
	if req.CurrentAmount != nil {
		current = *req.CurrentAmount
	}
	category := req.Category
	if category == "" {
		category = model.GoalOther
	}

	var deadline, description any
	if req.Deadline != nil {
		deadline = storedTime(req.Deadline.Time)
	}
	if req.Description != nil {
		description = *req.Description
	}

	return s.records.create(ctx, userID, repository.Doc{
		repository.ColName:          req.Name,
		repository.ColTargetAmount:  req.TargetAmount,
		repository.ColCurrentAmount: current,
		repository.ColCategory:      string(category),
		repository.ColDeadline:      deadline,
		repository.ColDescription:   description,
		repository.ColCreatedAt:     storedTime(s.now()),
	})
}

// List returns userID's goals, newest first.
func (s *GoalService) List(ctx context.Context, userID string) ([]model.Goal, error) {
	return s.records.list(ctx, userID, nil)
}

// Get returns one of userID's goals.
func (s *GoalService) Get(ctx context.Context, userID, id string) (*model.Goal, error) {
	return s.records.get(ctx, userID, id)
}

// Update changes only the fields present in req. A null deadline or
// description clears it.
func (s *GoalService) Update(ctx context.Context, userID, id string, req model.UpdateGoalRequest) (*model.Goal, error) {
	if _, err := parseID(id); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	set := repository.Doc{}
	if req.Name != nil {
		set[repository.ColName] = *req.Name
	}
	if req.TargetAmount != nil {
		set[repository.ColTargetAmount] = *req.TargetAmount
	}
	if req.CurrentAmount != nil {
		set[repository.ColCurrentAmount] = *req.CurrentAmount
	}
	if req.Category != nil {
		set[repository.ColCategory] = string(*req.Category)
	}
	if req.Deadline.Set {
		var deadline any
		if req.Deadline.Value != nil {
			deadline = storedTime(req.Deadline.Value.Time)
		}
		set[repository.ColDeadline] = deadline
	}
	if req.Description.Set {
		var description any
		if d := req.Description.Value; d != nil {
			if utf8.RuneCountInString(*d) > maxGoalDescription {
				return nil, validationf("description must be at most %d characters", maxGoalDescription)
			}
			description = *d
		}
		set[repository.ColDescription] = description
	}

	return s.records.update(ctx, userID, id, set)
}

// Delete removes one of userID's goals.
func (s *GoalService) Delete(ctx context.Context, userID, id string) error {
	return s.records.delete(ctx, userID, id)
}
