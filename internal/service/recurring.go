package service

import (
	"context"
	"time"

	"github.com/fintrack/fintrack-go/internal/model"
	"github.com/fintrack/fintrack-go/internal/repository"
)

// RecurringService manages recurrence rules. Rules are stored only; nothing
// turns them into transactions.
type RecurringService struct {
	records records[model.RecurringTransaction]
	now     func() time.Time
}

// NewRecurringService creates a new RecurringService.
func NewRecurringService(repo *repository.RecurringRepository) *RecurringService {
	return &RecurringService{
		records: records[model.RecurringTransaction]{
			store:    repo,
			notFound: ErrRecurringNotFound,
			order: []repository.Sort{
				{Column: repository.ColCreatedAt, Desc: true},
				{Column: repository.ColID, Desc: true},
			},
		},
		now: time.Now,
	}
}

// Create stores a new rule for userID.
func (s *RecurringService) Create(ctx context.Context, userID string, req model.CreateRecurringRequest) (*model.RecurringTransaction, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	now := storedTime(s.now())
	start := now
	if req.StartDate != nil {
		start = storedTime(req.StartDate.Time)
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}

	return s.records.create(ctx, userID, repository.Doc{
		repository.ColDescription: req.Description,
		repository.ColAmount:      req.Amount,
		repository.ColType:        string(req.Type),
		repository.ColCategory:    req.Category,
		repository.ColFrequency:   string(req.Frequency),
		repository.ColStartDate:   start,
		repository.ColIsActive:    active,
		repository.ColCreatedAt:   now,
	})
}

// List returns userID's rules, newest first.
func (s *RecurringService) List(ctx context.Context, userID string) ([]model.RecurringTransaction, error) {
	return s.records.list(ctx, userID, nil)
}

// Get returns one of userID's rules.
func (s *RecurringService) Get(ctx context.Context, userID, id string) (*model.RecurringTransaction, error) {
	return s.records.get(ctx, userID, id)
}

// Update changes only the fields present in req.
func (s *RecurringService) Update(ctx context.Context, userID, id string, req model.UpdateRecurringRequest) (*model.RecurringTransaction, error) {
	if _, err := parseID(id); err != nil {
		return nil, err
	}
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	set := repository.Doc{}
	if req.Description != nil {
		set[repository.ColDescription] = *req.Description
	}
	if req.Amount != nil {
		set[repository.ColAmount] = *req.Amount
	}
	if req.Type != nil {
		set[repository.ColType] = string(*req.Type)
	}
	if req.Category != nil {
		set[repository.ColCategory] = *req.Category
	}
	if req.Frequency != nil {
		set[repository.ColFrequency] = string(*req.Frequency)
	}
	if req.StartDate != nil {
		set[repository.ColStartDate] = storedTime(req.StartDate.Time)
	}
	if req.IsActive != nil {
		set[repository.ColIsActive] = *req.IsActive
	}

	return s.records.update(ctx, userID, id, set)
}

// Delete removes one of userID's rules.
func (s *RecurringService) Delete(ctx context.Context, userID, id string) error {
	return s.records.delete(ctx, userID, id)
}
