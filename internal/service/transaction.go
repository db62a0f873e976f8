package service

import (
	"context"
	"time"

	"github.com/fintrack/fintrack-go/internal/model"
	"github.com/fintrack/fintrack-go/internal/repository"
)

// TransactionService handles transaction business logic.
type TransactionService struct {
	records records[model.Transaction]
	now     func() time.Time
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(repo *repository.TransactionRepository) *TransactionService {
	return &TransactionService{
		records: records[model.Transaction]{
			store:    repo,
			notFound: ErrTransactionNotFound,
			order: []repository.Sort{
				{Column: repository.ColDate, Desc: true},
				{Column: repository.ColID, Desc: true},
			},
		},
		now: time.Now,
	}
}

// Create records a new transaction for userID. The date defaults to now.
func (s *TransactionService) Create(ctx context.Context, userID string, req model.CreateTransactionRequest) (*model.Transaction, error) {
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	date := s.now()
	if req.Date != nil {
		date = req.Date.Time
	}

	return s.records.create(ctx, userID, repository.Doc{
		repository.ColDescription: req.Description,
		repository.ColAmount:      req.Amount,
		repository.ColType:        string(req.Type),
		repository.ColCategory:    req.Category,
		repository.ColDate:        storedTime(date),
	})
}

// List returns userID's transactions, most recent first.
func (s *TransactionService) List(ctx context.Context, userID string, filter model.TransactionFilter) ([]model.Transaction, error) {
	f := repository.Filter{}
	if filter.Type != "" {
		if !filter.Type.Valid() {
			return nil, validationf("type must be one of: income, expense")
		}
		f[repository.ColType] = string(filter.Type)
	}
	if filter.Category != "" {
		f[repository.ColCategory] = filter.Category
	}

	return s.records.list(ctx, userID, f)
}

// Get returns one of userID's transactions.
func (s *TransactionService) Get(ctx context.Context, userID, id string) (*model.Transaction, error) {
	return s.records.get(ctx, userID, id)
}

// Update changes only the fields present in req.
func (s *TransactionService) Update(ctx context.Context, userID, id string, req model.UpdateTransactionRequest) (*model.Transaction, error) {
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
	if req.Date != nil {
		set[repository.ColDate] = storedTime(req.Date.Time)
	}

	return s.records.update(ctx, userID, id, set)
}

// Delete removes one of userID's transactions.
func (s *TransactionService) Delete(ctx context.Context, userID, id string) error {
	return s.records.delete(ctx, userID, id)
}
