package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/fintrack/fintrack-go/internal/model"
	"github.com/fintrack/fintrack-go/internal/repository"
)

// SummaryService aggregates a user's transactions.
type SummaryService struct {
	repo *repository.TransactionRepository
}

// NewSummaryService creates a new SummaryService.
func NewSummaryService(repo *repository.TransactionRepository) *SummaryService {
	return &SummaryService{repo: repo}
}

// Summary returns userID's income and expense totals, their difference and
// the number of transactions. Users without transactions get all zeroes.
func (s *SummaryService) Summary(ctx context.Context, userID string) (model.SummaryResponse, error) {
	var (
		totals map[string]float64
		count  int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		totals, err = s.repo.SumByGroup(gctx, userID, nil, repository.ColType, repository.ColAmount)
		return err
	})
	g.Go(func() error {
		var err error
		count, err = s.repo.Count(gctx, userID, nil)
		return err
	})
	if err := g.Wait(); err != nil {
		return model.SummaryResponse{}, err
	}

	income := totals[string(model.TransactionIncome)]
	expense := totals[string(model.TransactionExpense)]

	return model.SummaryResponse{
		TotalIncome:      income,
		TotalExpense:     expense,
		Balance:          income - expense,
		TransactionCount: count,
	}, nil
}
