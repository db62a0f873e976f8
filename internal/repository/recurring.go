package repository

import (
	"database/sql"

	"github.com/fintrack/fintrack-go/internal/model"
)

// Columns of the recurring_transactions table beyond those shared with transactions.
const (
	RecurringTable = "recurring_transactions"
	ColFrequency   = "frequency"
	ColStartDate   = "start_date"
	ColIsActive    = "is_active"
)

var recurringColumns = []string{
	ColID, ColOwner, ColDescription, ColAmount, ColType, ColCategory,
	ColFrequency, ColStartDate, ColIsActive, ColCreatedAt,
}

func scanRecurring(s rowScanner) (*model.RecurringTransaction, error) {
	var (
		rt        model.RecurringTransaction
		typ, freq string
	)
	if err := s.Scan(
		&rt.ID, &rt.UserID, &rt.Description, &rt.Amount, &typ, &rt.Category,
		&freq, &rt.StartDate, &rt.IsActive, &rt.CreatedAt,
	); err != nil {
		return nil, err
	}
	rt.Type = model.TransactionType(typ)
	rt.Frequency = model.Frequency(freq)
	rt.StartDate = rt.StartDate.UTC()
	rt.CreatedAt = rt.CreatedAt.UTC()
	return &rt, nil
}

// RecurringRepository stores recurrence rules scoped to their owner.
type RecurringRepository struct {
	*Owned[model.RecurringTransaction]
}

// NewRecurringRepository creates a new RecurringRepository.
func NewRecurringRepository(db *sql.DB) *RecurringRepository {
	return &RecurringRepository{
		Owned: NewOwned(newCollection(db, RecurringTable, recurringColumns, scanRecurring)),
	}
}
