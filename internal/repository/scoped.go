package repository

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/fintrack/fintrack-go/internal/model"
)

// ErrProtectedField is returned when an update tries to change a record's id or owner.
var ErrProtectedField = errors.New("field cannot be changed")

// Owned wraps a collection whose records belong to a user. Every operation
// takes the owner's id and adds it to the filter, so one user can never read
// or modify another user's records.
type Owned[T any] struct {
	records *Collection[T]
}

// NewOwned creates an owner-scoped view of c.
func NewOwned[T any](c *Collection[T]) *Owned[T] {
	return &Owned[T]{records: c}
}

func scoped(ownerID string, f Filter) Filter {
	out := make(Filter, len(f)+1)
	maps.Copy(out, f)
	out[ColOwner] = ownerID
	return out
}

// Create stamps doc with a fresh id and ownerID, inserts it and returns the
// stored record.
func (o *Owned[T]) Create(ctx context.Context, ownerID string, doc Doc) (*T, error) {
	row := make(Doc, len(doc)+2)
	maps.Copy(row, doc)
	row[ColID] = model.NewID()
	row[ColOwner] = ownerID

	id, err := o.records.Insert(ctx, row)
	if err != nil {
		return nil, err
	}

	return o.records.FindOne(ctx, Filter{ColID: id, ColOwner: ownerID})
}

// Get returns the record with id owned by ownerID, or ErrNotFound.
func (o *Owned[T]) Get(ctx context.Context, ownerID, id string) (*T, error) {
	return o.records.FindOne(ctx, Filter{ColID: id, ColOwner: ownerID})
}

// List returns every record owned by ownerID that also matches f.
func (o *Owned[T]) List(ctx context.Context, ownerID string, f Filter, sorts ...Sort) ([]T, error) {
	items := []T{}
	for item, err := range o.records.FindMany(ctx, scoped(ownerID, f), sorts...) {
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}
	return items, nil
}

// Update applies set to the record with id owned by ownerID and returns the
// record as stored afterwards. ErrNotFound means no owned record matched.
func (o *Owned[T]) Update(ctx context.Context, ownerID, id string, set Doc) (*T, error) {
	if _, ok := set[ColID]; ok {
		return nil, fmt.Errorf("%w: %s", ErrProtectedField, ColID)
	}
	if _, ok := set[ColOwner]; ok {
		return nil, fmt.Errorf("%w: %s", ErrProtectedField, ColOwner)
	}

	filter := Filter{ColID: id, ColOwner: ownerID}

	matched, err := o.records.UpdateOne(ctx, filter, set)
	if err != nil {
		return nil, err
	}
	if matched == 0 {
		return nil, ErrNotFound
	}

	return o.records.FindOne(ctx, filter)
}

// Delete removes the record with id owned by ownerID. ErrNotFound means no
// owned record matched.
func (o *Owned[T]) Delete(ctx context.Context, ownerID, id string) error {
	deleted, err := o.records.DeleteOne(ctx, Filter{ColID: id, ColOwner: ownerID})
	if err != nil {
		return err
	}
	if deleted == 0 {
		return ErrNotFound
	}
	return nil
}

// Count returns how many records owned by ownerID match f.
func (o *Owned[T]) Count(ctx context.Context, ownerID string, f Filter) (int64, error) {
	return o.records.Count(ctx, scoped(ownerID, f))
}

// SumByGroup sums sumField over ownerID's records matching f, grouped by groupKey.
func (o *Owned[T]) SumByGroup(ctx context.Context, ownerID string, f Filter, groupKey, sumField string) (map[string]float64, error) {
	return o.records.SumByGroup(ctx, scoped(ownerID, f), groupKey, sumField)
}
