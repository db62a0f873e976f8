package service

import (
	"context"
	"errors"
	"time"

	"github.com/fintrack/fintrack-go/internal/repository"
)

// ownedStore is the owner-scoped persistence every resource service builds on.
type ownedStore[T any] interface {
	Create(ctx context.Context, ownerID string, doc repository.Doc) (*T, error)
	Get(ctx context.Context, ownerID, id string) (*T, error)
	List(ctx context.Context, ownerID string, f repository.Filter, sorts ...repository.Sort) ([]T, error)
	Update(ctx context.Context, ownerID, id string, set repository.Doc) (*T, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// records implements the create/list/get/update/delete flow shared by
// transactions, recurring rules and goals.
type records[T any] struct {
	store    ownedStore[T]
	notFound error
	order    []repository.Sort
}

// create inserts doc for userID. A token can outlive its user, so a missing
// owner row is reported as ErrUserNotFound rather than a storage failure.
func (r records[T]) create(ctx context.Context, userID string, doc repository.Doc) (*T, error) {
	item, err := r.store.Create(ctx, userID, doc)
	if errors.Is(err, repository.ErrMissingReference) {
		return nil, ErrUserNotFound
	}
	return item, err
}

func (r records[T]) list(ctx context.Context, userID string, f repository.Filter) ([]T, error) {
	return r.store.List(ctx, userID, f, r.order...)
}

func (r records[T]) get(ctx context.Context, userID, id string) (*T, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	item, err := r.store.Get(ctx, userID, id)
	return item, r.translate(err)
}

func (r records[T]) update(ctx context.Context, userID, id string, set repository.Doc) (*T, error) {
	id, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if len(set) == 0 {
		return nil, ErrNoFields
	}
	item, err := r.store.Update(ctx, userID, id, set)
	return item, r.translate(err)
}

func (r records[T]) delete(ctx context.Context, userID, id string) error {
	id, err := parseID(id)
	if err != nil {
		return err
	}
	return r.translate(r.store.Delete(ctx, userID, id))
}

func (r records[T]) translate(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return r.notFound
	}
	return err
}

// storedTime normalises t to the precision both backends keep.
func storedTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
