package service

import "errors"

var (
	ErrValidation         = errors.New("validation failed")
	ErrInvalidID          = errors.New("invalid id format")
	ErrNoFields           = errors.New("no fields to update")
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrIncorrectPassword  = errors.New("current password is incorrect")
	ErrEmailTaken         = errors.New("email already registered")
)

// Resource-specific not-found errors. All of them match ErrNotFound with errors.Is.
var (
	ErrUserNotFound        error = &notFoundError{resource: "user"}
	ErrTransactionNotFound error = &notFoundError{resource: "transaction"}
	ErrRecurringNotFound   error = &notFoundError{resource: "recurring transaction"}
	ErrGoalNotFound        error = &notFoundError{resource: "goal"}
)

type notFoundError struct {
	resource string
}

func (e *notFoundError) Error() string {
	return e.resource + " not found"
}

func (e *notFoundError) Is(target error) bool {
	return target == ErrNotFound
}
