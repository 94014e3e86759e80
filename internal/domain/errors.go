package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrQueryFailed signals that the data store could not execute a read.
	ErrQueryFailed = errors.New("search query failed")
	// ErrInvalidQuery signals a query the store rejected as malformed even
	// after sanitization.
	ErrInvalidQuery = errors.New("invalid characters in search")
	// ErrValidation signals rejected user input (contact form, analytics).
	ErrValidation = errors.New("validation failed")
)

// EntityError wraps a store failure with the entity collection it hit, so
// the unified gateway can degrade per entity instead of failing outright.
type EntityError struct {
	Entity string
	Err    error
}

func (e *EntityError) Error() string {
	return fmt.Sprintf("%s search: %s", e.Entity, e.Err.Error())
}

func (e *EntityError) Unwrap() error { return e.Err }

// NewEntityError tags err with the entity collection name.
func NewEntityError(entity string, err error) error {
	return &EntityError{Entity: entity, Err: err}
}
