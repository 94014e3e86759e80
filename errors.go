package webcore

import (
	"errors"
	"fmt"
)

// Error represents an API error response.
type Error struct {
	StatusCode int
	Message    string
	Op         string // Operation that failed (e.g., "Search")
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %d %s", e.Op, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%d %s", e.StatusCode, e.Message)
}

// IsInvalidQuery reports whether err indicates a 400 query-rejected response.
func IsInvalidQuery(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 400
	}
	return false
}

// IsUnauthorized reports whether err indicates a 401 response.
func IsUnauthorized(err error) bool {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 401
	}
	return false
}

// wrapError attaches an operation name to an API error.
func wrapError(err error, op string) error {
	if err == nil {
		return nil
	}
	var apiErr *Error
	if errors.As(err, &apiErr) {
		apiErr.Op = op
		return apiErr
	}
	return fmt.Errorf("%s: %w", op, err)
}
