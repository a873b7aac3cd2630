package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrTransient indicates the backing store or catalog was temporarily
	// unreachable. Callers may retry; the core never retries internally.
	ErrTransient = errors.New("temporarily unavailable")
)

// Transient wraps a storage or catalog failure so callers can detect it with
// errors.Is(err, ErrTransient) while keeping the original cause in the chain.
func Transient(err error) error {
	return fmt.Errorf("%w: %w", ErrTransient, err)
}

// ValidationError reports the required fields missing or malformed in a request.
// It is returned to the immediate caller and never retried.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing or invalid fields: " + strings.Join(e.Fields, ", ")
}

// NewValidationError builds a ValidationError for the given field names.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}
