package service

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a requested resource is not found.
	ErrNotFound = errors.New("not found")
	// ErrExternalService is returned when an embedding, vector-store, or
	// generative-model call fails. Callers surface it as a generic internal
	// error; the detailed cause stays in the logs.
	ErrExternalService = errors.New("external service error")
)

// ValidationError reports a rejected request field. It wraps ErrInvalidInput
// so HTTP handlers can map it to a client error with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field %s: %s", e.Field, e.Message)
}

// Unwrap makes ValidationError match errors.Is(err, ErrInvalidInput).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// External wraps an error from an external collaborator so it matches
// errors.Is(err, ErrExternalService).
func External(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %w", op, ErrExternalService, err)
}
