package service

import (
	"errors"
	"fmt"
	"testing"
)

func TestValidationErrorMatchesInvalidInput(t *testing.T) {
	err := &ValidationError{Field: "query", Message: "must not be empty"}

	if !errors.Is(err, ErrInvalidInput) {
		t.Fatal("ValidationError should match ErrInvalidInput")
	}
	if got := err.Error(); got != "validation error on field query: must not be empty" {
		t.Fatalf("unexpected error text: %q", got)
	}
}

func TestExternalWrapping(t *testing.T) {
	cause := errors.New("connection refused")
	err := External("similarity search", cause)

	if !errors.Is(err, ErrExternalService) {
		t.Fatal("External() should match ErrExternalService")
	}
	if !errors.Is(err, cause) {
		t.Fatal("External() should preserve the cause")
	}

	// Wrapping further must not lose the sentinel.
	wrapped := fmt.Errorf("query failed: %w", err)
	if !errors.Is(wrapped, ErrExternalService) {
		t.Fatal("wrapped External() should still match ErrExternalService")
	}
}

func TestExternalNil(t *testing.T) {
	if External("anything", nil) != nil {
		t.Fatal("External(nil) should be nil")
	}
}
