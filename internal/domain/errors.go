package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors used across all layers.
var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
	ErrValidation    = errors.New("validation error")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrForbidden     = errors.New("forbidden")
	ErrConflict      = errors.New("conflict")
	ErrUnavailable   = errors.New("unavailable")
	ErrRateLimited   = errors.New("rate limited")
)

// Itinerary errors. Structural errors are always returned to the caller;
// ErrPlaceNotFound is usually recovered by substituting a fallback.
var (
	ErrInvalidDateRange = errors.New("invalid date range")
	ErrIndexOutOfRange  = errors.New("index out of range")
	ErrUnknownSection   = errors.New("unknown section")
	ErrMalformedSeed    = errors.New("malformed seed")
	ErrPlaceNotFound    = errors.New("place not found")
	ErrPersistence      = errors.New("persistence failure")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError contains a list of field-level validation errors.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	return fmt.Sprintf("validation: %d errors", len(e.Errors))
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidationError creates a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Errors: []FieldError{{Field: field, Message: message}},
	}
}

// NewValidationErrors creates a ValidationError from multiple field errors.
func NewValidationErrors(errs []FieldError) *ValidationError {
	return &ValidationError{Errors: errs}
}

// RangeError reports a day index or item position outside the valid range.
type RangeError struct {
	What  string
	Index int
	Len   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %d out of range [0, %d)", e.What, e.Index, e.Len)
}

func (e *RangeError) Unwrap() error { return ErrIndexOutOfRange }

// SeedError points at the part of an untrusted document that could not be normalized.
type SeedError struct {
	Path   string
	Reason string
}

func (e *SeedError) Error() string {
	if e.Path == "" {
		return "malformed seed: " + e.Reason
	}
	return fmt.Sprintf("malformed seed: %s: %s", e.Path, e.Reason)
}

func (e *SeedError) Unwrap() error { return ErrMalformedSeed }

// NewSeedError creates a SeedError.
func NewSeedError(path, reason string) *SeedError {
	return &SeedError{Path: path, Reason: reason}
}

// PersistenceError wraps a storage failure so that both ErrPersistence and
// the underlying cause (ErrNotFound, context errors) stay matchable.
func PersistenceError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, ErrPersistence) {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%s: %w: %w", op, ErrPersistence, err)
}
