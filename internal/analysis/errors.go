package analysis

import (
	"errors"
	"fmt"
)

// ReconcileError is an error that crosses the engine boundary to the caller.
//
// Only two categories do: validation failures (the request itself is
// unusable) and generation failures (the Generator could not produce a
// document; the caller should offer a retry). Persistence failures during
// cache lookup are absorbed as a cache miss and only logged.
type ReconcileError struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Err is the underlying cause, if any.
	Err error
}

// ErrorCode categorizes reconcile errors.
type ErrorCode string

const (
	// ErrCodeValidation indicates the requested id-set is empty or invalid.
	// Not retried automatically.
	ErrCodeValidation ErrorCode = "VALIDATION"

	// ErrCodeGeneration indicates the Generator failed.
	// Surfaced with an explicit retry affordance, never swallowed.
	ErrCodeGeneration ErrorCode = "GENERATION"
)

// Error implements the error interface.
func (e *ReconcileError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *ReconcileError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a ReconcileError for an unusable request.
func NewValidationError(message string) *ReconcileError {
	return &ReconcileError{Code: ErrCodeValidation, Message: message}
}

// NewGenerationError wraps a Generator failure.
func NewGenerationError(err error) *ReconcileError {
	return &ReconcileError{Code: ErrCodeGeneration, Message: "document generation failed", Err: err}
}

// IsValidation returns true if the error is a validation error.
// Uses errors.As to handle wrapped errors.
func IsValidation(err error) bool {
	var re *ReconcileError
	if errors.As(err, &re) {
		return re.Code == ErrCodeValidation
	}
	return false
}

// IsGeneration returns true if the error is a generation error.
// Uses errors.As to handle wrapped errors.
func IsGeneration(err error) bool {
	var re *ReconcileError
	if errors.As(err, &re) {
		return re.Code == ErrCodeGeneration
	}
	return false
}
