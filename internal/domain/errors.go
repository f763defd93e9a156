package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors shared by the engines, the store and the CLI.
var (
	// ErrNotFound: no language or lexicon entry under the given name.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists: a language with that English name is already stored.
	ErrAlreadyExists = errors.New("already exists")
	// ErrValidation: a language description or rule breaks its invariants.
	ErrValidation = errors.New("invalid language description")
	// ErrConflict: a concurrent writer held or changed the same language.
	ErrConflict = errors.New("concurrent update conflict")
)

// FieldError names the offending field of a language description or rule.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError collects every field problem found while decoding or
// checking a language, so a rule author sees them all at once.
type ValidationError struct {
	Errors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Errors) == 1 {
		return fmt.Sprintf("validation: %s: %s", e.Errors[0].Field, e.Errors[0].Message)
	}
	fields := make([]string, len(e.Errors))
	for i, fe := range e.Errors {
		fields[i] = fe.Field
	}
	return fmt.Sprintf("validation: %d errors (%s)", len(e.Errors), strings.Join(fields, ", "))
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
