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
)

// Query errors.
var (
	ErrQueryParse       = errors.New("query parse error")
	ErrUnsupportedQuery = errors.New("unsupported query")
	ErrSearchDisabled   = errors.New("search disabled")
	ErrCannotQuery      = errors.New("cannot query database")
	ErrNoBackingSource  = errors.New("no backing source for this conjunction")
)

// FieldError describes a validation error for a specific field.
type FieldError struct {
	Field   string
	Message string
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

// QueryParseError is a rejected query. Message is shown to the caller as is.
type QueryParseError struct {
	Query   string
	Message string
	kind    error
}

func (e *QueryParseError) Error() string { return e.Message }

// Unwrap returns ErrQueryParse, or ErrUnsupportedQuery for queries that
// parsed but cannot be executed.
func (e *QueryParseError) Unwrap() error {
	if e.kind != nil {
		return e.kind
	}
	return ErrQueryParse
}

// NewQueryParseError creates a QueryParseError with a formatted message.
func NewQueryParseError(format string, args ...any) *QueryParseError {
	return &QueryParseError{Message: fmt.Sprintf(format, args...)}
}

// NewUnsupportedQueryError creates a QueryParseError that unwraps to ErrUnsupportedQuery.
func NewUnsupportedQueryError(query, message string) *QueryParseError {
	return &QueryParseError{Query: query, Message: message, kind: ErrUnsupportedQuery}
}
