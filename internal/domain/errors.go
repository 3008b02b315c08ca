package domain

import (
	"errors"  // Error inspection
	"sort"    // Sorting
	"strings" // String helpers
)

// Error kinds. The API layer maps each kind to one HTTP status.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrForbidden       = errors.New("you do not have permission to perform this action")
	ErrUnauthenticated = errors.New("authentication credentials were not provided")
	ErrBadRequest      = errors.New("bad request")
)

var ErrSelfFollow = NewError(ErrBadRequest, "you cannot subscribe to yourself")

// Error attaches a client-facing detail message to an error kind.
type Error struct {
	Kind   error
	Detail string
}

// NewError pairs kind with a detail message.
func NewError(kind error, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

func (e *Error) Error() string { return e.Detail }

func (e *Error) Unwrap() error { return e.Kind }

// ValidationError collects messages per input field.
type ValidationError struct {
	Fields map[string][]string
}

// NewValidationError returns an empty collection.
func NewValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

// FieldError is a shortcut for a validation error on a single field.
func FieldError(field, msg string) *ValidationError {
	v := NewValidationError()
	v.Add(field, msg)
	return v
}

// Add records msg for field.
func (e *ValidationError) Add(field, msg string) {
	e.Fields[field] = append(e.Fields[field], msg)
}

// Merge appends every message of other into e.
func (e *ValidationError) Merge(other *ValidationError) {
	if other == nil {
		return
	}
	for field, msgs := range other.Fields {
		e.Fields[field] = append(e.Fields[field], msgs...)
	}
}

// Empty reports whether no message was recorded.
func (e *ValidationError) Empty() bool { return len(e.Fields) == 0 }

// OrNil returns nil for an empty collection so callers never return a typed nil.
func (e *ValidationError) OrNil() error {
	if e == nil || e.Empty() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, f+": "+strings.Join(e.Fields[f], "; "))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
