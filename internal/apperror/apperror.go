// Package apperror defines the error taxonomy shared by the persistence
// gateway, the form boundary and the HTTP handlers.
package apperror

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
	ErrParse      = errors.New("parse error")
	ErrConstraint = errors.New("constraint violation")
)

// Constraint kinds reported by the store.
const (
	ConstraintUnique     = "unique"
	ConstraintForeignKey = "foreign_key"
	ConstraintNotNull    = "not_null"
	ConstraintCheck      = "check"
)

type AppError struct {
	Err        error  // sentinel, one of the Err* values above
	Message    string // human-readable message
	Field      string // form field for validation and parse errors
	Constraint string // constraint kind for violations
	Detail     string // store-provided detail for violations
	Cause      error  // underlying driver error, if any
}

func (e *AppError) Error() string {
	return e.Message
}

// Unwrap exposes both the sentinel and the driver cause to errors.Is/As.
func (e *AppError) Unwrap() []error {
	if e.Cause != nil {
		return []error{e.Err, e.Cause}
	}
	return []error{e.Err}
}

func NotFound(resource, id string) *AppError {
	return &AppError{
		Err:     ErrNotFound,
		Message: fmt.Sprintf("%s not found with id %s", resource, id),
	}
}

func ValidationFailed(field, message string) *AppError {
	return &AppError{
		Err:     ErrValidation,
		Message: message,
		Field:   field,
	}
}

// ParseFailed reports malformed text for a typed field (date, time, number).
func ParseFailed(field, value, expected string) *AppError {
	return &AppError{
		Err:     ErrParse,
		Message: fmt.Sprintf("%s: %q is not a valid %s", field, value, expected),
		Field:   field,
	}
}

// ConstraintViolation wraps a write the store rejected.
func ConstraintViolation(kind, detail string, cause error) *AppError {
	msg := fmt.Sprintf("%s constraint violated", kind)
	if detail != "" {
		msg += ": " + detail
	}
	return &AppError{
		Err:        ErrConstraint,
		Message:    msg,
		Constraint: kind,
		Detail:     detail,
		Cause:      cause,
	}
}

// IsNotFound reports whether err is a NotFound outcome.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConstraint reports whether err is a ConstraintViolation, optionally of a given kind.
func IsConstraint(err error, kind string) bool {
	var appErr *AppError
	if !errors.As(err, &appErr) || !errors.Is(appErr.Err, ErrConstraint) {
		return false
	}
	return kind == "" || appErr.Constraint == kind
}
