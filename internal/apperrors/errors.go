package apperrors

import (
	"errors"
	"strings"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates that the request conflicts with the current state of a resource
// (type mismatch, double reversal, invalid status transition).
var ErrConflict = errors.New("conflict")

// ErrForbidden indicates that the actor is not allowed to perform the operation.
var ErrForbidden = errors.New("forbidden")

// ErrPersistence indicates a datastore failure.
var ErrPersistence = errors.New("persistence error")

// FieldError describes a single problem with an inbound field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// AppError is a structured error with a stable kind (one of the sentinels above),
// an optional list of field problems, and the wrapped cause.
type AppError struct {
	Kind    error
	Message string
	Fields  []FieldError
	Err     error
}

func (e *AppError) Error() string {
	var sb strings.Builder
	sb.WriteString(e.Message)
	if len(e.Fields) > 0 {
		sb.WriteString(": ")
		for i, f := range e.Fields {
			if i > 0 {
				sb.WriteString("; ")
			}
			sb.WriteString(f.Field + " " + f.Message)
		}
	}
	if e.Err != nil {
		sb.WriteString(": " + e.Err.Error())
	}
	return sb.String()
}

// Unwrap exposes both the kind and the cause so errors.Is matches either.
func (e *AppError) Unwrap() []error {
	errs := make([]error, 0, 2)
	if e.Kind != nil {
		errs = append(errs, e.Kind)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

// NewAppError creates an AppError of the given kind.
func NewAppError(kind error, message string, err error) *AppError {
	return &AppError{Kind: kind, Message: message, Err: err}
}

// NewNotFoundError creates a not-found error with a message.
func NewNotFoundError(message string) *AppError {
	return &AppError{Kind: ErrNotFound, Message: message}
}

// NewConflictError creates a conflict error with a message.
func NewConflictError(message string) *AppError {
	return &AppError{Kind: ErrConflict, Message: message}
}

// NewPersistenceError wraps a datastore failure.
func NewPersistenceError(message string, err error) *AppError {
	return &AppError{Kind: ErrPersistence, Message: message, Err: err}
}

// NewValidationError creates a validation error carrying per-field problems.
func NewValidationError(fields ...FieldError) *AppError {
	return &AppError{Kind: ErrValidation, Message: "validation failed", Fields: fields}
}

// FieldErrors returns the field problems carried by err, if any.
func FieldErrors(err error) []FieldError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Fields
	}
	return nil
}

// Kind reports the stable kind name of err, defaulting to "internal".
func Kind(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "validation"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrConflict):
		return "conflict"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	default:
		return "internal"
	}
}
