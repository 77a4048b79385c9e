// Package apperror defines the error kinds services return and the HTTP
// status each one maps to.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// NotFoundError reports that a lookup by Field=Value found no Resource.
type NotFoundError struct {
	Resource string
	Field    string
	Value    any
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with %s: %v", e.Resource, e.Field, e.Value)
}

// NotFound builds a NotFoundError.
func NotFound(resource, field string, value any) error {
	return &NotFoundError{Resource: resource, Field: field, Value: value}
}

// BusinessError reports a request that breaks a domain rule, such as
// checking out an empty cart or asking for more stock than exists.
type BusinessError struct {
	Reason string
}

func (e *BusinessError) Error() string { return e.Reason }

// Business builds a BusinessError with a formatted reason.
func Business(format string, args ...any) error {
	return &BusinessError{Reason: fmt.Sprintf(format, args...)}
}

// ConflictError reports a uniqueness clash on a user-supplied identifier.
type ConflictError struct {
	Reason string
}

func (e *ConflictError) Error() string { return e.Reason }

// Conflict builds a ConflictError with a formatted reason.
func Conflict(format string, args ...any) error {
	return &ConflictError{Reason: fmt.Sprintf(format, args...)}
}

// ValidationError reports request fields that failed validation, keyed by
// field name.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "validation failed" }

// PersistenceError wraps a failure of the underlying store.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// Persistence wraps err as a PersistenceError. It returns nil for a nil err
// and leaves errors that already carry a kind untouched.
func Persistence(op string, err error) error {
	if err == nil {
		return nil
	}
	if Kind(err) != "" {
		return err
	}
	return &PersistenceError{Op: op, Err: err}
}

// ErrInvalidCredentials is returned for any failed login.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrForbidden is returned when the caller lacks the role for an action.
var ErrForbidden = errors.New("access denied")

// Kind names the category of err, or "" when err carries none.
func Kind(err error) string {
	var (
		nf *NotFoundError
		be *BusinessError
		ce *ConflictError
		pe *PersistenceError
		ve *ValidationError
	)
	switch {
	case errors.As(err, &nf):
		return "not_found"
	case errors.As(err, &be):
		return "business_rule"
	case errors.As(err, &ce):
		return "conflict"
	case errors.As(err, &ve):
		return "validation"
	case errors.As(err, &pe):
		return "persistence"
	case errors.Is(err, ErrInvalidCredentials):
		return "unauthorized"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	}
	return ""
}

// StatusCode maps err to the HTTP status the API answers with.
func StatusCode(err error) int {
	switch Kind(err) {
	case "not_found":
		return http.StatusNotFound
	case "business_rule", "validation":
		return http.StatusBadRequest
	case "conflict":
		return http.StatusConflict
	case "unauthorized":
		return http.StatusUnauthorized
	case "forbidden":
		return http.StatusForbidden
	}
	return http.StatusInternalServerError
}
