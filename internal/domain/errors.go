package domain

import (
	"errors"
	"fmt"
)

// ValidationError missing or invalid input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// ConflictError a state conflict (double start/stop, duplicate registration).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

// NotFoundError a required record does not exist.
type NotFoundError struct {
	Entity string
}

func (e *NotFoundError) Error() string { return fmt.Sprintf("%s not found", e.Entity) }

// AuthError missing session or bad credentials.
type AuthError struct {
	Msg string
}

func (e *AuthError) Error() string { return e.Msg }

func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func Conflictf(format string, args ...any) error {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

func NotFound(entity string) error {
	return &NotFoundError{Entity: entity}
}

func Authf(format string, args ...any) error {
	return &AuthError{Msg: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err wraps a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
