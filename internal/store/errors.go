package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a record is absent, or exists but is not
// visible to the caller (a non-admin asking for someone else's todo).
var ErrNotFound = errors.New("not found")

// ValidationError reports rejected input: empty or duplicate fields, unknown
// enum values. The message is safe to show to the user.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Validationf builds a ValidationError from a format string.
func Validationf(format string, args ...any) *ValidationError {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// ConflictError reports a mutation blocked by a state rule: removing the last
// active admin, or an admin acting on their own account.
type ConflictError struct {
	msg string
}

func (e *ConflictError) Error() string { return e.msg }

// Conflictf builds a ConflictError from a format string.
func Conflictf(format string, args ...any) *ConflictError {
	return &ConflictError{msg: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsConflict reports whether err is (or wraps) a ConflictError.
func IsConflict(err error) bool {
	var ce *ConflictError
	return errors.As(err, &ce)
}
