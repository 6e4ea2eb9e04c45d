// Package apperr separates user mistakes from operational failures.
//
// A UserError is caused by missing or invalid input (a bad flag, an
// out-of-range value). The CLI prints only its message. Everything else is a
// plain error wrapped with fmt.Errorf("context: %w", err).
package apperr

import (
	"errors"
	"fmt"
)

// UserError represents an error caused by invalid or missing user input
type UserError struct {
	Message string
}

func (e *UserError) Error() string { return e.Message }

// Userf creates a formatted UserError
func Userf(format string, args ...any) error {
	return &UserError{Message: fmt.Sprintf(format, args...)}
}

// IsUser reports whether err is (or wraps) a *UserError
func IsUser(err error) bool {
	var u *UserError
	return errors.As(err, &u)
}
