package eventlog

import (
	"errors"
	"fmt"
)

// ErrInvalidEvent is wrapped by every validation error so callers can match
// them all with errors.Is.
var ErrInvalidEvent = errors.New("invalid log event")

// MissingFieldError reports an empty stack, level or package.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

func (e *MissingFieldError) Unwrap() error { return ErrInvalidEvent }

// InvalidStackError reports a stack outside the known set.
type InvalidStackError struct {
	Value string
}

func (e *InvalidStackError) Error() string {
	return fmt.Sprintf("invalid stack: %s", e.Value)
}

func (e *InvalidStackError) Unwrap() error { return ErrInvalidEvent }

// InvalidLevelError reports a level outside the known set.
type InvalidLevelError struct {
	Value string
}

func (e *InvalidLevelError) Error() string {
	return fmt.Sprintf("invalid level: %s", e.Value)
}

func (e *InvalidLevelError) Unwrap() error { return ErrInvalidEvent }

// InvalidPackageError reports a package that is not allowed for Stack.
type InvalidPackageError struct {
	Value string
	Stack Stack
}

func (e *InvalidPackageError) Error() string {
	return fmt.Sprintf("invalid package %q for stack %q", e.Value, e.Stack)
}

func (e *InvalidPackageError) Unwrap() error { return ErrInvalidEvent }

// rejectReason maps a validation error to a short metric label.
func rejectReason(err error) string {
	var (
		missing *MissingFieldError
		stack   *InvalidStackError
		level   *InvalidLevelError
		pkg     *InvalidPackageError
	)
	switch {
	case errors.As(err, &missing):
		return "missing_field"
	case errors.As(err, &stack):
		return "invalid_stack"
	case errors.As(err, &level):
		return "invalid_level"
	case errors.As(err, &pkg):
		return "invalid_package"
	default:
		return "unknown"
	}
}
