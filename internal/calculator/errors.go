package calculator

import (
	"errors"
	"fmt"
)

// ErrInvalidInput is returned for negative amounts, quantities, prices or
// percentages and for unordered attendance intervals. Callers match it with
// errors.Is.
var ErrInvalidInput = errors.New("invalid input")

// InputError wraps ErrInvalidInput with the offending field.
type InputError struct {
	Field  string
	Reason string
}

func (e *InputError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %s", ErrInvalidInput, e.Reason)
	}
	return fmt.Sprintf("%s: %s %s", ErrInvalidInput, e.Field, e.Reason)
}

func (e *InputError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, reason string) error {
	return &InputError{Field: field, Reason: reason}
}
