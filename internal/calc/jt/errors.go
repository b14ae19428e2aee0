package jt

import (
	"errors"
	"fmt"
)

// ErrInvalidInput — a field failed validation; no solver call was made.
var ErrInvalidInput = errors.New("invalid input")

// InputError names the offending field. It wraps ErrInvalidInput so callers
// can classify without matching strings.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

func invalidf(field, format string, args ...interface{}) error {
	return &InputError{Field: field, Message: fmt.Sprintf(format, args...)}
}

// NewInputError lets sibling packages (sweep, ws) report validation failures
// in the same taxonomy.
func NewInputError(field, message string) error {
	return &InputError{Field: field, Message: message}
}
