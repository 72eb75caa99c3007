package store

import (
	"errors"
	"fmt"
)

var (
	// ErrValidation indicates a missing or malformed input field.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound indicates no entry has the requested id.
	ErrNotFound = errors.New("entry not found")
	// ErrIO indicates the store or an interchange file could not be read or written.
	ErrIO = errors.New("i/o failure")
	// ErrParse indicates a stored numeric field is not an integer.
	ErrParse = errors.New("parse failure")
	// ErrDivideByZero indicates an average over zero repetitions.
	ErrDivideByZero = errors.New("division by zero")
)

// ParseError reports a weight or repetitions value that is not an integer.
type ParseError struct {
	ID    int
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("entry %d: %s %q is not an integer", e.ID, e.Field, e.Value)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports ErrParse so callers can match without a type assertion.
func (e *ParseError) Is(target error) bool { return target == ErrParse }

func validationErr(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidation, fmt.Sprintf(format, args...))
}

func notFound(id int) error {
	return fmt.Errorf("%w: id %d", ErrNotFound, id)
}
