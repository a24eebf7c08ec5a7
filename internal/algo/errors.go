package algo

import (
	"errors"
	"fmt"
)

var (
	// ErrDone is returned by Process.Next once the algorithm has no more steps.
	ErrDone = errors.New("algo: process complete")

	// ErrInvalidInput is matched by every *InputError.
	ErrInvalidInput = errors.New("algo: invalid input")

	// ErrInconsistent indicates an event the board cannot apply.
	ErrInconsistent = errors.New("algo: inconsistent event")
)

// InputError is returned when a Process cannot be constructed from its input.
type InputError struct {
	Algorithm string
	Field     string
	Reason    string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %s", e.Algorithm, e.Field, e.Reason)
}

func (e *InputError) Unwrap() error { return ErrInvalidInput }

// Invalid builds an InputError with a formatted reason.
func Invalid(algorithm, field, format string, args ...any) *InputError {
	return &InputError{Algorithm: algorithm, Field: field, Reason: fmt.Sprintf(format, args...)}
}

// Inconsistent builds an error that wraps ErrInconsistent.
func Inconsistent(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInconsistent, fmt.Sprintf(format, args...))
}
