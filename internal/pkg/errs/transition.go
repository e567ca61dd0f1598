package errs

import (
	"errors"
	"fmt"
)

// ErrInvalidTransition is the sentinel for disallowed order status transitions.
var ErrInvalidTransition = errors.New("order status transition is invalid")

// InvalidTransitionError indicates that an order status transition is
// not in the allowed set. It names both the current and the requested
// states; a disallowed transition must never silently no-op.
type InvalidTransitionError struct {
	From string
	To   string
}

// NewInvalidTransitionError creates an InvalidTransitionError.
func NewInvalidTransitionError(from, to string) *InvalidTransitionError {
	return &InvalidTransitionError{From: from, To: to}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: %s -> %s", ErrInvalidTransition, sanitize(e.From), sanitize(e.To))
}

func (e *InvalidTransitionError) Unwrap() error { return ErrInvalidTransition }
