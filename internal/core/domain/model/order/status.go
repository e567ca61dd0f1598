package order

import (
	"fmt"

	"shipquote/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	New ──> InProgress ──> Delivered
//	 │          │
//	 └──────────┴────────> Canceled
//
// Delivered and Canceled are terminal: no transition leaves them, and
// an attempted transition out of them fails rather than silently
// no-opping.
type Status int

const (
	// StatusUnknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	StatusUnknown Status = iota

	// StatusNew is the initial status, set when an order is created
	// from an accepted shipping option.
	StatusNew

	// StatusInProgress indicates the shipment has been handed to the
	// carrier and is moving.
	StatusInProgress

	// StatusDelivered indicates successful delivery. Terminal.
	StatusDelivered

	// StatusCanceled indicates the order was canceled before delivery.
	// Terminal.
	StatusCanceled
)

var statusStrings = map[Status]string{
	StatusNew:        "new",
	StatusInProgress: "in_progress",
	StatusDelivered:  "delivered",
	StatusCanceled:   "canceled",
}

// allowedTransitions is the full transition relation of the state
// machine. Absence means the transition is invalid.
var allowedTransitions = map[Status][]Status{
	StatusNew:        {StatusInProgress, StatusCanceled},
	StatusInProgress: {StatusDelivered, StatusCanceled},
}

// String returns the wire name of the status, or "unknown" for
// invalid values. Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := statusStrings[s]; ok {
		return str
	}
	return "unknown"
}

// Validate checks that the status is one of the defined values.
func (s Status) Validate() error {
	if _, ok := statusStrings[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// CanTransitionTo reports whether the transition s -> target is in the
// allowed set.
func (s Status) CanTransitionTo(target Status) bool {
	for _, allowed := range allowedTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// TransitionTo validates and performs the transition s -> target.
//
// Returns:
//   - (target, nil) when the transition is allowed
//   - (0, InvalidTransitionError) naming both states otherwise
func (s Status) TransitionTo(target Status) (Status, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}

	if !s.CanTransitionTo(target) {
		return 0, errs.NewInvalidTransitionError(s.String(), target.String())
	}

	return target, nil
}

// ParseStatus resolves a wire name to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range statusStrings {
		if name == s {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}
