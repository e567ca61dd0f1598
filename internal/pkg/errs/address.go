package errs

import (
	"errors"
	"fmt"
)

// ErrInvalidAddress is the sentinel for address parsing and validation failures.
var ErrInvalidAddress = errors.New("address is invalid")

// InvalidAddressError indicates that an address cannot be used for a
// carrier call. Subject names which address failed ("origin",
// "destination", or the raw field name at parse time) so callers can
// report the failing side without inspecting the message.
type InvalidAddressError struct {
	Subject string
	Reason  string
	Cause   error
}

// NewInvalidAddressError creates an InvalidAddressError without a cause.
func NewInvalidAddressError(subject, reason string) *InvalidAddressError {
	return &InvalidAddressError{Subject: subject, Reason: reason}
}

// NewInvalidAddressErrorWithCause creates an InvalidAddressError with a cause.
func NewInvalidAddressErrorWithCause(subject, reason string, cause error) *InvalidAddressError {
	return &InvalidAddressError{Subject: subject, Reason: reason, Cause: cause}
}

func (e *InvalidAddressError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s (cause: %s)",
			ErrInvalidAddress, sanitize(e.Subject), sanitize(e.Reason), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidAddress, sanitize(e.Subject), sanitize(e.Reason))
}

func (e *InvalidAddressError) Unwrap() error { return ErrInvalidAddress }
