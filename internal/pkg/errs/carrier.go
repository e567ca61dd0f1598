package errs

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrNotConfigured is the sentinel for carriers with missing or
	// incomplete credentials.
	ErrNotConfigured = errors.New("carrier is not configured")

	// ErrUpstreamTimeout is the sentinel for carrier calls that
	// exceeded their deadline.
	ErrUpstreamTimeout = errors.New("carrier call timed out")

	// ErrUpstreamRejected is the sentinel for carrier calls the
	// carrier itself answered with an error notification.
	ErrUpstreamRejected = errors.New("carrier rejected the request")

	// ErrInvalidQuote is the sentinel for carrier responses carrying a
	// non-positive or missing amount.
	ErrInvalidQuote = errors.New("carrier returned an invalid quote")

	// ErrNoCarriersEnabled is the sentinel for aggregate requests with
	// no enabled carrier to quote against.
	ErrNoCarriersEnabled = errors.New("no carriers enabled")
)

// NotConfiguredError indicates that a carrier cannot be called because
// required configuration is missing. Missing enumerates exactly which
// credential fields are absent.
type NotConfiguredError struct {
	CarrierID string
	Missing   []string
}

// NewNotConfiguredError creates a NotConfiguredError listing the missing fields.
func NewNotConfiguredError(carrierID string, missing []string) *NotConfiguredError {
	return &NotConfiguredError{CarrierID: carrierID, Missing: missing}
}

func (e *NotConfiguredError) Error() string {
	return fmt.Sprintf("%s: %s (missing: %s)",
		ErrNotConfigured, sanitize(e.CarrierID), sanitize(strings.Join(e.Missing, ", ")))
}

func (e *NotConfiguredError) Unwrap() error { return ErrNotConfigured }

// UpstreamTimeoutError indicates that a carrier did not answer within
// its per-carrier timeout.
type UpstreamTimeoutError struct {
	CarrierID string
	Timeout   time.Duration
	Cause     error
}

// NewUpstreamTimeoutError creates an UpstreamTimeoutError.
func NewUpstreamTimeoutError(carrierID string, timeout time.Duration, cause error) *UpstreamTimeoutError {
	return &UpstreamTimeoutError{CarrierID: carrierID, Timeout: timeout, Cause: cause}
}

func (e *UpstreamTimeoutError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s after %s (cause: %s)",
			ErrUpstreamTimeout, sanitize(e.CarrierID), e.Timeout, sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s after %s", ErrUpstreamTimeout, sanitize(e.CarrierID), e.Timeout)
}

func (e *UpstreamTimeoutError) Unwrap() error { return ErrUpstreamTimeout }

// UpstreamRejectedError indicates that the carrier answered with an
// error notification. Message carries the carrier's own error text.
type UpstreamRejectedError struct {
	CarrierID string
	Message   string
	Cause     error
}

// NewUpstreamRejectedError creates an UpstreamRejectedError without a cause.
func NewUpstreamRejectedError(carrierID, message string) *UpstreamRejectedError {
	return &UpstreamRejectedError{CarrierID: carrierID, Message: message}
}

// NewUpstreamRejectedErrorWithCause creates an UpstreamRejectedError with a cause.
func NewUpstreamRejectedErrorWithCause(carrierID, message string, cause error) *UpstreamRejectedError {
	return &UpstreamRejectedError{CarrierID: carrierID, Message: message, Cause: cause}
}

func (e *UpstreamRejectedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %s (cause: %s)",
			ErrUpstreamRejected, sanitize(e.CarrierID), sanitize(e.Message), sanitize(e.Cause))
	}
	return fmt.Sprintf("%s: %s: %s", ErrUpstreamRejected, sanitize(e.CarrierID), sanitize(e.Message))
}

func (e *UpstreamRejectedError) Unwrap() error { return ErrUpstreamRejected }

// InvalidQuoteError indicates that the carrier answered successfully
// but the quoted amount is non-positive or missing. Such a response is
// a carrier failure, never a valid quote.
type InvalidQuoteError struct {
	CarrierID string
	Amount    float64
}

// NewInvalidQuoteError creates an InvalidQuoteError.
func NewInvalidQuoteError(carrierID string, amount float64) *InvalidQuoteError {
	return &InvalidQuoteError{CarrierID: carrierID, Amount: amount}
}

func (e *InvalidQuoteError) Error() string {
	return fmt.Sprintf("%s: %s quoted %.2f", ErrInvalidQuote, sanitize(e.CarrierID), e.Amount)
}

func (e *InvalidQuoteError) Unwrap() error { return ErrInvalidQuote }

// NoCarriersEnabledError indicates that an aggregate quote request had
// no enabled carrier to dispatch to. This is a configuration failure
// of the whole request, distinct from any per-carrier failure.
type NoCarriersEnabledError struct {
	Requested []string
}

// NewNoCarriersEnabledError creates a NoCarriersEnabledError.
func NewNoCarriersEnabledError(requested []string) *NoCarriersEnabledError {
	return &NoCarriersEnabledError{Requested: requested}
}

func (e *NoCarriersEnabledError) Error() string {
	if len(e.Requested) > 0 {
		return fmt.Sprintf("%s (requested: %s)", ErrNoCarriersEnabled, sanitize(strings.Join(e.Requested, ", ")))
	}
	return ErrNoCarriersEnabled.Error()
}

func (e *NoCarriersEnabledError) Unwrap() error { return ErrNoCarriersEnabled }
