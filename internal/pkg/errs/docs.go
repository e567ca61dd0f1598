// Package errs provides the standardized error types used across the
// rate-aggregation engine.
//
// Each failure kind follows the same pattern:
//   - a sentinel error variable (e.g. ErrUpstreamTimeout)
//   - a struct type carrying the failure details
//   - constructor functions with and without a cause
//   - an Error() method for formatting
//   - an Unwrap() method returning the sentinel, so errors.Is works
//
// The carrier-facing kinds (NotConfiguredError, UpstreamTimeoutError,
// UpstreamRejectedError, InvalidQuoteError) are caught inside the rate
// aggregator and converted into estimated fallback options; the
// request-level kinds (InvalidAddressError, NoCarriersEnabledError)
// abort the whole aggregate request.
package errs
