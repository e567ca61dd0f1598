package errs_test

import (
	"errors"
	"testing"
	"time"

	"shipquote/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvalidAddressError(t *testing.T) {
	t.Run("NewInvalidAddressError", func(t *testing.T) {
		err := errs.NewInvalidAddressError("origin", "city could not be resolved")

		assert.Equal(t, "origin", err.Subject)
		assert.Equal(t, "address is invalid: origin: city could not be resolved", err.Error())
		require.ErrorIs(t, err, errs.ErrInvalidAddress)
	})

	t.Run("NewInvalidAddressErrorWithCause", func(t *testing.T) {
		cause := errors.New("raw text is empty")
		err := errs.NewInvalidAddressErrorWithCause("destination", "unparseable", cause)

		assert.Equal(t, cause, err.Cause)
		assert.Equal(t, "address is invalid: destination: unparseable (cause: raw text is empty)", err.Error())
		require.ErrorIs(t, err, errs.ErrInvalidAddress)
	})

	t.Run("sanitizes newlines", func(t *testing.T) {
		err := errs.NewInvalidAddressError("origin", "line\nbreak")
		assert.NotContains(t, err.Error(), "\n")
		assert.Contains(t, err.Error(), "line break")
	})
}

func TestNotConfiguredError(t *testing.T) {
	err := errs.NewNotConfiguredError("aramex", []string{"username", "password"})

	assert.Equal(t, "aramex", err.CarrierID)
	assert.Equal(t, []string{"username", "password"}, err.Missing)
	assert.Equal(t, "carrier is not configured: aramex (missing: username, password)", err.Error())
	require.ErrorIs(t, err, errs.ErrNotConfigured)
}

func TestUpstreamTimeoutError(t *testing.T) {
	t.Run("without cause", func(t *testing.T) {
		err := errs.NewUpstreamTimeoutError("smsa", 30*time.Second, nil)
		assert.Equal(t, "carrier call timed out: smsa after 30s", err.Error())
		require.ErrorIs(t, err, errs.ErrUpstreamTimeout)
	})

	t.Run("with cause", func(t *testing.T) {
		err := errs.NewUpstreamTimeoutError("smsa", time.Second, errors.New("context deadline exceeded"))
		assert.Equal(t, "carrier call timed out: smsa after 1s (cause: context deadline exceeded)", err.Error())
	})
}

func TestUpstreamRejectedError(t *testing.T) {
	err := errs.NewUpstreamRejectedError("aramex", "ERR52: destination country not served")

	assert.Contains(t, err.Error(), "ERR52: destination country not served")
	require.ErrorIs(t, err, errs.ErrUpstreamRejected)
}

func TestInvalidQuoteError(t *testing.T) {
	err := errs.NewInvalidQuoteError("aramex", -3.5)

	assert.Equal(t, "carrier returned an invalid quote: aramex quoted -3.50", err.Error())
	require.ErrorIs(t, err, errs.ErrInvalidQuote)
}

func TestNoCarriersEnabledError(t *testing.T) {
	t.Run("without requested list", func(t *testing.T) {
		err := errs.NewNoCarriersEnabledError(nil)
		assert.Equal(t, "no carriers enabled", err.Error())
		require.ErrorIs(t, err, errs.ErrNoCarriersEnabled)
	})

	t.Run("with requested list", func(t *testing.T) {
		err := errs.NewNoCarriersEnabledError([]string{"aramex", "smsa"})
		assert.Equal(t, "no carriers enabled (requested: aramex, smsa)", err.Error())
	})
}

func TestInvalidTransitionError(t *testing.T) {
	err := errs.NewInvalidTransitionError("delivered", "in_progress")

	assert.Equal(t, "delivered", err.From)
	assert.Equal(t, "in_progress", err.To)
	assert.Equal(t, "order status transition is invalid: delivered -> in_progress", err.Error())
	require.ErrorIs(t, err, errs.ErrInvalidTransition)
}

func TestValueErrors(t *testing.T) {
	t.Run("required", func(t *testing.T) {
		err := errs.NewValueIsRequiredError("weightKg")
		assert.Equal(t, "value is required: weightKg", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("invalid with cause", func(t *testing.T) {
		cause := errors.New("-1.0 is not greater than 0")
		err := errs.NewValueIsInvalidErrorWithCause("weightKg", cause)
		assert.Equal(t, "value is invalid: weightKg (cause: -1.0 is not greater than 0)", err.Error())
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestObjectNotFoundError(t *testing.T) {
	err := errs.NewObjectNotFoundError("order", "8f14e45f")

	assert.Equal(t, "object not found: 8f14e45f", err.Error())
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
