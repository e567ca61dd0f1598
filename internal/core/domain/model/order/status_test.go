package order_test

import (
	"fmt"
	"testing"

	"shipquote/internal/core/domain/model/order"
	"shipquote/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	testCases := []struct {
		status   order.Status
		expected string
	}{
		{order.StatusNew, "new"},
		{order.StatusInProgress, "in_progress"},
		{order.StatusDelivered, "delivered"},
		{order.StatusCanceled, "canceled"},
		{order.StatusUnknown, "unknown"},
		{order.Status(99), "unknown"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.expected, tc.status.String())
	}
}

func TestStatus_TransitionTo(t *testing.T) {
	t.Run("allowed transitions", func(t *testing.T) {
		allowed := []struct {
			from order.Status
			to   order.Status
		}{
			{order.StatusNew, order.StatusInProgress},
			{order.StatusNew, order.StatusCanceled},
			{order.StatusInProgress, order.StatusDelivered},
			{order.StatusInProgress, order.StatusCanceled},
		}

		for _, tc := range allowed {
			t.Run(fmt.Sprintf("%s to %s", tc.from, tc.to), func(t *testing.T) {
				next, err := tc.from.TransitionTo(tc.to)
				require.NoError(t, err)
				assert.Equal(t, tc.to, next)
			})
		}
	})

	t.Run("disallowed transitions", func(t *testing.T) {
		disallowed := []struct {
			from order.Status
			to   order.Status
		}{
			{order.StatusNew, order.StatusDelivered},
			{order.StatusDelivered, order.StatusInProgress},
			{order.StatusDelivered, order.StatusCanceled},
			{order.StatusCanceled, order.StatusInProgress},
			{order.StatusCanceled, order.StatusDelivered},
			{order.StatusInProgress, order.StatusNew},
			{order.StatusDelivered, order.StatusNew},
		}

		for _, tc := range disallowed {
			t.Run(fmt.Sprintf("%s to %s", tc.from, tc.to), func(t *testing.T) {
				_, err := tc.from.TransitionTo(tc.to)
				require.Error(t, err)
				require.ErrorIs(t, err, errs.ErrInvalidTransition)

				var transitionErr *errs.InvalidTransitionError
				require.ErrorAs(t, err, &transitionErr)
				assert.Equal(t, tc.from.String(), transitionErr.From)
				assert.Equal(t, tc.to.String(), transitionErr.To)
			})
		}
	})

	t.Run("transition to an undefined status fails validation", func(t *testing.T) {
		_, err := order.StatusNew.TransitionTo(order.Status(42))
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestParseStatus(t *testing.T) {
	t.Run("should parse valid names", func(t *testing.T) {
		for name, expected := range map[string]order.Status{
			"new":         order.StatusNew,
			"in_progress": order.StatusInProgress,
			"delivered":   order.StatusDelivered,
			"canceled":    order.StatusCanceled,
		} {
			parsed, err := order.ParseStatus(name)
			require.NoError(t, err)
			assert.Equal(t, expected, parsed)
		}
	})

	t.Run("should reject unknown names", func(t *testing.T) {
		_, err := order.ParseStatus("shipped")
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
