package order_test

import (
	"testing"

	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	t.Run("should pass for all defined statuses", func(t *testing.T) {
		statuses := []order.Status{
			order.Created, order.Confirmed, order.Packed, order.Shipped,
			order.Delivered, order.Cancelled, order.Returned,
		}
		for _, s := range statuses {
			require.NoError(t, s.Validate(), "status %s should be valid", s)
		}
	})

	t.Run("should fail for unknown status", func(t *testing.T) {
		err := order.Unknown.Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "status is invalid")
	})

	t.Run("should fail for out of range value", func(t *testing.T) {
		err := order.Status(99).Validate()

		require.Error(t, err)
		assert.Contains(t, err.Error(), "99 is not a valid status")
	})
}

func TestStatus_String(t *testing.T) {
	cases := map[order.Status]string{
		order.Unknown:   "unknown",
		order.Created:   "created",
		order.Confirmed: "confirmed",
		order.Packed:    "packed",
		order.Shipped:   "shipped",
		order.Delivered: "delivered",
		order.Cancelled: "cancelled",
		order.Returned:  "returned",
	}

	for status, expected := range cases {
		assert.Equal(t, expected, status.String())
	}

	assert.Equal(t, "unknown", order.Status(99).String())
}

func TestStatusFromString(t *testing.T) {
	t.Run("should round trip every defined status", func(t *testing.T) {
		statuses := []order.Status{
			order.Created, order.Confirmed, order.Packed, order.Shipped,
			order.Delivered, order.Cancelled, order.Returned,
		}
		for _, s := range statuses {
			parsed, err := order.StatusFromString(s.String())

			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("should reject unknown name", func(t *testing.T) {
		_, err := order.StatusFromString("misplaced")

		require.Error(t, err)
		assert.Contains(t, err.Error(), `"misplaced" is not a valid status`)
	})

	t.Run("should reject the literal unknown", func(t *testing.T) {
		_, err := order.StatusFromString("unknown")

		require.Error(t, err)
	})
}

func TestStatus_CanTransitionTo(t *testing.T) {
	t.Run("should allow every edge of the graph", func(t *testing.T) {
		edges := []struct{ from, to order.Status }{
			{order.Created, order.Confirmed},
			{order.Created, order.Cancelled},
			{order.Confirmed, order.Packed},
			{order.Confirmed, order.Cancelled},
			{order.Packed, order.Shipped},
			{order.Packed, order.Cancelled},
			{order.Shipped, order.Delivered},
			{order.Shipped, order.Returned},
			{order.Shipped, order.Cancelled},
			{order.Delivered, order.Returned},
		}
		for _, e := range edges {
			assert.True(t, e.from.CanTransitionTo(e.to), "%s -> %s should be allowed", e.from, e.to)
		}
	})

	t.Run("should reject skipping steps", func(t *testing.T) {
		assert.False(t, order.Created.CanTransitionTo(order.Packed))
		assert.False(t, order.Created.CanTransitionTo(order.Shipped))
		assert.False(t, order.Confirmed.CanTransitionTo(order.Delivered))
		assert.False(t, order.Packed.CanTransitionTo(order.Delivered))
	})

	t.Run("should reject moving backwards", func(t *testing.T) {
		assert.False(t, order.Confirmed.CanTransitionTo(order.Created))
		assert.False(t, order.Shipped.CanTransitionTo(order.Packed))
		assert.False(t, order.Delivered.CanTransitionTo(order.Shipped))
	})

	t.Run("should reject returns before shipment", func(t *testing.T) {
		assert.False(t, order.Created.CanTransitionTo(order.Returned))
		assert.False(t, order.Confirmed.CanTransitionTo(order.Returned))
		assert.False(t, order.Packed.CanTransitionTo(order.Returned))
	})

	t.Run("should reject cancelling delivered orders", func(t *testing.T) {
		assert.False(t, order.Delivered.CanTransitionTo(order.Cancelled))
	})

	t.Run("terminal statuses have no outgoing edges", func(t *testing.T) {
		all := []order.Status{
			order.Created, order.Confirmed, order.Packed, order.Shipped,
			order.Delivered, order.Cancelled, order.Returned,
		}
		for _, target := range all {
			assert.False(t, order.Cancelled.CanTransitionTo(target))
			assert.False(t, order.Returned.CanTransitionTo(target))
		}
	})
}

func TestStatus_NextStatuses(t *testing.T) {
	t.Run("should list outgoing edges in graph order", func(t *testing.T) {
		assert.Equal(t, []order.Status{order.Confirmed, order.Cancelled}, order.Created.NextStatuses())
		assert.Equal(t, []order.Status{order.Delivered, order.Returned, order.Cancelled}, order.Shipped.NextStatuses())
		assert.Equal(t, []order.Status{order.Returned}, order.Delivered.NextStatuses())
	})

	t.Run("should be empty for terminal statuses", func(t *testing.T) {
		assert.Empty(t, order.Cancelled.NextStatuses())
		assert.Empty(t, order.Returned.NextStatuses())
	})
}

func TestStatus_IsActive(t *testing.T) {
	assert.False(t, order.Created.IsActive())
	assert.True(t, order.Confirmed.IsActive())
	assert.True(t, order.Packed.IsActive())
	assert.True(t, order.Shipped.IsActive())
	assert.True(t, order.Delivered.IsActive())
	assert.False(t, order.Cancelled.IsActive())
	assert.False(t, order.Returned.IsActive())
}

func TestStatus_IsTerminal(t *testing.T) {
	assert.True(t, order.Cancelled.IsTerminal())
	assert.True(t, order.Returned.IsTerminal())
	assert.False(t, order.Created.IsTerminal())
	assert.False(t, order.Delivered.IsTerminal())
}

func TestInvalidTransitionError(t *testing.T) {
	err := order.NewInvalidTransitionError(order.Created, order.Shipped)

	require.ErrorIs(t, err, order.ErrInvalidTransition)
	assert.Equal(t, "invalid status transition: created -> shipped", err.Error())
}

func TestItemStatusFromString(t *testing.T) {
	t.Run("should round trip every defined item status", func(t *testing.T) {
		statuses := []order.ItemStatus{
			order.ItemReserved, order.ItemShipped, order.ItemReturned, order.ItemCancelled,
		}
		for _, s := range statuses {
			parsed, err := order.ItemStatusFromString(s.String())

			require.NoError(t, err)
			assert.Equal(t, s, parsed)
		}
	})

	t.Run("should reject unknown name", func(t *testing.T) {
		_, err := order.ItemStatusFromString("pending")

		require.Error(t, err)
	})
}
