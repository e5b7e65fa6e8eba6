package order_test

import (
	"testing"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeItem(t *testing.T, qty int, priceCents int64) *order.Item {
	t.Helper()
	price, err := kernel.NewMoneyFromCents(priceCents)
	require.NoError(t, err)

	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), qty, price)
	require.NoError(t, err)
	return item
}

func makeOrder(t *testing.T, items ...*order.Item) *order.Order {
	t.Helper()
	o, err := order.NewOrder(
		kernel.NewUUID(),
		"ORD-20260831-000001",
		kernel.NewUUID(),
		kernel.NewUUID(),
		"",
		time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		false,
		items,
	)
	require.NoError(t, err)
	return o
}

func advanceTo(t *testing.T, o *order.Order, target order.Status) {
	t.Helper()
	path := map[order.Status][]order.Status{
		order.Confirmed: {order.Confirmed},
		order.Packed:    {order.Confirmed, order.Packed},
		order.Shipped:   {order.Confirmed, order.Packed, order.Shipped},
		order.Delivered: {order.Confirmed, order.Packed, order.Shipped, order.Delivered},
	}
	for _, s := range path[target] {
		require.NoError(t, o.ChangeStatus(s))
	}
}

func TestNewOrder(t *testing.T) {
	validID := kernel.NewUUID()
	dealerID := kernel.NewUUID()
	createdBy := kernel.NewUUID()
	valueDate := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	t.Run("should create valid order with all valid parameters", func(t *testing.T) {
		item := makeItem(t, 3, 1250)

		o, err := order.NewOrder(validID, "ORD-20260831-000042", dealerID, createdBy,
			"priority dealer", valueDate, true, []*order.Item{item})

		require.NoError(t, err)
		require.NoError(t, o.Validate())
		assert.True(t, o.ID().IsEqual(validID))
		assert.Equal(t, "ORD-20260831-000042", o.DisplayNumber())
		assert.True(t, o.DealerID().IsEqual(dealerID))
		assert.True(t, o.CreatedBy().IsEqual(createdBy))
		assert.Equal(t, order.Created, o.Status())
		assert.Equal(t, "priority dealer", o.Note())
		assert.True(t, o.IsReserve())
		assert.Len(t, o.Items(), 1)
		assert.True(t, o.TotalUSD().IsZero())
	})

	t.Run("should fail with invalid UUID", func(t *testing.T) {
		var invalidID kernel.UUID
		item := makeItem(t, 1, 100)

		o, err := order.NewOrder(invalidID, "ORD-1", dealerID, createdBy, "", valueDate, false, []*order.Item{item})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "UUID must be created")
	})

	t.Run("should fail with empty display number", func(t *testing.T) {
		item := makeItem(t, 1, 100)

		o, err := order.NewOrder(validID, "", dealerID, createdBy, "", valueDate, false, []*order.Item{item})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "display number")
	})

	t.Run("should fail with zero value date", func(t *testing.T) {
		item := makeItem(t, 1, 100)

		o, err := order.NewOrder(validID, "ORD-1", dealerID, createdBy, "", time.Time{}, false, []*order.Item{item})

		require.Error(t, err)
		assert.Nil(t, o)
		assert.Contains(t, err.Error(), "value date")
	})

	t.Run("should fail without items", func(t *testing.T) {
		o, err := order.NewOrder(validID, "ORD-1", dealerID, createdBy, "", valueDate, false, nil)

		require.Error(t, err)
		assert.Nil(t, o)
		require.ErrorIs(t, err, order.ErrOrderHasNoItems)
	})

	t.Run("should fail with unconstructed item", func(t *testing.T) {
		o, err := order.NewOrder(validID, "ORD-1", dealerID, createdBy, "", valueDate, false,
			[]*order.Item{{}})

		require.Error(t, err)
		assert.Nil(t, o)
		require.ErrorIs(t, err, order.ErrItemIsNotConstructed)
	})
}

func TestOrder_Validate(t *testing.T) {
	t.Run("should pass for properly constructed order", func(t *testing.T) {
		o := makeOrder(t, makeItem(t, 1, 100))

		require.NoError(t, o.Validate())
	})

	t.Run("should fail for nil order", func(t *testing.T) {
		var o *order.Order

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})

	t.Run("should fail for zero value order", func(t *testing.T) {
		o := &order.Order{}

		err := o.Validate()

		require.Error(t, err)
		assert.Equal(t, order.ErrOrderIsNotConstructed, err)
	})
}

func TestOrder_ChangeStatus(t *testing.T) {
	t.Run("should walk the happy path", func(t *testing.T) {
		o := makeOrder(t, makeItem(t, 2, 500))

		for _, target := range []order.Status{
			order.Confirmed, order.Packed, order.Shipped, order.Delivered,
		} {
			require.NoError(t, o.ChangeStatus(target))
			assert.Equal(t, target, o.Status())
		}
	})

	t.Run("should reject edges missing from the graph", func(t *testing.T) {
		o := makeOrder(t, makeItem(t, 2, 500))

		err := o.ChangeStatus(order.Shipped)

		require.Error(t, err)
		require.ErrorIs(t, err, order.ErrInvalidTransition)
		assert.Equal(t, order.Created, o.Status())
	})

	t.Run("should reject invalid target", func(t *testing.T) {
		o := makeOrder(t, makeItem(t, 2, 500))

		err := o.ChangeStatus(order.Unknown)

		require.Error(t, err)
	})

	t.Run("should mark reserved items shipped on shipment", func(t *testing.T) {
		item := makeItem(t, 2, 500)
		o := makeOrder(t, item)
		advanceTo(t, o, order.Shipped)

		assert.Equal(t, order.ItemShipped, item.Status())
	})

	t.Run("should mark every item returned on a whole-order return", func(t *testing.T) {
		first := makeItem(t, 2, 500)
		second := makeItem(t, 1, 300)
		o := makeOrder(t, first, second)
		advanceTo(t, o, order.Shipped)

		require.NoError(t, o.ChangeStatus(order.Returned))

		assert.Equal(t, order.ItemReturned, first.Status())
		assert.Equal(t, order.ItemReturned, second.Status())
		assert.True(t, o.IsFullyReturned())
	})

	t.Run("should mark items cancelled on cancellation", func(t *testing.T) {
		first := makeItem(t, 2, 500)
		second := makeItem(t, 1, 300)
		o := makeOrder(t, first, second)
		advanceTo(t, o, order.Confirmed)

		require.NoError(t, o.ChangeStatus(order.Cancelled))

		assert.Equal(t, order.ItemCancelled, first.Status())
		assert.Equal(t, order.ItemCancelled, second.Status())
	})

	t.Run("should keep returned items returned on cancellation", func(t *testing.T) {
		first := makeItem(t, 2, 500)
		second := makeItem(t, 1, 300)
		o := makeOrder(t, first, second)
		advanceTo(t, o, order.Shipped)
		require.NoError(t, o.MarkItemReturned(first.ID()))

		require.NoError(t, o.ChangeStatus(order.Cancelled))

		assert.Equal(t, order.ItemReturned, first.Status())
		assert.Equal(t, order.ItemCancelled, second.Status())
	})

	t.Run("should reject any move out of a terminal status", func(t *testing.T) {
		o := makeOrder(t, makeItem(t, 2, 500))
		require.NoError(t, o.ChangeStatus(order.Cancelled))

		for _, target := range []order.Status{
			order.Created, order.Confirmed, order.Packed, order.Shipped,
			order.Delivered, order.Returned,
		} {
			err := o.ChangeStatus(target)
			require.ErrorIs(t, err, order.ErrInvalidTransition, "cancelled -> %s must fail", target)
		}
	})
}

func TestOrder_AddItem(t *testing.T) {
	t.Run("should append a valid item", func(t *testing.T) {
		o := makeOrder(t, makeItem(t, 1, 100))

		err := o.AddItem(makeItem(t, 5, 250))

		require.NoError(t, err)
		assert.Len(t, o.Items(), 2)
	})

	t.Run("should reject unconstructed item", func(t *testing.T) {
		o := makeOrder(t, makeItem(t, 1, 100))

		err := o.AddItem(&order.Item{})

		require.ErrorIs(t, err, order.ErrItemIsNotConstructed)
		assert.Len(t, o.Items(), 1)
	})

	t.Run("should reject items on terminal orders", func(t *testing.T) {
		o := makeOrder(t, makeItem(t, 1, 100))
		require.NoError(t, o.ChangeStatus(order.Cancelled))

		err := o.AddItem(makeItem(t, 5, 250))

		require.ErrorIs(t, err, order.ErrOrderIsTerminal)
		assert.Len(t, o.Items(), 1)
	})
}

func TestOrder_MarkItemReturned(t *testing.T) {
	t.Run("should mark an existing item", func(t *testing.T) {
		item := makeItem(t, 2, 500)
		o := makeOrder(t, item)
		advanceTo(t, o, order.Delivered)

		require.NoError(t, o.MarkItemReturned(item.ID()))

		assert.Equal(t, order.ItemReturned, item.Status())
	})

	t.Run("should fail for unknown item", func(t *testing.T) {
		o := makeOrder(t, makeItem(t, 2, 500))

		err := o.MarkItemReturned(kernel.NewUUID())

		require.Error(t, err)
		assert.Contains(t, err.Error(), "object not found")
	})
}

func TestOrder_IsFullyReturned(t *testing.T) {
	first := makeItem(t, 2, 500)
	second := makeItem(t, 1, 300)
	o := makeOrder(t, first, second)
	advanceTo(t, o, order.Delivered)

	assert.False(t, o.IsFullyReturned())

	require.NoError(t, o.MarkItemReturned(first.ID()))
	assert.False(t, o.IsFullyReturned())

	require.NoError(t, o.MarkItemReturned(second.ID()))
	assert.True(t, o.IsFullyReturned())
}

func TestOrder_RecalculateTotals(t *testing.T) {
	t.Run("should sum line totals and convert at the given rate", func(t *testing.T) {
		// 2 x $5.00 + 3 x $2.50 = $17.50
		o := makeOrder(t, makeItem(t, 2, 500), makeItem(t, 3, 250))

		o.RecalculateTotals(12650)

		assert.Equal(t, int64(1750), o.TotalUSD().Cents())
		assert.Equal(t, int64(221375), o.TotalUZS())
	})

	t.Run("should exclude cancelled lines", func(t *testing.T) {
		kept := makeItem(t, 2, 500)
		o := makeOrder(t, kept, makeItem(t, 3, 250))
		require.NoError(t, o.ChangeStatus(order.Cancelled))

		o.RecalculateTotals(12650)

		assert.Equal(t, int64(0), o.TotalUSD().Cents())
		assert.Equal(t, int64(0), o.TotalUZS())
	})

	t.Run("should keep returned lines in the totals", func(t *testing.T) {
		item := makeItem(t, 2, 500)
		o := makeOrder(t, item)
		advanceTo(t, o, order.Delivered)
		require.NoError(t, o.MarkItemReturned(item.ID()))

		o.RecalculateTotals(12650)

		assert.Equal(t, int64(1000), o.TotalUSD().Cents())
	})
}

func TestRestoreOrder(t *testing.T) {
	t.Run("should rehydrate with stored status and totals", func(t *testing.T) {
		item := makeItem(t, 2, 500)
		totalUSD, err := kernel.NewMoneyFromCents(1000)
		require.NoError(t, err)

		o, err := order.RestoreOrder(
			kernel.NewUUID(), "ORD-20260831-000007", kernel.NewUUID(), kernel.NewUUID(),
			order.Packed, "note", time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
			totalUSD, 12650000, true, []*order.Item{item},
		)

		require.NoError(t, err)
		assert.Equal(t, order.Packed, o.Status())
		assert.Equal(t, int64(1000), o.TotalUSD().Cents())
		assert.Equal(t, int64(12650000), o.TotalUZS())
	})

	t.Run("should fail with invalid status", func(t *testing.T) {
		item := makeItem(t, 2, 500)

		o, err := order.RestoreOrder(
			kernel.NewUUID(), "ORD-1", kernel.NewUUID(), kernel.NewUUID(),
			order.Unknown, "", time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
			kernel.Money{}, 0, false, []*order.Item{item},
		)

		require.Error(t, err)
		assert.Nil(t, o)
	})
}

func TestNewItem(t *testing.T) {
	price, _ := kernel.NewMoneyFromCents(995)

	t.Run("should start reserved with immutable qty and price", func(t *testing.T) {
		item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), 4, price)

		require.NoError(t, err)
		assert.Equal(t, order.ItemReserved, item.Status())
		assert.Equal(t, 4, item.Qty())
		assert.Equal(t, int64(995), item.PriceUSD().Cents())
		assert.Equal(t, int64(3980), item.LineTotal().Cents())
		assert.True(t, item.IsLive())
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		for _, qty := range []int{0, -3} {
			_, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), qty, price)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "qty is invalid")
		}
	})
}

func TestNewStatusLog(t *testing.T) {
	now := time.Now().UTC()

	t.Run("should create a transition entry", func(t *testing.T) {
		old := order.Created
		actorID := kernel.NewUUID()

		entry, err := order.NewStatusLog(kernel.NewUUID(), kernel.NewUUID(), &old, order.Confirmed, &actorID, now)

		require.NoError(t, err)
		require.NoError(t, entry.Validate())
		assert.Equal(t, order.Created, *entry.OldStatus())
		assert.Equal(t, order.Confirmed, entry.NewStatus())
	})

	t.Run("should allow nil old status for the creation entry", func(t *testing.T) {
		entry, err := order.NewStatusLog(kernel.NewUUID(), kernel.NewUUID(), nil, order.Created, nil, now)

		require.NoError(t, err)
		assert.Nil(t, entry.OldStatus())
		assert.Nil(t, entry.ActorID())
	})

	t.Run("should reject invalid old status", func(t *testing.T) {
		bad := order.Unknown

		_, err := order.NewStatusLog(kernel.NewUUID(), kernel.NewUUID(), &bad, order.Confirmed, nil, now)

		require.Error(t, err)
	})
}

func TestNewReturn(t *testing.T) {
	amount, _ := kernel.NewMoneyFromCents(1000)
	now := time.Now().UTC()

	t.Run("should create a return record", func(t *testing.T) {
		record, err := order.NewReturn(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			2, true, kernel.NewUUID(), amount, now)

		require.NoError(t, err)
		require.NoError(t, record.Validate())
		assert.Equal(t, 2, record.Qty())
		assert.True(t, record.IsDefect())
		assert.Equal(t, int64(1000), record.AmountUSD().Cents())
	})

	t.Run("should reject non-positive quantity", func(t *testing.T) {
		_, err := order.NewReturn(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
			0, false, kernel.NewUUID(), amount, now)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "qty is invalid")
	})
}
