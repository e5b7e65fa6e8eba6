package commands

import (
	"context"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// AddOrderItemCommandHandler appends a line to an editable order and keeps
// the derived totals current. When an admin extends an already-confirmed
// order, the new line's quantity is reserved immediately so the stock
// invariant holds for every line of an active order.
type AddOrderItemCommandHandler struct {
	uowFactory LifecycleUoWFactory
	policy     services.TransitionPolicy
	rates      ports.RateProvider
}

// NewAddOrderItemCommandHandler creates a handler for item addition operations.
func NewAddOrderItemCommandHandler(
	uowFactory LifecycleUoWFactory,
	policy services.TransitionPolicy,
	rates ports.RateProvider,
) AddOrderItemCommandHandler {
	return AddOrderItemCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		rates:      rates,
	}
}

// Handle processes the item addition and returns the updated order.
func (h AddOrderItemCommandHandler) Handle(
	ctx context.Context,
	cmd AddOrderItemCommand,
) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.GetForUpdate(ctx, cmd.OrderID())
	if err != nil {
		return nil, err
	}

	if err = h.policy.CanEditItems(o.Status(), o.CreatedBy(), cmd.Actor()); err != nil {
		return nil, err
	}

	spec := cmd.Item()
	price, err := kernel.NewMoneyFromCents(spec.PriceUSDCents)
	if err != nil {
		return nil, err
	}

	item, err := order.NewItem(kernel.NewUUID(), spec.ProductID, spec.Qty, price)
	if err != nil {
		return nil, err
	}

	if err = o.AddItem(item); err != nil {
		return nil, err
	}

	if o.Status().IsActive() {
		ledger := NewStockLedger(uow.ProductRepository())
		if err = ledger.Reserve(ctx, item.ProductID(), item.Qty()); err != nil {
			return nil, err
		}
	}

	rate, err := h.rates.Rate(ctx, o.ValueDate())
	if err != nil {
		return nil, err
	}
	o.RecalculateTotals(rate)

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
