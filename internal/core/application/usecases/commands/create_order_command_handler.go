package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Allocates the human-readable display number from the database sequence,
// snapshots line prices, derives the totals at the value-date exchange rate,
// and writes the implicit "created" audit entry — all in one transaction.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	rates      ports.RateProvider
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, rates ports.RateProvider) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		rates:      rates,
	}
}

// Handle processes the order creation command and returns the created order.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (*order.Order, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	rate, err := h.rates.Rate(ctx, cmd.ValueDate())
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	displayNumber, err := orderRepo.NextDisplayNumber(ctx, cmd.ValueDate())
	if err != nil {
		return nil, err
	}

	items := make([]*order.Item, 0, len(cmd.Items()))
	for _, spec := range cmd.Items() {
		price, priceErr := kernel.NewMoneyFromCents(spec.PriceUSDCents)
		if priceErr != nil {
			return nil, priceErr
		}

		item, itemErr := order.NewItem(kernel.NewUUID(), spec.ProductID, spec.Qty, price)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	o, err := order.NewOrder(
		kernel.NewUUID(),
		displayNumber,
		cmd.DealerID(),
		cmd.Actor().ID(),
		cmd.Note(),
		cmd.ValueDate(),
		cmd.IsReserve(),
		items,
	)
	if err != nil {
		return nil, err
	}

	o.RecalculateTotals(rate)

	if err = orderRepo.Add(ctx, o); err != nil {
		return nil, err
	}

	actorID := cmd.Actor().ID()
	entry, err := order.NewStatusLog(
		kernel.NewUUID(), o.ID(), nil, order.Created, &actorID, time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.StatusLogRepository().Add(ctx, entry); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return o, nil
}
