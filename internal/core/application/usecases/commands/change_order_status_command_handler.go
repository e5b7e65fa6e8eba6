package commands

import (
	"context"
	"time"

	"go.uber.org/zap"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
)

// ChangeOrderStatusCommandHandler orchestrates a status change end-to-end:
// it loads the order under an exclusive row lock, asks the transition policy
// whether the move is legal for the actor, moves stock when the order crosses
// the active-set boundary, persists the new status, and appends the audit
// entry — all inside one transaction. The status-changed event is published
// only after the transaction commits.
//
// Example:
//
//	handler := NewChangeOrderStatusCommandHandler(uowFactory, policy, publisher, rates)
//	cmd, _ := NewChangeOrderStatusCommand(orderID, order.Confirmed, act)
//
//	updated, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, order.ErrInvalidTransition):
//	    // no such edge in the FSM graph
//	case errors.Is(err, services.ErrForbidden):
//	    // the actor's role or ownership check failed
//	case errors.Is(err, product.ErrInsufficientStock):
//	    // reservation exceeded sellable stock
//	}
type ChangeOrderStatusCommandHandler struct {
	uowFactory LifecycleUoWFactory
	policy     services.TransitionPolicy
	publisher  ports.EventPublisher
	rates      ports.RateProvider
}

// NewChangeOrderStatusCommandHandler creates a handler for status change operations.
func NewChangeOrderStatusCommandHandler(
	uowFactory LifecycleUoWFactory,
	policy services.TransitionPolicy,
	publisher ports.EventPublisher,
	rates ports.RateProvider,
) ChangeOrderStatusCommandHandler {
	return ChangeOrderStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		publisher:  publisher,
		rates:      rates,
	}
}

// Handle processes the status change command and returns the updated order.
// A request targeting the order's current status is an idempotent no-op: it
// is still authorized, but produces no stock movement, no audit entry, and
// no event.
func (h ChangeOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeOrderStatusCommand,
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

	if err = h.policy.ValidateOrder(o, cmd.TargetStatus(), cmd.Actor()); err != nil {
		return nil, err
	}

	if o.Status() == cmd.TargetStatus() {
		if err = uow.Commit(ctx); err != nil {
			return nil, err
		}
		return o, nil
	}

	oldStatus := o.Status()
	if err = o.ChangeStatus(cmd.TargetStatus()); err != nil {
		return nil, err
	}

	if err = h.moveStock(ctx, uow, o, oldStatus); err != nil {
		return nil, err
	}

	// Cancellation voids the lines, so the stored totals must drop with them.
	if o.Status() == order.Cancelled {
		rate, rateErr := h.rates.Rate(ctx, o.ValueDate())
		if rateErr != nil {
			return nil, rateErr
		}
		o.RecalculateTotals(rate)
	}

	actorID := cmd.Actor().ID()
	entry, err := order.NewStatusLog(
		kernel.NewUUID(), o.ID(), &oldStatus, o.Status(), &actorID, time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.StatusLogRepository().Add(ctx, entry); err != nil {
		return nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.publish(ctx, o, oldStatus, actorID)
	return o, nil
}

// moveStock reserves or releases inventory when the transition crosses the
// active-set boundary. Transitions inside the active set (or outside it)
// move nothing.
func (h ChangeOrderStatusCommandHandler) moveStock(
	ctx context.Context,
	uow LifecycleUoW,
	o *order.Order,
	oldStatus order.Status,
) error {
	wasActive := oldStatus.IsActive()
	isActive := o.Status().IsActive()
	if wasActive == isActive {
		return nil
	}

	ledger := NewStockLedger(uow.ProductRepository())

	if isActive {
		return ledger.ReserveBatch(ctx, reserveQuantities(o))
	}

	releases, err := releaseQuantities(ctx, uow.ReturnRepository(), o)
	if err != nil {
		return err
	}
	return ledger.ReleaseBatch(ctx, releases)
}

// reserveQuantities sums the ordered quantity per product for every line
// entering the active set.
func reserveQuantities(o *order.Order) map[kernel.UUID]int {
	quantities := make(map[kernel.UUID]int, len(o.Items()))
	for _, item := range o.Items() {
		if item.Status() == order.ItemReturned {
			continue
		}
		quantities[item.ProductID()] += item.Qty()
	}
	return quantities
}

// releaseQuantities sums, per product, the quantity still held by each line:
// the ordered quantity minus what prior returns already credited back.
func releaseQuantities(
	ctx context.Context,
	returns ports.ReturnRepository,
	o *order.Order,
) (map[kernel.UUID]int, error) {
	quantities := make(map[kernel.UUID]int, len(o.Items()))
	for _, item := range o.Items() {
		returned, err := returns.SumByItem(ctx, item.ID())
		if err != nil {
			return nil, err
		}
		if held := item.Qty() - returned; held > 0 {
			quantities[item.ProductID()] += held
		}
	}
	return quantities, nil
}

// publish fires the post-commit event. Publish failures are logged and left
// to the notification collaborator's retry; they never fail the command.
func (h ChangeOrderStatusCommandHandler) publish(
	ctx context.Context,
	o *order.Order,
	oldStatus order.Status,
	actorID kernel.UUID,
) {
	actorStr := actorID.String()
	event := ports.OrderStatusChanged{
		OrderID:       o.ID().String(),
		DisplayNumber: o.DisplayNumber(),
		OldStatus:     oldStatus.String(),
		NewStatus:     o.Status().String(),
		ActorID:       &actorStr,
		Timestamp:     time.Now().UTC(),
	}

	if err := h.publisher.PublishOrderStatusChanged(ctx, event); err != nil {
		zap.L().Warn("failed to publish order status changed event",
			zap.String("order_id", event.OrderID),
			zap.Error(err))
	}
}
