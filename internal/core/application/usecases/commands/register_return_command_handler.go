package commands

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/services"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrOrderNotReturnable is returned when a return is registered against an
	// order that is neither shipped nor delivered.
	ErrOrderNotReturnable = errors.New("returns are only accepted for shipped or delivered orders")
)

// RegisterReturnCommandHandler orchestrates a partial or full item return:
// it validates the quantity against what is still returnable on the line,
// credits the returned units to the healthy or defective stock bucket, writes
// the immutable return record, and — when the whole order has come back —
// moves the order to its terminal returned status.
//
// The USD amount on the record is snapshotted as the line's captured unit
// price times the returned quantity. Order totals keep representing the
// amount sold; recalculation only re-derives the UZS total from the
// value-date exchange rate.
type RegisterReturnCommandHandler struct {
	uowFactory LifecycleUoWFactory
	policy     services.TransitionPolicy
	publisher  ports.EventPublisher
	rates      ports.RateProvider
}

// NewRegisterReturnCommandHandler creates a handler for return registration.
func NewRegisterReturnCommandHandler(
	uowFactory LifecycleUoWFactory,
	policy services.TransitionPolicy,
	publisher ports.EventPublisher,
	rates ports.RateProvider,
) RegisterReturnCommandHandler {
	return RegisterReturnCommandHandler{
		uowFactory: uowFactory,
		policy:     policy,
		publisher:  publisher,
		rates:      rates,
	}
}

// Handle processes the return and returns the created record.
func (h RegisterReturnCommandHandler) Handle(
	ctx context.Context,
	cmd RegisterReturnCommand,
) (*order.Return, error) {
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
	o, err := orderRepo.GetByItemIDForUpdate(ctx, cmd.ItemID())
	if err != nil {
		return nil, err
	}

	if err = h.policy.CanRegisterReturn(o.CreatedBy(), cmd.Actor()); err != nil {
		return nil, err
	}

	if o.Status() != order.Shipped && o.Status() != order.Delivered {
		return nil, ErrOrderNotReturnable
	}

	item, ok := o.ItemByID(cmd.ItemID())
	if !ok {
		return nil, errs.NewObjectNotFoundError("order item", cmd.ItemID().String())
	}

	returnRepo := uow.ReturnRepository()
	prior, err := returnRepo.SumByItem(ctx, item.ID())
	if err != nil {
		return nil, err
	}

	remaining := item.Qty() - prior
	if cmd.Qty() > remaining {
		return nil, errs.NewValueIsOutOfRangeError("return qty", cmd.Qty(), 1, remaining)
	}

	ledger := NewStockLedger(uow.ProductRepository())
	if cmd.IsDefect() {
		err = ledger.MoveToDefect(ctx, item.ProductID(), cmd.Qty())
	} else {
		err = ledger.RestoreHealthy(ctx, item.ProductID(), cmd.Qty())
	}
	if err != nil {
		return nil, err
	}

	record, err := order.NewReturn(
		kernel.NewUUID(),
		o.ID(),
		item.ID(),
		cmd.Qty(),
		cmd.IsDefect(),
		cmd.Actor().ID(),
		item.PriceUSD().MulQty(cmd.Qty()),
		time.Now().UTC(),
	)
	if err != nil {
		return nil, err
	}

	if err = returnRepo.Add(ctx, record); err != nil {
		return nil, err
	}

	oldStatus := o.Status()
	statusChanged := false

	if prior+cmd.Qty() == item.Qty() {
		if err = o.MarkItemReturned(item.ID()); err != nil {
			return nil, err
		}

		if o.IsFullyReturned() {
			if err = h.finishOrder(ctx, uow, o, cmd); err != nil {
				return nil, err
			}
			statusChanged = true
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

	if statusChanged {
		h.publish(ctx, o, oldStatus, cmd.Actor().ID())
	}
	return record, nil
}

// finishOrder moves a fully returned order to its terminal status and writes
// the audit entry. Returned units were already credited per return event, so
// no further stock movement happens here.
func (h RegisterReturnCommandHandler) finishOrder(
	ctx context.Context,
	uow LifecycleUoW,
	o *order.Order,
	cmd RegisterReturnCommand,
) error {
	oldStatus := o.Status()
	if err := o.ChangeStatus(order.Returned); err != nil {
		return err
	}

	actorID := cmd.Actor().ID()
	entry, err := order.NewStatusLog(
		kernel.NewUUID(), o.ID(), &oldStatus, order.Returned, &actorID, time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	return uow.StatusLogRepository().Add(ctx, entry)
}

func (h RegisterReturnCommandHandler) publish(
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
