package order

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrReturnIsNotConstructed is returned when a Return was not created
	// through NewReturn or RestoreReturn.
	ErrReturnIsNotConstructed = errors.New("Return must be created via NewReturn constructor")
)

// Return records a quantity of one order line coming back, whether it came
// back defective, who processed it, and the USD value snapshotted at return
// time. A Return is created once per return event and never mutated.
type Return struct {
	id          kernel.UUID
	orderID     kernel.UUID
	itemID      kernel.UUID
	qty         int
	isDefect    bool
	processedBy kernel.UUID
	amountUSD   kernel.Money
	createdAt   time.Time

	isConstructed bool
}

// NewReturn creates a return record for qty units of an order line.
func NewReturn(
	id kernel.UUID,
	orderID kernel.UUID,
	itemID kernel.UUID,
	qty int,
	isDefect bool,
	processedBy kernel.UUID,
	amountUSD kernel.Money,
	createdAt time.Time,
) (*Return, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		itemID.Validate(),
		processedBy.Validate(),
	); err != nil {
		return nil, err
	}
	if qty <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("qty is invalid",
			fmt.Errorf("%d is not greater than 0", qty))
	}

	return &Return{
		id:            id,
		orderID:       orderID,
		itemID:        itemID,
		qty:           qty,
		isDefect:      isDefect,
		processedBy:   processedBy,
		amountUSD:     amountUSD,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

// Validate ensures the Return was created via NewReturn.
func (r *Return) Validate() error {
	if r == nil || !r.isConstructed {
		return ErrReturnIsNotConstructed
	}
	return nil
}

// ID returns the return's unique identifier.
func (r *Return) ID() kernel.UUID {
	return r.id
}

// OrderID returns the order the returned line belongs to.
func (r *Return) OrderID() kernel.UUID {
	return r.orderID
}

// ItemID returns the order line the quantity was returned against.
func (r *Return) ItemID() kernel.UUID {
	return r.itemID
}

// Qty returns the returned quantity.
func (r *Return) Qty() int {
	return r.qty
}

// IsDefect reports whether the returned units were defective.
// Defective units go to stock_defect; healthy units back to stock_ok.
func (r *Return) IsDefect() bool {
	return r.isDefect
}

// ProcessedBy returns the user who registered the return.
func (r *Return) ProcessedBy() kernel.UUID {
	return r.processedBy
}

// AmountUSD returns the USD value snapshotted at return time
// (line unit price multiplied by the returned quantity).
func (r *Return) AmountUSD() kernel.Money {
	return r.amountUSD
}

// CreatedAt returns when the return was registered.
func (r *Return) CreatedAt() time.Time {
	return r.createdAt
}
