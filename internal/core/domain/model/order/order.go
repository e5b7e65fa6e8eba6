package order

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through NewOrder or RestoreOrder. This ensures all orders are properly validated.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrOrderHasNoItems is returned when an order is created without lines.
	ErrOrderHasNoItems = errors.New("order must contain at least one item")

	// ErrOrderIsTerminal is returned when a mutation is attempted on an order
	// in a terminal status.
	ErrOrderIsTerminal = errors.New("order is in a terminal status")
)

// Order is the aggregate root of the lifecycle engine. It owns its lines and
// the derived monetary totals, and it is the only place where the order
// status and the line statuses change together.
//
// Order follows these invariants:
//   - the display number is unique and immutable after creation
//   - status changes follow the FSM graph in Status
//   - totals always equal the sum of live line totals converted at the
//     exchange rate valid on the value date
//   - line quantity and price never change after creation
type Order struct {
	id            kernel.UUID
	displayNumber string
	dealerID      kernel.UUID
	createdBy     kernel.UUID
	status        Status
	note          string
	valueDate     time.Time
	totalUSD      kernel.Money
	totalUZS      int64
	isReserve     bool
	items         []*Item

	isConstructed bool
}

// NewOrder creates an order in Created status with its initial item batch.
// Totals are zero until RecalculateTotals is called with the value-date rate.
func NewOrder(
	id kernel.UUID,
	displayNumber string,
	dealerID kernel.UUID,
	createdBy kernel.UUID,
	note string,
	valueDate time.Time,
	isReserve bool,
	items []*Item,
) (*Order, error) {
	if err := errors.Join(
		id.Validate(),
		dealerID.Validate(),
		createdBy.Validate(),
	); err != nil {
		return nil, err
	}
	if displayNumber == "" {
		return nil, errs.NewValueIsRequiredError("display number")
	}
	if valueDate.IsZero() {
		return nil, errs.NewValueIsRequiredError("value date")
	}
	if len(items) == 0 {
		return nil, ErrOrderHasNoItems
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return nil, err
		}
	}

	return &Order{
		id:            id,
		displayNumber: displayNumber,
		dealerID:      dealerID,
		createdBy:     createdBy,
		status:        Created,
		note:          note,
		valueDate:     valueDate,
		isReserve:     isReserve,
		items:         items,
		isConstructed: true,
	}, nil
}

// RestoreOrder rehydrates an order from persistence, including its status and
// stored totals, without running transition rules.
func RestoreOrder(
	id kernel.UUID,
	displayNumber string,
	dealerID kernel.UUID,
	createdBy kernel.UUID,
	status Status,
	note string,
	valueDate time.Time,
	totalUSD kernel.Money,
	totalUZS int64,
	isReserve bool,
	items []*Item,
) (*Order, error) {
	o, err := NewOrder(id, displayNumber, dealerID, createdBy, note, valueDate, isReserve, items)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}

	o.status = status
	o.totalUSD = totalUSD
	o.totalUZS = totalUZS
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// DisplayNumber returns the human-readable order number. Immutable.
func (o *Order) DisplayNumber() string {
	return o.displayNumber
}

// DealerID returns the dealer the order was placed for.
func (o *Order) DealerID() kernel.UUID {
	return o.dealerID
}

// CreatedBy returns the user who created the order. Ownership checks in the
// transition policy compare against this value.
func (o *Order) CreatedBy() kernel.UUID {
	return o.createdBy
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Note returns the free-text note.
func (o *Order) Note() string {
	return o.note
}

// ValueDate returns the accounting date used for currency conversion.
func (o *Order) ValueDate() time.Time {
	return o.valueDate
}

// TotalUSD returns the derived USD total.
func (o *Order) TotalUSD() kernel.Money {
	return o.totalUSD
}

// TotalUZS returns the derived UZS total.
func (o *Order) TotalUZS() int64 {
	return o.totalUZS
}

// IsReserve reports whether the order was placed against reserved allocation.
func (o *Order) IsReserve() bool {
	return o.isReserve
}

// Items returns the order lines. The slice must not be mutated by callers.
func (o *Order) Items() []*Item {
	return o.items
}

// ItemByID finds an order line by its identifier.
func (o *Order) ItemByID(itemID kernel.UUID) (*Item, bool) {
	for _, item := range o.items {
		if item.ID().IsEqual(itemID) {
			return item, true
		}
	}
	return nil, false
}

// ChangeStatus applies a transition along an edge of the FSM graph and keeps
// line statuses consistent with the new order status:
//   - shipped marks reserved lines shipped
//   - returned marks every line returned
//   - cancelled marks all non-returned lines cancelled
//
// Authorization is the transition policy's concern; ChangeStatus only
// enforces the graph itself.
func (o *Order) ChangeStatus(target Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if !o.status.CanTransitionTo(target) {
		return NewInvalidTransitionError(o.status, target)
	}

	o.status = target

	switch target {
	case Shipped:
		for _, item := range o.items {
			item.markShipped()
		}
	case Returned:
		for _, item := range o.items {
			item.markReturned()
		}
	case Cancelled:
		for _, item := range o.items {
			item.markCancelled()
		}
	}

	return nil
}

// AddItem appends a line to the order. The caller is responsible for the
// edit-authorization check and for reserving stock when the order is already
// active.
func (o *Order) AddItem(item *Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrOrderIsTerminal, o.status)
	}

	o.items = append(o.items, item)
	return nil
}

// MarkItemReturned marks a single line fully returned. Called by the return
// flow once the line's cumulative returned quantity reaches its ordered quantity.
func (o *Order) MarkItemReturned(itemID kernel.UUID) error {
	item, ok := o.ItemByID(itemID)
	if !ok {
		return errs.NewObjectNotFoundError("order item", itemID.String())
	}

	item.markReturned()
	return nil
}

// IsFullyReturned reports whether every live line has been fully returned.
func (o *Order) IsFullyReturned() bool {
	for _, item := range o.items {
		if item.Status() != ItemReturned {
			return false
		}
	}
	return true
}

// RecalculateTotals re-derives the monetary totals from the live lines.
// The USD total is the sum of live line totals; the UZS total converts it at
// the exchange rate valid on the order's value date. Returned lines stay in
// the totals: they represent goods sold, not goods still owed.
func (o *Order) RecalculateTotals(rate float64) {
	total := kernel.Money{}
	for _, item := range o.items {
		if item.IsLive() {
			total = total.Add(item.LineTotal())
		}
	}

	o.totalUSD = total
	o.totalUZS = total.ConvertUZS(rate)
}
