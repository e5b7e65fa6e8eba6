package order

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

var (
	// ErrItemIsNotConstructed is returned when an Item instance was not created
	// through NewItem or RestoreItem.
	ErrItemIsNotConstructed = errors.New("Item must be created via NewItem or RestoreItem constructor")
)

// ItemStatus represents the state of a single order line.
type ItemStatus int

const (
	// ItemUnknown represents an invalid or undefined item status.
	ItemUnknown ItemStatus = iota

	// ItemReserved means the line's quantity is held against stock_ok
	// while the order is active (or will be, once the order is confirmed).
	ItemReserved

	// ItemShipped means the goods for this line left the warehouse.
	ItemShipped

	// ItemReturned means the line's full quantity came back through returns.
	ItemReturned

	// ItemCancelled means the line was voided by an order cancellation.
	// Cancelled lines are excluded from order totals.
	ItemCancelled
)

func getItemStatusStrings() map[ItemStatus]string {
	return map[ItemStatus]string{
		ItemUnknown:   "unknown",
		ItemReserved:  "reserved",
		ItemShipped:   "shipped",
		ItemReturned:  "returned",
		ItemCancelled: "cancelled",
	}
}

// Validate checks if the ItemStatus value is one of the defined statuses.
func (s ItemStatus) Validate() error {
	switch s {
	case ItemReserved, ItemShipped, ItemReturned, ItemCancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("item status is invalid",
			fmt.Errorf("%d is not a valid item status", s))
	}
}

// String returns the lowercase item status name.
func (s ItemStatus) String() string {
	if str, ok := getItemStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// ItemStatusFromString parses an item status from its lowercase name.
// Used when rehydrating lines from persistence.
func ItemStatusFromString(v string) (ItemStatus, error) {
	for status, name := range getItemStatusStrings() {
		if name == v && status != ItemUnknown {
			return status, nil
		}
	}
	return ItemUnknown, errs.NewValueIsInvalidErrorWithCause("item status is invalid",
		fmt.Errorf("%q is not a valid item status", v))
}

// Item is an order line. It belongs to exactly one order and references a
// catalog product. Quantity and the captured USD price are immutable after
// creation: returns create separate records instead of mutating the line.
type Item struct {
	id        kernel.UUID
	productID kernel.UUID
	qty       int
	priceUSD  kernel.Money
	status    ItemStatus

	isConstructed bool
}

// NewItem creates an order line in reserved status with a price snapshot
// captured at order time.
func NewItem(id, productID kernel.UUID, qty int, priceUSD kernel.Money) (*Item, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if err := productID.Validate(); err != nil {
		return nil, err
	}
	if qty <= 0 {
		return nil, errs.NewValueIsInvalidErrorWithCause("qty is invalid",
			fmt.Errorf("%d is not greater than 0", qty))
	}

	return &Item{
		id:            id,
		productID:     productID,
		qty:           qty,
		priceUSD:      priceUSD,
		status:        ItemReserved,
		isConstructed: true,
	}, nil
}

// RestoreItem rehydrates an order line from persistence.
func RestoreItem(id, productID kernel.UUID, qty int, priceUSD kernel.Money, status ItemStatus) (*Item, error) {
	item, err := NewItem(id, productID, qty, priceUSD)
	if err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}

	item.status = status
	return item, nil
}

// Validate ensures the Item was created via a constructor.
func (i *Item) Validate() error {
	if i == nil || !i.isConstructed {
		return ErrItemIsNotConstructed
	}
	return nil
}

// ID returns the line's unique identifier.
func (i *Item) ID() kernel.UUID {
	return i.id
}

// ProductID returns the referenced catalog product.
func (i *Item) ProductID() kernel.UUID {
	return i.productID
}

// Qty returns the ordered quantity. Immutable after creation.
func (i *Item) Qty() int {
	return i.qty
}

// PriceUSD returns the unit price captured at order time.
func (i *Item) PriceUSD() kernel.Money {
	return i.priceUSD
}

// Status returns the line's current status.
func (i *Item) Status() ItemStatus {
	return i.status
}

// LineTotal returns qty multiplied by the captured unit price.
func (i *Item) LineTotal() kernel.Money {
	return i.priceUSD.MulQty(i.qty)
}

// IsLive reports whether the line counts toward order totals.
// Cancelled lines are dead; returned lines still represent sold goods.
func (i *Item) IsLive() bool {
	return i.status != ItemCancelled
}

// markShipped, markCancelled and markReturned are driven by the owning Order
// so that line statuses can never disagree with the order status.
func (i *Item) markShipped() {
	if i.status == ItemReserved {
		i.status = ItemShipped
	}
}

func (i *Item) markCancelled() {
	if i.status != ItemReturned {
		i.status = ItemCancelled
	}
}

func (i *Item) markReturned() {
	i.status = ItemReturned
}
