package commands

import (
	"errors"
	"fmt"
	"time"

	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrOrderItemsAreRequired = errors.New("order must contain at least one item")
)

// OrderItemSpec describes one line of a new order: the product, the ordered
// quantity, and the USD unit price captured at order time.
type OrderItemSpec struct {
	ProductID     kernel.UUID
	Qty           int
	PriceUSDCents int64
}

func (s OrderItemSpec) validate() error {
	if err := s.ProductID.Validate(); err != nil {
		return err
	}
	if s.Qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("qty is invalid",
			fmt.Errorf("%d is not greater than 0", s.Qty))
	}
	if s.PriceUSDCents < 0 {
		return errs.NewValueIsInvalidErrorWithCause("price is invalid",
			fmt.Errorf("%d cents is negative", s.PriceUSDCents))
	}
	return nil
}

// CreateOrderCommand represents a request to create a new order with its
// initial item batch. The order starts in created status; stock is not
// reserved until the order is confirmed.
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	dealerID  kernel.UUID
	actor     actor.Actor
	note      string
	valueDate time.Time
	isReserve bool
	items     []OrderItemSpec

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a validated order creation command.
func NewCreateOrderCommand(
	dealerID kernel.UUID,
	act actor.Actor,
	note string,
	valueDate time.Time,
	isReserve bool,
	items []OrderItemSpec,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		note:      note,
		isReserve: isReserve,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDealerID(dealerID),
		cmd.setActor(act),
		cmd.setValueDate(valueDate),
		cmd.setItems(items),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// DealerID returns the dealer the order is placed for.
func (c CreateOrderCommand) DealerID() kernel.UUID {
	return c.dealerID
}

// Actor returns who creates the order.
func (c CreateOrderCommand) Actor() actor.Actor {
	return c.actor
}

// Note returns the free-text note.
func (c CreateOrderCommand) Note() string {
	return c.note
}

// ValueDate returns the accounting date used for currency conversion.
func (c CreateOrderCommand) ValueDate() time.Time {
	return c.valueDate
}

// IsReserve reports whether the order is placed against reserved allocation.
func (c CreateOrderCommand) IsReserve() bool {
	return c.isReserve
}

// Items returns the initial item batch.
func (c CreateOrderCommand) Items() []OrderItemSpec {
	return c.items
}

func (c *CreateOrderCommand) setDealerID(dealerID kernel.UUID) error {
	if err := dealerID.Validate(); err != nil {
		return err
	}
	c.dealerID = dealerID
	return nil
}

func (c *CreateOrderCommand) setActor(act actor.Actor) error {
	if err := act.Validate(); err != nil {
		return err
	}
	c.actor = act
	return nil
}

func (c *CreateOrderCommand) setValueDate(valueDate time.Time) error {
	if valueDate.IsZero() {
		return errs.NewValueIsRequiredError("value date")
	}
	c.valueDate = valueDate
	return nil
}

func (c *CreateOrderCommand) setItems(items []OrderItemSpec) error {
	if len(items) == 0 {
		return ErrOrderItemsAreRequired
	}
	for _, item := range items {
		if err := item.validate(); err != nil {
			return err
		}
	}
	c.items = items
	return nil
}
