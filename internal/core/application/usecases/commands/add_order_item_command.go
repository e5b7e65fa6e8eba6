package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var (
	ErrAddOrderItemCommandIsNotConstructed = errors.New(
		"AddOrderItemCommand must be created via NewAddOrderItemCommand constructor",
	)
)

// AddOrderItemCommand represents a request to append a line to an existing
// order. Line edits are gated by the same authorization table as status
// transitions: the creating sales user may edit while the order is still in
// created status, an admin also while it is confirmed.
type AddOrderItemCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	item    OrderItemSpec
	actor   actor.Actor

	guard guard.ConstructorGuard
}

// NewAddOrderItemCommand creates a validated item addition command.
func NewAddOrderItemCommand(
	orderID kernel.UUID,
	item OrderItemSpec,
	act actor.Actor,
) (AddOrderItemCommand, error) {
	cmd := AddOrderItemCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setItem(item),
		cmd.setActor(act),
	); err != nil {
		return AddOrderItemCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AddOrderItemCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderItemCommandIsNotConstructed)
}

// OrderID returns the order to extend.
func (c AddOrderItemCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Item returns the line specification.
func (c AddOrderItemCommand) Item() OrderItemSpec {
	return c.item
}

// Actor returns who requests the edit.
func (c AddOrderItemCommand) Actor() actor.Actor {
	return c.actor
}

func (c *AddOrderItemCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	c.orderID = orderID
	return nil
}

func (c *AddOrderItemCommand) setItem(item OrderItemSpec) error {
	if err := item.validate(); err != nil {
		return err
	}
	c.item = item
	return nil
}

func (c *AddOrderItemCommand) setActor(act actor.Actor) error {
	if err := act.Validate(); err != nil {
		return err
	}
	c.actor = act
	return nil
}
