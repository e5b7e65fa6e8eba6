package commands

import (
	"errors"
	"fmt"

	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
	"orderflow/internal/pkg/guard"
)

var (
	ErrRegisterReturnCommandIsNotConstructed = errors.New(
		"RegisterReturnCommand must be created via NewRegisterReturnCommand constructor",
	)
)

// RegisterReturnCommand represents a request to take back a quantity of one
// order line, routing it to the healthy or defective stock bucket.
type RegisterReturnCommand struct { //nolint:recvcheck //using for validation
	itemID   kernel.UUID
	qty      int
	isDefect bool
	actor    actor.Actor

	guard guard.ConstructorGuard
}

// NewRegisterReturnCommand creates a validated return command.
// The quantity must be positive; the upper bound (what is still returnable on
// the line) is checked inside the transaction by the handler.
func NewRegisterReturnCommand(
	itemID kernel.UUID,
	qty int,
	isDefect bool,
	act actor.Actor,
) (RegisterReturnCommand, error) {
	cmd := RegisterReturnCommand{
		isDefect: isDefect,
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setItemID(itemID),
		cmd.setQty(qty),
		cmd.setActor(act),
	); err != nil {
		return RegisterReturnCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterReturnCommand) Validate() error {
	return c.guard.Validate(ErrRegisterReturnCommandIsNotConstructed)
}

// ItemID returns the order line being returned against.
func (c RegisterReturnCommand) ItemID() kernel.UUID {
	return c.itemID
}

// Qty returns the quantity being returned.
func (c RegisterReturnCommand) Qty() int {
	return c.qty
}

// IsDefect reports whether the returned units are defective.
func (c RegisterReturnCommand) IsDefect() bool {
	return c.isDefect
}

// Actor returns who processes the return.
func (c RegisterReturnCommand) Actor() actor.Actor {
	return c.actor
}

func (c *RegisterReturnCommand) setItemID(itemID kernel.UUID) error {
	if err := itemID.Validate(); err != nil {
		return err
	}
	c.itemID = itemID
	return nil
}

func (c *RegisterReturnCommand) setQty(qty int) error {
	if qty <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("qty is invalid",
			fmt.Errorf("%d is not greater than 0", qty))
	}
	c.qty = qty
	return nil
}

func (c *RegisterReturnCommand) setActor(act actor.Actor) error {
	if err := act.Validate(); err != nil {
		return err
	}
	c.actor = act
	return nil
}
