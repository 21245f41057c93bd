package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrAppendOrderDetailCommandIsNotConstructed = errors.New(
	"AppendOrderDetailCommand must be created via NewAppendOrderDetailCommand constructor",
)

// AppendOrderDetailCommand represents a request to add a line item to an
// order that is still being taken at the counter. Once the kitchen picks
// the order up the detail list is sealed and appends are rejected.
type AppendOrderDetailCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	act     actor.Actor
	detail  DetailInput

	guard guard.ConstructorGuard
}

// NewAppendOrderDetailCommand creates a command to append one detail line
// to an existing order on behalf of the given actor. Detail contents are
// validated by the domain layer when the handler builds the line.
func NewAppendOrderDetailCommand(
	orderID kernel.UUID,
	act actor.Actor,
	detail DetailInput,
) (AppendOrderDetailCommand, error) {
	cmd := AppendOrderDetailCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(act),
		cmd.setDetail(detail),
	); err != nil {
		return AppendOrderDetailCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AppendOrderDetailCommand) Validate() error {
	return c.guard.Validate(ErrAppendOrderDetailCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to extend.
func (c AppendOrderDetailCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the staff member requesting the append.
func (c AppendOrderDetailCommand) Actor() actor.Actor {
	return c.act
}

// Detail returns the detail line input.
func (c AppendOrderDetailCommand) Detail() DetailInput {
	return c.detail
}

func (c *AppendOrderDetailCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AppendOrderDetailCommand) setActor(act actor.Actor) error {
	if err := act.Validate(); err != nil {
		return err
	}

	c.act = act
	return nil
}

func (c *AppendOrderDetailCommand) setDetail(detail DetailInput) error {
	if err := detail.ProductID.Validate(); err != nil {
		return err
	}

	c.detail = detail
	return nil
}
