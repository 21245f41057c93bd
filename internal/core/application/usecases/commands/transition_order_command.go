package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// ErrSettlementRequired is returned when a plain transition targets the
// Delivered status. Delivered is only reachable through settlement, which
// records the payment in the same transaction as the status change; a bare
// transition would leave a delivered order with no payment.
var ErrSettlementRequired = errors.New(
	"orders are delivered by settling them, not by a plain transition")

// TransitionOrderCommand represents a request to move an order along its
// lifecycle graph. The caller states the status it last observed; if the
// stored status has moved on since, the handler reports a conflict instead
// of applying the change on top of someone else's.
type TransitionOrderCommand struct { //nolint:recvcheck //using for validation
	orderID  kernel.UUID
	act      actor.Actor
	expected order.Status
	target   order.Status

	guard guard.ConstructorGuard
}

// NewTransitionOrderCommand creates a command to transition an order from
// the expected status to the target status on behalf of the given actor.
// Delivered cannot be targeted here; returns ErrSettlementRequired so the
// status change and the payment stay one atomic unit.
func NewTransitionOrderCommand(
	orderID kernel.UUID,
	act actor.Actor,
	expected order.Status,
	target order.Status,
) (TransitionOrderCommand, error) {
	cmd := TransitionOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(act),
		cmd.setExpected(expected),
		cmd.setTarget(target),
	); err != nil {
		return TransitionOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order to transition.
func (c TransitionOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the staff member requesting the transition.
func (c TransitionOrderCommand) Actor() actor.Actor {
	return c.act
}

// Expected returns the status the caller last observed.
func (c TransitionOrderCommand) Expected() order.Status {
	return c.expected
}

// Target returns the requested destination status.
func (c TransitionOrderCommand) Target() order.Status {
	return c.target
}

func (c *TransitionOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *TransitionOrderCommand) setActor(act actor.Actor) error {
	if err := act.Validate(); err != nil {
		return err
	}

	c.act = act
	return nil
}

func (c *TransitionOrderCommand) setExpected(expected order.Status) error {
	if err := expected.Validate(); err != nil {
		return err
	}

	c.expected = expected
	return nil
}

func (c *TransitionOrderCommand) setTarget(target order.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}
	if target == order.Delivered {
		return ErrSettlementRequired
	}

	c.target = target
	return nil
}
