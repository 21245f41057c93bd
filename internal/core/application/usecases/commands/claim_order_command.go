package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/guard"
)

var ErrClaimOrderCommandIsNotConstructed = errors.New(
	"ClaimOrderCommand must be created via NewClaimOrderCommand constructor",
)

// ClaimOrderCommand represents a delivery agent's attempt to take a ready
// order off the dispatch queue. Any number of agents may attempt the same
// order; at most one claim succeeds. The command carries the authenticated
// actor as resolved at the boundary, so the lifecycle rules can verify the
// claiming role rather than trust the caller.
type ClaimOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	agent   actor.Actor

	guard guard.ConstructorGuard
}

// NewClaimOrderCommand creates a command for the given actor to claim the
// given order.
func NewClaimOrderCommand(orderID kernel.UUID, agent actor.Actor) (ClaimOrderCommand, error) {
	cmd := ClaimOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setAgent(agent),
	); err != nil {
		return ClaimOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c ClaimOrderCommand) Validate() error {
	return c.guard.Validate(ErrClaimOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being claimed.
func (c ClaimOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Agent returns the actor attempting the claim.
func (c ClaimOrderCommand) Agent() actor.Actor {
	return c.agent
}

func (c *ClaimOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *ClaimOrderCommand) setAgent(agent actor.Actor) error {
	if err := agent.Validate(); err != nil {
		return err
	}

	c.agent = agent
	return nil
}
