package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/settlement"
	"orderflow/internal/pkg/guard"
)

var (
	ErrSettleOrderCommandIsNotConstructed = errors.New(
		"SettleOrderCommand must be created via NewSettleOrderCommand constructor",
	)
	ErrAmountIsInvalid    = errors.New("payment amount must be greater than 0")
	ErrTipAmountIsInvalid = errors.New("tip amount must be greater than 0")
)

// TipInput describes an optional tip accompanying a payment. Percentage is
// nil for flat tips; when set, the domain layer checks it reconciles with
// the payment amount.
type TipInput struct {
	Amount     int64
	Percentage *int
}

// SettleOrderCommand represents the checkout of an order: recording the
// payment (and optional tip) and closing the lifecycle in one step.
type SettleOrderCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	act     actor.Actor
	amount  int64
	method  settlement.Method
	tip     *TipInput

	guard guard.ConstructorGuard
}

// NewSettleOrderCommand creates a command to settle an order on behalf of
// the given actor. Amount is in minor currency units and must be positive;
// tip is optional.
func NewSettleOrderCommand(
	orderID kernel.UUID,
	act actor.Actor,
	amount int64,
	method settlement.Method,
	tip *TipInput,
) (SettleOrderCommand, error) {
	cmd := SettleOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(act),
		cmd.setAmount(amount),
		cmd.setMethod(method),
		cmd.setTip(tip),
	); err != nil {
		return SettleOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SettleOrderCommand) Validate() error {
	return c.guard.Validate(ErrSettleOrderCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being settled.
func (c SettleOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the staff member performing the checkout.
func (c SettleOrderCommand) Actor() actor.Actor {
	return c.act
}

// Amount returns the payment amount in minor currency units.
func (c SettleOrderCommand) Amount() int64 {
	return c.amount
}

// Method returns how the payment was made.
func (c SettleOrderCommand) Method() settlement.Method {
	return c.method
}

// Tip returns the optional tip input, or nil when no tip was given.
func (c SettleOrderCommand) Tip() *TipInput {
	return c.tip
}

func (c *SettleOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *SettleOrderCommand) setActor(act actor.Actor) error {
	if err := act.Validate(); err != nil {
		return err
	}

	c.act = act
	return nil
}

func (c *SettleOrderCommand) setAmount(amount int64) error {
	if amount <= 0 {
		return ErrAmountIsInvalid
	}

	c.amount = amount
	return nil
}

func (c *SettleOrderCommand) setMethod(method settlement.Method) error {
	if err := method.Validate(); err != nil {
		return err
	}

	c.method = method
	return nil
}

func (c *SettleOrderCommand) setTip(tip *TipInput) error {
	if tip == nil {
		return nil
	}
	if tip.Amount <= 0 {
		return ErrTipAmountIsInvalid
	}

	tipCopy := *tip
	if tip.Percentage != nil {
		pct := *tip.Percentage
		tipCopy.Percentage = &pct
	}
	c.tip = &tipCopy
	return nil
}
