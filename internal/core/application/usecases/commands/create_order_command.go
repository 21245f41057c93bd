package commands

import (
	"errors"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/pkg/guard"
)

var (
	ErrCreateOrderCommandIsNotConstructed = errors.New(
		"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
	)
	ErrDetailsAreRequired = errors.New("at least one detail line is required")
)

// PersonalizationInput describes a single ingredient adjustment on a detail
// line as received from the outer layer.
type PersonalizationInput struct {
	Ingredient string
	Excluded   bool
	Mandatory  bool
}

// DetailInput describes a single detail line as received from the outer
// layer. Monetary values are minor currency units.
type DetailInput struct {
	ProductID        kernel.UUID
	UnitPrice        int64
	Quantity         int
	Personalizations []PersonalizationInput
}

// CreateOrderCommand represents a request to register a new order at the
// counter. The order starts its lifecycle in Taken status.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := NewCreateOrderCommand(orderID, sellerID, order.TypeDelivery, details)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//
//	handler := NewCreateOrderCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create order: %w", err)
//	}
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	orderID   kernel.UUID
	sellerID  kernel.UUID
	orderType order.OrderType
	details   []DetailInput

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand creates a command to register a new order.
// Validates identifiers, the order type, and that at least one detail line
// is present. Detail contents are validated by the domain layer when the
// handler builds the aggregate.
func NewCreateOrderCommand(
	orderID kernel.UUID,
	sellerID kernel.UUID,
	orderType order.OrderType,
	details []DetailInput,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setSellerID(sellerID),
		cmd.setOrderType(orderType),
		cmd.setDetails(details),
	); err != nil {
		return CreateOrderCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateOrderCommandIsNotConstructed if validation fails.
func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

// OrderID returns the unique identifier for the order.
func (c CreateOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// SellerID returns the identifier of the seller taking the order.
func (c CreateOrderCommand) SellerID() kernel.UUID {
	return c.sellerID
}

// OrderType returns whether the order is on-premise or delivery.
func (c CreateOrderCommand) OrderType() order.OrderType {
	return c.orderType
}

// Details returns the detail line inputs.
func (c CreateOrderCommand) Details() []DetailInput {
	return c.details
}

func (c *CreateOrderCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *CreateOrderCommand) setSellerID(sellerID kernel.UUID) error {
	if err := sellerID.Validate(); err != nil {
		return err
	}

	c.sellerID = sellerID
	return nil
}

func (c *CreateOrderCommand) setOrderType(orderType order.OrderType) error {
	if err := orderType.Validate(); err != nil {
		return err
	}

	c.orderType = orderType
	return nil
}

func (c *CreateOrderCommand) setDetails(details []DetailInput) error {
	if len(details) == 0 {
		return ErrDetailsAreRequired
	}

	c.details = details
	return nil
}
