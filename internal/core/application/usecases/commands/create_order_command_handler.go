package commands

import (
	"context"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
)

// CreateOrderCommandHandler handles the business logic for order creation.
// Builds the order aggregate from detail inputs and persists it in Taken status.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrderCommandHandler creates a handler for order creation operations.
// Requires an OrderUoWFactory for transactional persistence.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the order creation command.
// Constructs domain detail lines from the inputs, creates the aggregate in
// Taken status, and persists it within a transaction.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	details, err := buildDetails(cmd.Details())
	if err != nil {
		return err
	}

	newOrder, err := order.NewOrder(cmd.OrderID(), cmd.SellerID(), cmd.OrderType(), time.Now().UTC(), details)
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

func buildDetails(inputs []DetailInput) ([]order.Detail, error) {
	details := make([]order.Detail, 0, len(inputs))
	for _, input := range inputs {
		unitPrice, err := kernel.NewMoney(input.UnitPrice)
		if err != nil {
			return nil, err
		}

		personalizations := make([]order.Personalization, 0, len(input.Personalizations))
		for _, p := range input.Personalizations {
			personalization, err := order.NewPersonalization(p.Ingredient, p.Excluded, p.Mandatory)
			if err != nil {
				return nil, err
			}
			personalizations = append(personalizations, personalization)
		}

		detail, err := order.NewDetail(kernel.NewUUID(), input.ProductID, unitPrice, input.Quantity, personalizations)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
	}

	return details, nil
}
