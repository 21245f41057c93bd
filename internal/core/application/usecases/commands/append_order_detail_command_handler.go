package commands

import (
	"context"
	"fmt"

	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/order"
)

// AppendOrderDetailCommandHandler adds a line item to an order while it is
// still Taken. The aggregate recomputes the total; orders that have left
// Taken reject the append with order.ErrDetailsAreSealed.
type AppendOrderDetailCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewAppendOrderDetailCommandHandler creates a handler for detail appends.
func NewAppendOrderDetailCommandHandler(uowFactory OrderUoWFactory) AppendOrderDetailCommandHandler {
	return AppendOrderDetailCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the append command. Only the counter roles that create
// orders may extend them.
func (h AppendOrderDetailCommandHandler) Handle(ctx context.Context, cmd AppendOrderDetailCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if !cmd.Actor().Is(actor.Owner, actor.Admin) {
		return fmt.Errorf("%w: role %s may not append order details",
			order.ErrForbidden, cmd.Actor().Role())
	}

	details, err := buildDetails([]DetailInput{cmd.Detail()})
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

	orderRepo := uow.OrderRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = aggregate.AppendDetail(details[0]); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, aggregate); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
