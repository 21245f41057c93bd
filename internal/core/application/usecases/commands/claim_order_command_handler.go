package commands

import (
	"context"

	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"
)

// ClaimOrderCommandHandler resolves races between delivery agents over the
// same ready order. The claim is a Ready to InTransit transition guarded by
// a conditional write: whichever agent's write lands first wins and becomes
// the assigned agent; everyone else gets ports.ErrConcurrencyConflict and
// should refresh the dispatch queue.
type ClaimOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewClaimOrderCommandHandler creates a handler for claim operations.
func NewClaimOrderCommandHandler(uowFactory OrderUoWFactory) ClaimOrderCommandHandler {
	return ClaimOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the claim command.
//
// Returns an error unwrapping to errs.ErrObjectNotFound if the order does
// not exist, ports.ErrConcurrencyConflict if another agent got there first,
// order.ErrForbidden if the acting role may not claim orders, and
// order.ErrInvalidTransition if the order is not a claimable delivery
// order at all.
func (h ClaimOrderCommandHandler) Handle(ctx context.Context, cmd ClaimOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
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

	// A claim only makes sense against a Ready order. Anything else means
	// the agent's view of the queue is stale.
	if aggregate.Status() != order.Ready {
		return ports.ErrConcurrencyConflict
	}

	if err = aggregate.Claim(cmd.Agent()); err != nil {
		return err
	}

	if err = orderRepo.UpdateWhereStatus(ctx, aggregate, order.Ready); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
