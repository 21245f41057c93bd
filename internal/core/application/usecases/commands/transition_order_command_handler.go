package commands

import (
	"context"

	"orderflow/internal/core/ports"
)

// TransitionOrderCommandHandler applies lifecycle transitions with optimistic
// concurrency control. The read, the domain checks, and the conditional write
// all happen inside one transaction; the write's status guard is what makes
// concurrent transitions lose cleanly instead of overwriting each other.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewTransitionOrderCommandHandler creates a handler for lifecycle transitions.
func NewTransitionOrderCommandHandler(uowFactory OrderUoWFactory) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the transition command.
//
// Returns an error unwrapping to errs.ErrObjectNotFound if the order does
// not exist, ports.ErrConcurrencyConflict if the stored status no longer
// matches the caller's expectation, order.ErrForbidden if the actor may not
// perform this transition, and order.ErrInvalidTransition if the lifecycle
// graph has no such edge.
func (h TransitionOrderCommandHandler) Handle(ctx context.Context, cmd TransitionOrderCommand) error {
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

	if aggregate.Status() != cmd.Expected() {
		return ports.ErrConcurrencyConflict
	}

	if err = aggregate.Transition(cmd.Actor(), cmd.Target()); err != nil {
		return err
	}

	if err = orderRepo.UpdateWhereStatus(ctx, aggregate, cmd.Expected()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}
