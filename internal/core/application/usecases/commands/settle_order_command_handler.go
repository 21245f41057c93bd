package commands

import (
	"context"
	"errors"
	"time"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/settlement"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"
)

// SettleOrderCommandHandler performs checkout: it moves the order to
// Delivered and records the payment (and optional tip) in one transaction.
// Either everything commits or nothing does; there is no window in which
// the order is Delivered but unpaid, or paid but not Delivered.
//
// On-premise orders settle from Ready (cashier checkout), delivery orders
// from Arrived (handover at the door); the lifecycle graph enforces which
// actors may do either.
type SettleOrderCommandHandler struct {
	uowFactory UoWFactory
}

// NewSettleOrderCommandHandler creates a handler for settlement operations.
// Requires a UoWFactory spanning both order and settlement repositories.
func NewSettleOrderCommandHandler(uowFactory UoWFactory) SettleOrderCommandHandler {
	return SettleOrderCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the settle command.
//
// Returns an error unwrapping to errs.ErrObjectNotFound if the order does
// not exist, settlement.ErrAlreadySettled if a payment was already recorded,
// order.ErrForbidden or order.ErrInvalidTransition if the actor or the
// order's current status does not admit checkout, and
// ports.ErrConcurrencyConflict if a concurrent writer moved the order first.
func (h SettleOrderCommandHandler) Handle(ctx context.Context, cmd SettleOrderCommand) error {
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
	settlementRepo := uow.SettlementRepository()

	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	_, err = settlementRepo.GetPaymentByOrderID(ctx, cmd.OrderID())
	if err == nil {
		return settlement.ErrAlreadySettled
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	expected := aggregate.Status()
	if err = aggregate.Deliver(cmd.Actor()); err != nil {
		return err
	}

	payment, tip, err := buildSettlement(cmd)
	if err != nil {
		return err
	}

	if err = orderRepo.UpdateWhereStatus(ctx, aggregate, expected); err != nil {
		if errors.Is(err, ports.ErrConcurrencyConflict) {
			_ = uow.Rollback(ctx)
			return h.classifyConflict(ctx, cmd.OrderID())
		}
		return err
	}

	if err = settlementRepo.AddPayment(ctx, payment); err != nil {
		return err
	}

	if tip != nil {
		if err = settlementRepo.AddTip(ctx, *tip); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	return nil
}

// classifyConflict distinguishes "someone settled this order before us" from
// other concurrent state changes, using a fresh read after the losing
// transaction has been rolled back.
func (h SettleOrderCommandHandler) classifyConflict(ctx context.Context, orderID kernel.UUID) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	_, err := uow.SettlementRepository().GetPaymentByOrderID(ctx, orderID)
	if err == nil {
		return settlement.ErrAlreadySettled
	}
	if errors.Is(err, errs.ErrObjectNotFound) {
		return ports.ErrConcurrencyConflict
	}

	return err
}

func buildSettlement(cmd SettleOrderCommand) (settlement.Payment, *settlement.Tip, error) {
	amount, err := kernel.NewMoney(cmd.Amount())
	if err != nil {
		return settlement.Payment{}, nil, err
	}

	now := time.Now().UTC()
	payment, err := settlement.NewPayment(kernel.NewUUID(), cmd.OrderID(), amount, cmd.Method(), now)
	if err != nil {
		return settlement.Payment{}, nil, err
	}

	if cmd.Tip() == nil {
		return payment, nil, nil
	}

	tipAmount, err := kernel.NewMoney(cmd.Tip().Amount)
	if err != nil {
		return settlement.Payment{}, nil, err
	}

	tip, err := settlement.NewTip(
		kernel.NewUUID(), payment.ID(), tipAmount, cmd.Tip().Percentage, payment.Amount(), now,
	)
	if err != nil {
		return settlement.Payment{}, nil, err
	}

	return payment, &tip, nil
}
