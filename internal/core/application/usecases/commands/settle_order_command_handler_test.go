package commands_test

import (
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/domain/model/settlement"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func storedPayment(t *testing.T, orderID kernel.UUID) settlement.Payment {
	t.Helper()
	amount, err := kernel.NewMoney(12000)
	require.NoError(t, err)
	p, err := settlement.NewPayment(kernel.NewUUID(), orderID, amount, settlement.Cash, time.Now())
	require.NoError(t, err)
	return p
}

func TestSettleOrderCommandHandler_Handle_OnPremiseWithTip(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t, order.TypeOnPremise, order.Ready, nil)
	pct := 10
	cmd, err := commands.NewSettleOrderCommand(
		stored.ID(), testActor(t, actor.Cashier), 12000, settlement.Card,
		&commands.TipInput{Amount: 1200, Percentage: &pct},
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	settlementRepo := new(MockSettlementRepository)
	uow := new(MockUoW)

	var payment settlement.Payment
	var tip settlement.Tip
	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("SettlementRepository").Return(settlementRepo).Once(),
		orderRepo.On("Get", ctx, stored.ID()).Return(stored, nil).Once(),
		settlementRepo.On("GetPaymentByOrderID", ctx, stored.ID()).
			Return(settlement.Payment{}, errs.NewObjectNotFoundError("orderID", stored.ID())).Once(),
		orderRepo.On("UpdateWhereStatus", ctx, stored, order.Ready).Return(nil).Once(),
		settlementRepo.On("AddPayment", ctx, mock.AnythingOfType("settlement.Payment")).
			Run(func(args mock.Arguments) { payment = args.Get(1).(settlement.Payment) }).
			Return(nil).Once(),
		settlementRepo.On("AddTip", ctx, mock.AnythingOfType("settlement.Tip")).
			Run(func(args mock.Arguments) { tip = args.Get(1).(settlement.Tip) }).
			Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSettleOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, order.Delivered, stored.Status())
	require.True(t, payment.OrderID().IsEqual(stored.ID()))
	require.Equal(t, int64(12000), payment.Amount().Amount())
	require.True(t, tip.PaymentID().IsEqual(payment.ID()))
	require.Equal(t, int64(1200), tip.Amount().Amount())
	orderRepo.AssertExpectations(t)
	settlementRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
}

func TestSettleOrderCommandHandler_Handle_DeliverySettlesFromArrived(t *testing.T) {
	ctx := t.Context()
	agentID := kernel.NewUUID()
	stored := storedOrder(t, order.TypeDelivery, order.Arrived, &agentID)
	agent, err := actor.NewActor(agentID, actor.DeliveryAgent)
	require.NoError(t, err)
	cmd, err := commands.NewSettleOrderCommand(stored.ID(), agent, 12000, settlement.Cash, nil)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	settlementRepo := new(MockSettlementRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("SettlementRepository").Return(settlementRepo).Once(),
		orderRepo.On("Get", ctx, stored.ID()).Return(stored, nil).Once(),
		settlementRepo.On("GetPaymentByOrderID", ctx, stored.ID()).
			Return(settlement.Payment{}, errs.NewObjectNotFoundError("orderID", stored.ID())).Once(),
		orderRepo.On("UpdateWhereStatus", ctx, stored, order.Arrived).Return(nil).Once(),
		settlementRepo.On("AddPayment", ctx, mock.AnythingOfType("settlement.Payment")).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSettleOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, order.Delivered, stored.Status())
	settlementRepo.AssertNotCalled(t, "AddTip", ctx, mock.Anything)
}

func TestSettleOrderCommandHandler_Handle_AlreadySettled(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t, order.TypeOnPremise, order.Ready, nil)
	cmd, err := commands.NewSettleOrderCommand(
		stored.ID(), testActor(t, actor.Cashier), 12000, settlement.Cash, nil,
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	settlementRepo := new(MockSettlementRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("SettlementRepository").Return(settlementRepo).Once(),
		orderRepo.On("Get", ctx, stored.ID()).Return(stored, nil).Once(),
		settlementRepo.On("GetPaymentByOrderID", ctx, stored.ID()).
			Return(storedPayment(t, stored.ID()), nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSettleOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, settlement.ErrAlreadySettled)
	require.Equal(t, order.Ready, stored.Status())
	orderRepo.AssertNotCalled(t, "UpdateWhereStatus", ctx, mock.Anything, mock.Anything)
}

func TestSettleOrderCommandHandler_Handle_Forbidden(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t, order.TypeOnPremise, order.Ready, nil)
	cmd, err := commands.NewSettleOrderCommand(
		stored.ID(), testActor(t, actor.Kitchen), 12000, settlement.Cash, nil,
	)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	settlementRepo := new(MockSettlementRepository)
	uow := new(MockUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		uow.On("SettlementRepository").Return(settlementRepo).Once(),
		orderRepo.On("Get", ctx, stored.ID()).Return(stored, nil).Once(),
		settlementRepo.On("GetPaymentByOrderID", ctx, stored.ID()).
			Return(settlement.Payment{}, errs.NewObjectNotFoundError("orderID", stored.ID())).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewSettleOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrForbidden)
	require.Equal(t, order.Ready, stored.Status())
}

// A write conflict during settlement is reported as AlreadySettled when a
// payment shows up on the fresh read, and as a plain conflict otherwise.
func TestSettleOrderCommandHandler_Handle_WriteConflict(t *testing.T) {
	t.Run("concurrent settle won by someone else", func(t *testing.T) {
		ctx := t.Context()
		stored := storedOrder(t, order.TypeOnPremise, order.Ready, nil)
		cmd, err := commands.NewSettleOrderCommand(
			stored.ID(), testActor(t, actor.Cashier), 12000, settlement.Cash, nil,
		)
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		settlementRepo := new(MockSettlementRepository)
		uow := new(MockUoW)

		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			uow.On("SettlementRepository").Return(settlementRepo).Once(),
			orderRepo.On("Get", ctx, stored.ID()).Return(stored, nil).Once(),
			settlementRepo.On("GetPaymentByOrderID", ctx, stored.ID()).
				Return(settlement.Payment{}, errs.NewObjectNotFoundError("orderID", stored.ID())).Once(),
			orderRepo.On("UpdateWhereStatus", ctx, stored, order.Ready).
				Return(ports.ErrConcurrencyConflict).Once(),
		)
		uow.On("Rollback", ctx).Return(nil)

		// Fresh unit of work for the post-conflict read: the winner's
		// payment is visible now.
		recheckRepo := new(MockSettlementRepository)
		recheckUoW := new(MockUoW)
		mock.InOrder(
			recheckUoW.On("Begin", ctx).Return(nil).Once(),
			recheckUoW.On("SettlementRepository").Return(recheckRepo).Once(),
			recheckRepo.On("GetPaymentByOrderID", ctx, stored.ID()).
				Return(storedPayment(t, stored.ID()), nil).Once(),
			recheckUoW.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()
		factory.On("Create").Return(recheckUoW).Once()

		handler := commands.NewSettleOrderCommandHandler(factory)
		err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, settlement.ErrAlreadySettled)
		uow.AssertNotCalled(t, "Commit", ctx)
	})

	t.Run("concurrent cancel won by someone else", func(t *testing.T) {
		ctx := t.Context()
		stored := storedOrder(t, order.TypeOnPremise, order.Ready, nil)
		cmd, err := commands.NewSettleOrderCommand(
			stored.ID(), testActor(t, actor.Cashier), 12000, settlement.Cash, nil,
		)
		require.NoError(t, err)

		orderRepo := new(MockOrderRepository)
		settlementRepo := new(MockSettlementRepository)
		uow := new(MockUoW)

		mock.InOrder(
			uow.On("Begin", ctx).Return(nil).Once(),
			uow.On("OrderRepository").Return(orderRepo).Once(),
			uow.On("SettlementRepository").Return(settlementRepo).Once(),
			orderRepo.On("Get", ctx, stored.ID()).Return(stored, nil).Once(),
			settlementRepo.On("GetPaymentByOrderID", ctx, stored.ID()).
				Return(settlement.Payment{}, errs.NewObjectNotFoundError("orderID", stored.ID())).Once(),
			orderRepo.On("UpdateWhereStatus", ctx, stored, order.Ready).
				Return(ports.ErrConcurrencyConflict).Once(),
		)
		uow.On("Rollback", ctx).Return(nil)

		recheckRepo := new(MockSettlementRepository)
		recheckUoW := new(MockUoW)
		mock.InOrder(
			recheckUoW.On("Begin", ctx).Return(nil).Once(),
			recheckUoW.On("SettlementRepository").Return(recheckRepo).Once(),
			recheckRepo.On("GetPaymentByOrderID", ctx, stored.ID()).
				Return(settlement.Payment{}, errs.NewObjectNotFoundError("orderID", stored.ID())).Once(),
			recheckUoW.On("Rollback", ctx).Return(nil).Once(),
		)

		factory := new(MockUoWFactory)
		factory.On("Create").Return(uow).Once()
		factory.On("Create").Return(recheckUoW).Once()

		handler := commands.NewSettleOrderCommandHandler(factory)
		err = handler.Handle(ctx, cmd)

		require.ErrorIs(t, err, ports.ErrConcurrencyConflict)
	})
}
