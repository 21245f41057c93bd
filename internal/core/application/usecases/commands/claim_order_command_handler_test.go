package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"orderflow/internal/core/application/usecases/commands"
	"orderflow/internal/core/domain/model/actor"
	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/core/domain/model/order"
	"orderflow/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClaimOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t, order.TypeDelivery, order.Ready, nil)
	agent := testActor(t, actor.DeliveryAgent)
	cmd, err := commands.NewClaimOrderCommand(stored.ID(), agent)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, stored.ID()).Return(stored, nil).Once(),
		orderRepo.On("UpdateWhereStatus", ctx, stored, order.Ready).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewClaimOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.NoError(t, err)
	require.Equal(t, order.InTransit, stored.Status())
	require.NotNil(t, stored.DeliveryAgent())
	require.True(t, stored.DeliveryAgent().IsEqual(agent.UserID()))
	orderRepo.AssertExpectations(t)
	uow.AssertExpectations(t)
}

func TestClaimOrderCommandHandler_Handle_WrongRole(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t, order.TypeDelivery, order.Ready, nil)
	kitchen := testActor(t, actor.Kitchen)
	cmd, err := commands.NewClaimOrderCommand(stored.ID(), kitchen)
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, stored.ID()).Return(stored, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewClaimOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrForbidden)
	require.Equal(t, order.Ready, stored.Status())
	require.Nil(t, stored.DeliveryAgent())
	orderRepo.AssertNotCalled(t, "UpdateWhereStatus", ctx, mock.Anything, mock.Anything)
}

func TestClaimOrderCommandHandler_Handle_AlreadyClaimed(t *testing.T) {
	ctx := t.Context()
	otherAgent := kernel.NewUUID()
	stored := storedOrder(t, order.TypeDelivery, order.InTransit, &otherAgent)
	cmd, err := commands.NewClaimOrderCommand(stored.ID(), testActor(t, actor.DeliveryAgent))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, stored.ID()).Return(stored, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewClaimOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, ports.ErrConcurrencyConflict)
	orderRepo.AssertNotCalled(t, "UpdateWhereStatus", ctx, mock.Anything, mock.Anything)
}

func TestClaimOrderCommandHandler_Handle_OnPremiseOrder(t *testing.T) {
	ctx := t.Context()
	stored := storedOrder(t, order.TypeOnPremise, order.Ready, nil)
	cmd, err := commands.NewClaimOrderCommand(stored.ID(), testActor(t, actor.DeliveryAgent))
	require.NoError(t, err)

	orderRepo := new(MockOrderRepository)
	uow := new(MockOrderUoW)

	mock.InOrder(
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("OrderRepository").Return(orderRepo).Once(),
		orderRepo.On("Get", ctx, stored.ID()).Return(stored, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	factory := new(MockOrderUoWFactory)
	factory.On("Create").Return(uow).Once()

	handler := commands.NewClaimOrderCommandHandler(factory)
	err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, order.ErrInvalidTransition)
}

// claimStore is an in-memory order store with the same conditional-write
// behavior as the real repository: the status guard is checked and the
// write applied under one lock.
type claimStore struct {
	mu sync.Mutex

	id        kernel.UUID
	sellerID  kernel.UUID
	createdAt time.Time
	details   []order.Detail
	total     kernel.Money

	status  order.Status
	agentID *kernel.UUID
}

func newClaimStore(t *testing.T) *claimStore {
	t.Helper()
	total, err := kernel.NewMoney(12000)
	require.NoError(t, err)
	return &claimStore{
		id:        kernel.NewUUID(),
		sellerID:  kernel.NewUUID(),
		createdAt: time.Now(),
		details:   storedDetails(t),
		total:     total,
		status:    order.Ready,
	}
}

func (s *claimStore) restore() (*order.Order, error) {
	return order.RestoreOrder(
		s.id, s.sellerID, order.TypeDelivery, s.status, s.createdAt, s.agentID, s.total, s.details,
	)
}

func (s *claimStore) Add(_ context.Context, _ *order.Order) error    { return nil }
func (s *claimStore) Update(_ context.Context, _ *order.Order) error { return nil }

func (s *claimStore) Get(_ context.Context, _ kernel.UUID) (*order.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.restore()
}

func (s *claimStore) GetAllReady(_ context.Context, _ order.OrderType) ([]*order.Order, error) {
	return nil, nil
}

func (s *claimStore) UpdateWhereStatus(
	_ context.Context, aggregate *order.Order, expected order.Status,
) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.status != expected {
		return ports.ErrConcurrencyConflict
	}
	s.status = aggregate.Status()
	s.agentID = aggregate.DeliveryAgent()
	return nil
}

type claimStoreUoW struct{ store *claimStore }

func (u claimStoreUoW) Begin(context.Context) error            { return nil }
func (u claimStoreUoW) Commit(context.Context) error           { return nil }
func (u claimStoreUoW) Rollback(context.Context) error         { return nil }
func (u claimStoreUoW) OrderRepository() ports.OrderRepository { return u.store }

type claimStoreUoWFactory struct{ store *claimStore }

func (f claimStoreUoWFactory) Create() commands.OrderUoW { return claimStoreUoW{store: f.store} }

// TestClaimOrderCommandHandler_Handle_ConcurrentClaims races many agents
// over one ready order: exactly one claim must win and everyone else must
// observe a conflict, with the winner recorded as the assigned agent.
func TestClaimOrderCommandHandler_Handle_ConcurrentClaims(t *testing.T) {
	const agents = 16

	ctx := t.Context()
	store := newClaimStore(t)
	handler := commands.NewClaimOrderCommandHandler(claimStoreUoWFactory{store: store})

	results := make([]error, agents)
	claimants := make([]actor.Actor, agents)

	var wg sync.WaitGroup
	for i := range agents {
		claimants[i] = testActor(t, actor.DeliveryAgent)
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			cmd, err := commands.NewClaimOrderCommand(store.id, claimants[i])
			if err != nil {
				results[i] = err
				return
			}
			results[i] = handler.Handle(ctx, cmd)
		}(i)
	}
	wg.Wait()

	winners := 0
	winnerIdx := -1
	for i, err := range results {
		if err == nil {
			winners++
			winnerIdx = i
			continue
		}
		require.ErrorIs(t, err, ports.ErrConcurrencyConflict)
	}

	require.Equal(t, 1, winners)
	require.Equal(t, order.InTransit, store.status)
	require.NotNil(t, store.agentID)
	require.True(t, store.agentID.IsEqual(claimants[winnerIdx].UserID()))
}
