package commands_test

import (
	"errors"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type dispatchMocks struct {
	orderRepo *MockOrderRepository
	agentRepo *MockAgentRepository
	uow       *MockUoW
	factory   *MockUoWFactory
}

func newDispatchMocks() dispatchMocks {
	m := dispatchMocks{
		orderRepo: new(MockOrderRepository),
		agentRepo: new(MockAgentRepository),
		uow:       new(MockUoW),
		factory:   new(MockUoWFactory),
	}
	m.factory.On("Create").Return(m.uow)
	m.uow.On("OrderRepository").Return(m.orderRepo)
	m.uow.On("AgentRepository").Return(m.agentRepo)
	return m
}

func locatedAgent(t *testing.T, name string, lng, lat float64) *agent.Agent {
	t.Helper()
	a := onlineAgent(t, name, cbdPairs)
	_, err := a.UpdateLocation(point(t, lng, lat), 5, registeredAt.Add(time.Minute))
	require.NoError(t, err)
	a.ClearDomainEvents()
	return a
}

func TestDispatchOrderCommandHandler_Handle_AssignsNearestAgent(t *testing.T) {
	ctx := t.Context()
	o := readyOrder(t)
	near := locatedAgent(t, "near", 36.821, -1.291)
	far := locatedAgent(t, "far", 36.75, -1.38)
	cmd, err := commands.NewDispatchOrderCommand(o.ID(), nil)
	require.NoError(t, err)

	m := newDispatchMocks()
	mock.InOrder(
		m.orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		m.agentRepo.On("ListOnline", ctx).Return([]*agent.Agent{far, near}, nil).Once(),
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		m.agentRepo.On("Get", ctx, near.ID()).Return(near, nil).Once(),
		m.agentRepo.On("Update", ctx, near).Return(nil).Once(),
		m.orderRepo.On("Update", ctx, o).Return(nil).Once(),
		m.uow.On("Commit", ctx).Return(nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	assigned, err := commands.NewDispatchOrderCommandHandler(m.factory, commands.DefaultAttempts).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, near.ID(), assigned)
	assert.Equal(t, order.Assigned, o.Status())
	assert.True(t, o.DeliveryPerson().IsEqual(near.ID()))
	assert.True(t, near.CurrentOrder().IsEqual(o.ID()))
	assert.True(t, far.IsAvailable())
	m.orderRepo.AssertExpectations(t)
	m.agentRepo.AssertExpectations(t)
	m.uow.AssertExpectations(t)
}

func TestDispatchOrderCommandHandler_Handle_FallsThroughToNextCandidate(t *testing.T) {
	ctx := t.Context()
	o := readyOrder(t)
	freshOrder := orderSnapshot(t, o)
	near := locatedAgent(t, "near", 36.821, -1.291)
	far := locatedAgent(t, "far", 36.75, -1.38)
	cmd, err := commands.NewDispatchOrderCommand(o.ID(), nil)
	require.NoError(t, err)

	// near accepted another order between ranking and claiming
	nearNow := agentSnapshot(t, near)()
	require.NoError(t, nearNow.Claim(kernel.NewUUID()))
	secondRead := freshOrder()

	m := newDispatchMocks()
	m.uow.On("Begin", ctx).Return(nil).Twice()
	m.uow.On("Rollback", ctx).Return(nil).Twice()
	m.orderRepo.On("Get", ctx, o.ID()).Return(freshOrder(), nil).Once()
	m.agentRepo.On("ListOnline", ctx).Return([]*agent.Agent{far, near}, nil).Once()
	m.orderRepo.On("Get", ctx, o.ID()).Return(freshOrder(), nil).Once()
	m.agentRepo.On("Get", ctx, near.ID()).Return(nearNow, nil).Once()
	m.orderRepo.On("Get", ctx, o.ID()).Return(secondRead, nil).Once()
	m.agentRepo.On("Get", ctx, far.ID()).Return(far, nil).Once()
	m.agentRepo.On("Update", ctx, far).Return(nil).Once()
	m.orderRepo.On("Update", ctx, secondRead).Return(nil).Once()
	m.uow.On("Commit", ctx).Return(nil).Once()

	assigned, err := commands.NewDispatchOrderCommandHandler(m.factory, commands.DefaultAttempts).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, far.ID(), assigned)
	assert.True(t, secondRead.DeliveryPerson().IsEqual(far.ID()))
	m.agentRepo.AssertNotCalled(t, "Update", ctx, nearNow)
	m.agentRepo.AssertExpectations(t)
}

func TestDispatchOrderCommandHandler_Handle_WaitingAndUncovered(t *testing.T) {
	ctx := t.Context()

	t.Run("should report a waiting state when every covering agent is busy", func(t *testing.T) {
		o := readyOrder(t)
		busy := onlineAgent(t, "busy", cbdPairs)
		assignedTo(t, busy)
		cmd, err := commands.NewDispatchOrderCommand(o.ID(), nil)
		require.NoError(t, err)

		m := newDispatchMocks()
		m.orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
		m.agentRepo.On("ListOnline", ctx).Return([]*agent.Agent{busy}, nil).Once()

		_, err = commands.NewDispatchOrderCommandHandler(m.factory, commands.DefaultAttempts).Handle(ctx, cmd)

		require.ErrorIs(t, err, services.ErrNoAgentAvailable)
		assert.Equal(t, order.Ready, o.Status())
		m.uow.AssertNotCalled(t, "Begin", ctx)
	})

	t.Run("should report a zone mismatch when nobody works there", func(t *testing.T) {
		o := readyOrder(t)
		elsewhere := onlineAgent(t, "coast", mombasaPairs)
		cmd, err := commands.NewDispatchOrderCommand(o.ID(), nil)
		require.NoError(t, err)

		m := newDispatchMocks()
		m.orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
		m.agentRepo.On("ListOnline", ctx).Return([]*agent.Agent{elsewhere}, nil).Once()

		_, err = commands.NewDispatchOrderCommandHandler(m.factory, commands.DefaultAttempts).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrZoneMismatch)
		assert.Equal(t, order.Ready, o.Status())
	})

	t.Run("should leave the order ready when every claim fails", func(t *testing.T) {
		o := readyOrder(t)
		fresh := orderSnapshot(t, o)
		only := onlineAgent(t, "only", cbdPairs)
		nowBusy := agentSnapshot(t, only)()
		require.NoError(t, nowBusy.Claim(kernel.NewUUID()))
		cmd, err := commands.NewDispatchOrderCommand(o.ID(), nil)
		require.NoError(t, err)

		m := newDispatchMocks()
		m.uow.On("Begin", ctx).Return(nil).Once()
		m.uow.On("Rollback", ctx).Return(nil).Once()
		m.orderRepo.On("Get", ctx, o.ID()).Return(fresh(), nil).Twice()
		m.agentRepo.On("ListOnline", ctx).Return([]*agent.Agent{only}, nil).Once()
		m.agentRepo.On("Get", ctx, only.ID()).Return(nowBusy, nil).Once()

		_, err = commands.NewDispatchOrderCommandHandler(m.factory, commands.DefaultAttempts).Handle(ctx, cmd)

		require.ErrorIs(t, err, services.ErrNoAgentAvailable)
		m.uow.AssertNotCalled(t, "Commit", ctx)
	})
}

func TestDispatchOrderCommandHandler_Handle_ForceAssignBypassesZones(t *testing.T) {
	ctx := t.Context()
	o := readyOrder(t)
	outsider := onlineAgent(t, "outsider", mombasaPairs)
	forced := outsider.ID()
	cmd, err := commands.NewDispatchOrderCommand(o.ID(), &forced)
	require.NoError(t, err)

	m := newDispatchMocks()
	mock.InOrder(
		m.uow.On("Begin", ctx).Return(nil).Once(),
		m.orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
		m.agentRepo.On("Get", ctx, outsider.ID()).Return(outsider, nil).Once(),
		m.agentRepo.On("Update", ctx, outsider).Return(nil).Once(),
		m.orderRepo.On("Update", ctx, o).Return(nil).Once(),
		m.uow.On("Commit", ctx).Return(nil).Once(),
		m.uow.On("Rollback", ctx).Return(nil).Once(),
	)

	assigned, err := commands.NewDispatchOrderCommandHandler(m.factory, commands.DefaultAttempts).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, outsider.ID(), assigned)
	assert.Equal(t, order.Assigned, o.Status())
	history := o.History()
	assert.Equal(t, order.ActorAdmin, history[len(history)-1].Actor)
	m.agentRepo.AssertNotCalled(t, "ListOnline", ctx)
}

func TestDispatchOrderCommandHandler_Handle_ForceAssignStillClaims(t *testing.T) {
	ctx := t.Context()
	o := readyOrder(t)
	busy := onlineAgent(t, "busy", cbdPairs)
	assignedTo(t, busy)
	forced := busy.ID()
	cmd, err := commands.NewDispatchOrderCommand(o.ID(), &forced)
	require.NoError(t, err)

	m := newDispatchMocks()
	m.uow.On("Begin", ctx).Return(nil).Once()
	m.orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
	m.agentRepo.On("Get", ctx, busy.ID()).Return(busy, nil).Once()
	m.uow.On("Rollback", ctx).Return(nil).Once()

	_, err = commands.NewDispatchOrderCommandHandler(m.factory, commands.DefaultAttempts).Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrAgentUnavailable)
	assert.Equal(t, order.Ready, o.Status())
}

func TestAcceptOrderCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()

	t.Run("should claim an order in the agent's zone", func(t *testing.T) {
		o := readyOrder(t)
		a := onlineAgent(t, "taker", cbdPairs)
		cmd, err := commands.NewAcceptOrderCommand(a.ID(), o.ID())
		require.NoError(t, err)

		m := newDispatchMocks()
		mock.InOrder(
			m.uow.On("Begin", ctx).Return(nil).Once(),
			m.orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once(),
			m.agentRepo.On("Get", ctx, a.ID()).Return(a, nil).Once(),
			m.agentRepo.On("Update", ctx, a).Return(nil).Once(),
			m.orderRepo.On("Update", ctx, o).Return(nil).Once(),
			m.uow.On("Commit", ctx).Return(nil).Once(),
			m.uow.On("Rollback", ctx).Return(nil).Once(),
		)

		err = commands.NewAcceptOrderCommandHandler(m.factory, commands.DefaultAttempts).Handle(ctx, cmd)

		require.NoError(t, err)
		assert.True(t, o.DeliveryPerson().IsEqual(a.ID()))
		history := o.History()
		assert.Equal(t, order.ActorAgent, history[len(history)-1].Actor)
	})

	t.Run("should refuse an order outside the agent's zones", func(t *testing.T) {
		o := readyOrder(t)
		a := onlineAgent(t, "coast", mombasaPairs)
		cmd, err := commands.NewAcceptOrderCommand(a.ID(), o.ID())
		require.NoError(t, err)

		m := newDispatchMocks()
		m.uow.On("Begin", ctx).Return(nil).Once()
		m.orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
		m.agentRepo.On("Get", ctx, a.ID()).Return(a, nil).Once()
		m.uow.On("Rollback", ctx).Return(nil).Once()

		err = commands.NewAcceptOrderCommandHandler(m.factory, commands.DefaultAttempts).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrZoneMismatch)
		assert.True(t, a.IsAvailable())
	})

	t.Run("should report a claim that keeps losing races as unavailable", func(t *testing.T) {
		o := readyOrder(t)
		a := onlineAgent(t, "unlucky", cbdPairs)
		freshOrder := orderSnapshot(t, o)
		freshAgent := agentSnapshot(t, a)
		cmd, err := commands.NewAcceptOrderCommand(a.ID(), o.ID())
		require.NoError(t, err)

		m := newDispatchMocks()
		m.uow.On("Begin", ctx).Return(nil).Times(commands.DefaultAttempts)
		m.uow.On("Rollback", ctx).Return(nil).Times(commands.DefaultAttempts)
		for range commands.DefaultAttempts {
			m.orderRepo.On("Get", ctx, o.ID()).Return(freshOrder(), nil).Once()
			m.agentRepo.On("Get", ctx, a.ID()).Return(freshAgent(), nil).Once()
		}
		m.agentRepo.On("Update", ctx, mock.AnythingOfType("*agent.Agent")).
			Return(errs.NewConcurrencyConflictError("agent", a.ID())).Times(commands.DefaultAttempts)

		err = commands.NewAcceptOrderCommandHandler(m.factory, commands.DefaultAttempts).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrAgentUnavailable)
		require.NotErrorIs(t, err, errs.ErrConcurrencyConflict)
		m.orderRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
		m.agentRepo.AssertExpectations(t)
		m.uow.AssertExpectations(t)
	})

	t.Run("should refuse an order another agent already took", func(t *testing.T) {
		first := onlineAgent(t, "first", cbdPairs)
		o := assignedTo(t, first)
		second := onlineAgent(t, "second", cbdPairs)
		cmd, err := commands.NewAcceptOrderCommand(second.ID(), o.ID())
		require.NoError(t, err)

		m := newDispatchMocks()
		m.uow.On("Begin", ctx).Return(nil).Once()
		m.orderRepo.On("Get", ctx, o.ID()).Return(o, nil).Once()
		m.agentRepo.On("Get", ctx, second.ID()).Return(second, nil).Once()
		m.uow.On("Rollback", ctx).Return(nil).Once()

		err = commands.NewAcceptOrderCommandHandler(m.factory, commands.DefaultAttempts).Handle(ctx, cmd)

		require.ErrorIs(t, err, errs.ErrInvalidTransition)
		assert.True(t, second.IsAvailable(), "the claim is undone")
		assert.Nil(t, second.CurrentOrder())
	})
}

func TestDispatchReadyOrdersCommandHandler_Handle(t *testing.T) {
	ctx := t.Context()
	covered := readyOrder(t)
	waiting := readyOrder(t)
	a := onlineAgent(t, "solo", cbdPairs)
	freshAgent := agentSnapshot(t, a)
	claimed := freshAgent()
	cmd, err := commands.NewDispatchReadyOrdersCommand(10)
	require.NoError(t, err)

	m := newDispatchMocks()
	m.orderRepo.On("ListReady", ctx, 10).Return([]*order.Order{covered, waiting}, nil).Once()

	// first order: ranked and claimed
	m.orderRepo.On("Get", ctx, covered.ID()).Return(covered, nil).Twice()
	m.agentRepo.On("ListOnline", ctx).Return([]*agent.Agent{freshAgent()}, nil).Once()
	m.uow.On("Begin", ctx).Return(nil).Once()
	m.agentRepo.On("Get", ctx, a.ID()).Return(claimed, nil).Once()
	m.agentRepo.On("Update", ctx, claimed).Return(nil).Once()
	m.orderRepo.On("Update", ctx, covered).Return(nil).Once()
	m.uow.On("Commit", ctx).Return(nil).Once()
	m.uow.On("Rollback", ctx).Return(nil).Once()

	// second order: the only agent is busy now
	m.orderRepo.On("Get", ctx, waiting.ID()).Return(waiting, nil).Once()
	m.agentRepo.On("ListOnline", ctx).Return([]*agent.Agent{claimed}, nil).Once()

	report, err := commands.NewDispatchReadyOrdersCommandHandler(m.factory, commands.DefaultAttempts).Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, commands.DispatchReport{Assigned: 1, Waiting: 1}, report)
	assert.Equal(t, order.Assigned, covered.Status())
	assert.Equal(t, order.Ready, waiting.Status())
	m.orderRepo.AssertExpectations(t)
	m.agentRepo.AssertExpectations(t)
}

func TestDispatchReadyOrdersCommandHandler_Handle_ListError(t *testing.T) {
	ctx := t.Context()
	cmd, err := commands.NewDispatchReadyOrdersCommand(5)
	require.NoError(t, err)

	m := newDispatchMocks()
	m.orderRepo.On("ListReady", ctx, 5).Return(nil, errors.New("database error")).Once()

	_, err = commands.NewDispatchReadyOrdersCommandHandler(m.factory, commands.DefaultAttempts).Handle(ctx, cmd)

	require.EqualError(t, err, "database error")
}
