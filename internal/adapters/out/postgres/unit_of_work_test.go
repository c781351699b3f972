package postgres_test

import (
	"context"
	"testing"
	"time"

	postgres_adapter "dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/notify"
	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, postgres_adapter.Migrate(db))
	return db
}

func TestUnitOfWork_PublishesAfterCommit(t *testing.T) {
	ctx := context.Background()
	recorder := notify.NewRecorder()
	factory := postgres_adapter.NewGormUnitOfWorkFactory(openSQLite(t), recorder)

	a := createTestAgent("Wanjiru")
	o := createReadyOrder()
	setup := factory.Create()
	require.NoError(t, setup.AgentRepository().Add(ctx, a))
	require.NoError(t, setup.OrderRepository().Add(ctx, o))
	o.ClearDomainEvents()

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, services.NewOrderDispatcher().Assign(o, a, order.ActorSystem, now))
	require.NoError(t, uow.AgentRepository().Update(ctx, a))
	require.NoError(t, uow.OrderRepository().Update(ctx, o))

	assert.Empty(t, recorder.StatusChanges(), "nothing is published before commit")

	require.NoError(t, uow.Commit(ctx))

	assert.Equal(t, []order.Status{order.Assigned}, recorder.Statuses(o.ID()))
	require.Len(t, recorder.Assignments(), 1)
	assignment := recorder.Assignments()[0]
	assert.Equal(t, o.ID(), assignment.OrderID)
	assert.Equal(t, a.ID(), assignment.Agent.ID)
	assert.Equal(t, "Wanjiru", assignment.Agent.Name)
	assert.Equal(t, agent.VehicleMotorcycle, assignment.Agent.Vehicle)
	assert.Empty(t, o.DomainEvents())
}

func TestUnitOfWork_RollbackPublishesNothing(t *testing.T) {
	ctx := context.Background()
	recorder := notify.NewRecorder()
	factory := postgres_adapter.NewGormUnitOfWorkFactory(openSQLite(t), recorder)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	o := createTestOrder()
	require.NoError(t, uow.OrderRepository().Add(ctx, o))
	require.NoError(t, uow.Rollback(ctx))

	assert.Empty(t, recorder.StatusChanges())

	_, err := factory.Create().OrderRepository().Get(ctx, o.ID())
	require.Error(t, err)
}

func TestUnitOfWork_PublishesEachAggregateOnce(t *testing.T) {
	ctx := context.Background()
	recorder := notify.NewRecorder()
	factory := postgres_adapter.NewGormUnitOfWorkFactory(openSQLite(t), recorder)

	o := createTestOrder()
	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, o))
	require.NoError(t, o.Confirm(order.ActorVendor, now))
	require.NoError(t, uow.OrderRepository().Update(ctx, o))
	require.NoError(t, o.MarkReady(order.ActorVendor, now))
	require.NoError(t, uow.OrderRepository().Update(ctx, o))
	require.NoError(t, uow.Commit(ctx))

	assert.Equal(t, []order.Status{order.Pending, order.Confirmed, order.Ready}, recorder.Statuses(o.ID()))
}

func TestUnitOfWork_PublishesLocationOfCarriedOrder(t *testing.T) {
	ctx := context.Background()
	recorder := notify.NewRecorder()
	factory := postgres_adapter.NewGormUnitOfWorkFactory(openSQLite(t), recorder)

	a := createTestAgent("Otieno")
	orderID := kernel.NewUUID()
	require.NoError(t, a.Claim(orderID))
	require.NoError(t, factory.Create().AgentRepository().Add(ctx, a))

	point, err := kernel.NewPoint(36.81, -1.29)
	require.NoError(t, err)
	applied, err := a.UpdateLocation(point, 4, now.Add(time.Minute))
	require.NoError(t, err)
	require.True(t, applied)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.AgentRepository().Update(ctx, a))
	require.NoError(t, uow.Commit(ctx))

	updates := recorder.LocationUpdates()
	require.Len(t, updates, 1)
	assert.Equal(t, orderID, updates[0].OrderID)
	assert.True(t, point.IsEqual(updates[0].Point))
}

func TestUnitOfWork_WithoutSink(t *testing.T) {
	ctx := context.Background()
	factory := postgres_adapter.NewGormUnitOfWorkFactory(openSQLite(t), nil)

	o := createTestOrder()
	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.OrderRepository().Add(ctx, o))
	require.NoError(t, uow.Commit(ctx))

	assert.Empty(t, o.DomainEvents())
}
