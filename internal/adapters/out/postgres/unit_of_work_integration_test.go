package postgres_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	postgres_adapter "dispatch/internal/adapters/out/postgres"
	"dispatch/internal/adapters/out/notify"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// UnitOfWorkIntegrationTestSuite runs the Unit of Work against a real PostgreSQL database.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	container *postgres.PostgresContainer
	db        *gorm.DB
	recorder  *notify.Recorder
	factory   ports.UnitOfWorkFactory
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}

// SetupSuite starts PostgreSQL and migrates the schema.
func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	suite.Require().NoError(err)
	suite.container = container

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	suite.Require().NoError(err)

	db, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{TranslateError: true})
	suite.Require().NoError(err)
	suite.db = db

	suite.Require().NoError(postgres_adapter.Migrate(db))
}

// SetupTest truncates all tables and creates a fresh factory.
func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	err := suite.db.Exec("TRUNCATE TABLE order_status_history, order_items, orders, agent_working_zones, agents").Error
	suite.Require().NoError(err)

	suite.recorder = notify.NewRecorder()
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.db, suite.recorder)
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	if suite.container != nil {
		suite.Require().NoError(suite.container.Terminate(context.Background()))
	}
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().Error(uow.Commit(ctx), "Should error when committing without active transaction")
	suite.Require().Error(uow.Rollback(ctx), "Should error when rolling back without active transaction")
}

// TestUnitOfWork_ClaimAndAssignCommitTogether writes both sides of an
// assignment in one transaction.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ClaimAndAssignCommitTogether() {
	ctx := context.Background()
	a := createTestAgent("Wanjiru")
	o := createReadyOrder()
	suite.Require().NoError(suite.factory.Create().AgentRepository().Add(ctx, a))
	suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, o))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(services.NewOrderDispatcher().Assign(o, a, order.ActorSystem, now))
	suite.Require().NoError(uow.AgentRepository().Update(ctx, a))
	suite.Require().NoError(uow.OrderRepository().Update(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	reader := suite.factory.Create()
	storedAgent, err := reader.AgentRepository().Get(ctx, a.ID())
	suite.Require().NoError(err)
	storedOrder, err := reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.True(storedAgent.CurrentOrder().IsEqual(o.ID()))
	suite.False(storedAgent.IsAvailable())
	suite.Equal(order.Assigned, storedOrder.Status())
	suite.True(storedOrder.DeliveryPerson().IsEqual(a.ID()))
	suite.Contains(suite.recorder.Statuses(o.ID()), order.Assigned)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionRollback() {
	ctx := context.Background()
	a := createTestAgent("Otieno")
	o := createTestOrder()

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.AgentRepository().Add(ctx, a))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	reader := suite.factory.Create()
	_, err := reader.AgentRepository().Get(ctx, a.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = reader.OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	suite.Empty(suite.recorder.StatusChanges())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RepositoryIsolation() {
	ctx := context.Background()
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()
	order1 := createTestOrder()
	order2 := createTestOrder()

	suite.Require().NoError(uow1.Begin(ctx))
	suite.Require().NoError(uow2.Begin(ctx))
	suite.Require().NoError(uow1.OrderRepository().Add(ctx, order1))
	suite.Require().NoError(uow2.OrderRepository().Add(ctx, order2))

	_, err := uow1.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "UOW1 should not see order2")
	_, err = uow2.OrderRepository().Get(ctx, order1.ID())
	suite.Require().Error(err, "UOW2 should not see order1")

	suite.Require().NoError(uow1.Commit(ctx))
	suite.Require().NoError(uow2.Rollback(ctx))

	reader := suite.factory.Create()
	_, err = reader.OrderRepository().Get(ctx, order1.ID())
	suite.Require().NoError(err, "Order1 should persist after commit")
	_, err = reader.OrderRepository().Get(ctx, order2.ID())
	suite.Require().Error(err, "Order2 should not persist after rollback")
}

// TestUnitOfWork_ConcurrentClaimsHaveOneWinner races several transactions
// claiming the same agent for different orders.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentClaimsHaveOneWinner() {
	ctx := context.Background()
	a := createTestAgent("Achieng")
	suite.Require().NoError(suite.factory.Create().AgentRepository().Add(ctx, a))

	const contenders = 8
	orders := make([]*order.Order, contenders)
	for i := range orders {
		orders[i] = createReadyOrder()
		suite.Require().NoError(suite.factory.Create().OrderRepository().Add(ctx, orders[i]))
	}

	var wg sync.WaitGroup
	results := make([]error, contenders)
	for i := range orders {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = suite.claim(ctx, a.ID(), orders[i])
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range results {
		switch {
		case err == nil:
			winners++
		case errors.Is(err, errs.ErrConcurrencyConflict), errors.Is(err, errs.ErrAgentUnavailable):
		default:
			suite.Failf("unexpected error", "%v", err)
		}
	}
	suite.Equal(1, winners)

	stored, err := suite.factory.Create().AgentRepository().Get(ctx, a.ID())
	suite.Require().NoError(err)
	suite.Require().NotNil(stored.CurrentOrder())

	assigned := 0
	for _, o := range orders {
		storedOrder, getErr := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
		suite.Require().NoError(getErr)
		if storedOrder.Status() == order.Assigned {
			assigned++
			suite.True(stored.CurrentOrder().IsEqual(o.ID()))
		}
	}
	suite.Equal(1, assigned)
}

func (suite *UnitOfWorkIntegrationTestSuite) claim(ctx context.Context, agentID kernel.UUID, o *order.Order) error {
	uow := suite.factory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() { _ = uow.Rollback(ctx) }()

	a, err := uow.AgentRepository().Get(ctx, agentID)
	if err != nil {
		return err
	}
	fresh, err := uow.OrderRepository().Get(ctx, o.ID())
	if err != nil {
		return err
	}
	if err = services.NewOrderDispatcher().Assign(fresh, a, order.ActorSystem, now); err != nil {
		return err
	}
	if err = uow.AgentRepository().Update(ctx, a); err != nil {
		return err
	}
	if err = uow.OrderRepository().Update(ctx, fresh); err != nil {
		return err
	}
	return uow.Commit(ctx)
}
