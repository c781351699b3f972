// Package postgres provides the GORM-based Unit of Work that coordinates the
// agent and order repositories inside one database transaction.
//
// Every aggregate added or updated through a repository is tracked. After a
// successful Commit the domain events of the tracked aggregates are handed to
// the NotificationSink, so subscribers never observe a change that was rolled
// back. Rollback drops the tracked aggregates without publishing anything.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db, sink)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.AgentRepository().Update(ctx, a); err != nil {
//	    return err
//	}
//	if err := uow.OrderRepository().Update(ctx, o); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Concurrency Considerations:
//   - Each UnitOfWork instance provides an isolated transaction
//   - Multiple goroutines must use separate UnitOfWork instances
//   - Writes are guarded by a version column; the loser of a race gets a ConcurrencyConflictError
package postgres

import (
	"context"

	"dispatch/internal/adapters/out/postgres/agentrepo"
	"dispatch/internal/adapters/out/postgres/orderrepo"
	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"gorm.io/gorm"
)

// trackedAggregate represents an aggregate modified during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection
// pool and one notification sink.
type GormUnitOfWorkFactory struct {
	db   *gorm.DB
	sink ports.NotificationSink
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
// sink may be nil, in which case domain events are discarded on commit.
//
// Example:
//
//	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
//	if err != nil {
//	    log.Fatal("failed to connect database")
//	}
//	factory := NewGormUnitOfWorkFactory(db, notify.NewLogSink(slog.Default()))
func NewGormUnitOfWorkFactory(db *gorm.DB, sink ports.NotificationSink) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db, sink: sink}
}

// Create produces a new UnitOfWork with its own transaction state and tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		sink:              f.sink,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork coordinates a database transaction and tracks the aggregates
// changed within it.
//
// Repositories obtained before Begin run directly on the connection pool,
// which is what read-only query handlers do.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	sink              ports.NotificationSink
	trackedAggregates []trackedAggregate
}

// Begin starts a transaction. Calling it again on an open unit of work is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit makes the transaction permanent and then publishes the domain events
// of every tracked aggregate.
//
// Returns gorm.ErrInvalidTransaction if no transaction is open.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = uow.trackedAggregates[:0]
		return err
	}

	uow.publish(ctx)
	return nil
}

// Rollback discards the transaction and everything tracked in it.
//
// Returns gorm.ErrInvalidTransaction if no transaction is open, which makes
// a deferred Rollback after a successful Commit harmless.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// AgentRepository returns an agent repository bound to the open transaction,
// or to the connection pool when there is none.
func (uow *GormUnitOfWork) AgentRepository() ports.AgentRepository {
	return agentrepo.NewGormAgentRepository(uow.conn(), uow)
}

// OrderRepository returns an order repository bound to the open transaction,
// or to the connection pool when there is none.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// TrackAggregate registers an aggregate as modified within this unit of work.
// Repositories call it after every successful Add or Update.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// publish hands the events of the tracked aggregates to the sink, in tracking
// order, and clears them. An aggregate saved twice is published once.
func (uow *GormUnitOfWork) publish(ctx context.Context) {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = make([]trackedAggregate, 0)

	agents := make(map[kernel.UUID]*agent.Agent)
	for _, t := range tracked {
		if a, ok := t.Aggregate.(*agent.Agent); ok {
			agents[t.ID] = a
		}
	}

	seen := make(map[kernel.UUID]struct{}, len(tracked))
	for _, t := range tracked {
		if _, ok := seen[t.ID]; ok {
			continue
		}
		seen[t.ID] = struct{}{}

		switch aggregate := t.Aggregate.(type) {
		case *order.Order:
			if uow.sink != nil {
				for _, event := range aggregate.DomainEvents() {
					uow.sink.OrderStatusChanged(ctx, event)
					if event.Status == order.Assigned && event.AgentID != nil {
						uow.sink.AgentAssigned(ctx, event.OrderID, summarize(*event.AgentID, agents[*event.AgentID]))
					}
				}
			}
			aggregate.ClearDomainEvents()
		case *agent.Agent:
			if uow.sink != nil {
				for _, event := range aggregate.DomainEvents() {
					uow.sink.DeliveryLocationUpdate(ctx, event)
				}
			}
			aggregate.ClearDomainEvents()
		}
	}
}

func summarize(id kernel.UUID, a *agent.Agent) ports.AgentSummary {
	if a == nil {
		return ports.AgentSummary{ID: id}
	}
	return ports.AgentSummary{
		ID:      a.ID(),
		Name:    a.Name(),
		Phone:   a.Phone(),
		Vehicle: a.Vehicle(),
	}
}
