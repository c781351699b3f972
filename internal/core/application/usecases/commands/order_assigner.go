package commands

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// orderAssigner performs one claim-and-assign of a specific agent to a
// specific order. Both aggregates are re-read inside the transaction, so the
// version checks on commit make the claim linearisable: of several concurrent
// claims on one agent exactly one commits.
type orderAssigner struct {
	uowFactory UoWFactory
	dispatcher services.OrderDispatcher
	attempts   int
}

// assign binds agentID to orderID. With checkZone the delivery point has to
// lie in one of the agent's zones. A claim that keeps losing optimistic races
// is reported as AgentUnavailable.
func (s orderAssigner) assign(ctx context.Context, orderID, agentID kernel.UUID, actor order.Actor, checkZone bool) error {
	err := retryOnConflict(ctx, s.attempts, func() error {
		return s.tryAssign(ctx, orderID, agentID, actor, checkZone)
	})
	if errors.Is(err, errs.ErrConcurrencyConflict) {
		return errs.NewAgentUnavailableError(agentID, "lost the claim to a concurrent update")
	}
	return err
}

func (s orderAssigner) tryAssign(ctx context.Context, orderID, agentID kernel.UUID, actor order.Actor, checkZone bool) error {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	agentRepo := uow.AgentRepository()

	o, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return err
	}
	a, err := agentRepo.Get(ctx, agentID)
	if err != nil {
		return err
	}

	if checkZone && !a.Covers(o.Address().Point) {
		return errs.NewZoneMismatchError(o.Address().Point)
	}

	if err = s.dispatcher.Assign(o, a, actor, time.Now()); err != nil {
		return err
	}

	// the agent goes first: a lost claim fails before the order row is touched
	if err = agentRepo.Update(ctx, a); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
