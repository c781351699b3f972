package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
)

// AdvanceOrderCommandHandler applies the order transitions that involve no
// agent bookkeeping: confirm, start preparing, mark ready, pick up, start
// transit and refund.
//
// Marking an order ready does not dispatch it. Callers that want an immediate
// match run DispatchOrderCommandHandler after a successful Handle.
type AdvanceOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	attempts   int
}

func NewAdvanceOrderCommandHandler(uowFactory OrderUoWFactory, attempts int) AdvanceOrderCommandHandler {
	return AdvanceOrderCommandHandler{
		uowFactory: uowFactory,
		attempts:   attempts,
	}
}

func (h AdvanceOrderCommandHandler) Handle(ctx context.Context, cmd AdvanceOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return retryOnConflict(ctx, h.attempts, func() error {
		uow := h.uowFactory.Create()
		if err := uow.Begin(ctx); err != nil {
			return err
		}

		defer func() {
			_ = uow.Rollback(ctx)
		}()

		orderRepo := uow.OrderRepository()
		o, err := orderRepo.Get(ctx, cmd.OrderID())
		if err != nil {
			return err
		}

		if err = h.advance(o, cmd, time.Now()); err != nil {
			return err
		}

		if err = orderRepo.Update(ctx, o); err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
}

func (h AdvanceOrderCommandHandler) advance(o *order.Order, cmd AdvanceOrderCommand, now time.Time) error {
	if agentID := cmd.AgentID(); agentID != nil {
		if carrier := o.DeliveryPerson(); carrier == nil || !carrier.IsEqual(*agentID) {
			return fmt.Errorf("%w: order %s, agent %s", services.ErrAgentMismatch, o.ID(), agentID)
		}
	}

	switch cmd.Target() {
	case order.Confirmed:
		return o.Confirm(cmd.Actor(), now)
	case order.Preparing:
		return o.StartPreparing(cmd.Actor(), now)
	case order.Ready:
		return o.MarkReady(cmd.Actor(), now)
	case order.PickedUp:
		return o.PickUp(cmd.Actor(), now)
	case order.InTransit:
		return o.StartTransit(cmd.Actor(), now)
	default:
		return o.Refund(cmd.Note(), cmd.Actor(), now)
	}
}
