package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/services"
)

// CancelOrderCommandHandler cancels an order. If an agent is carrying it, the
// agent is released in the same transaction so the binding never dangles.
type CancelOrderCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  services.DeliveryLifecycle
	attempts   int
}

func NewCancelOrderCommandHandler(uowFactory UoWFactory, lifecycle services.DeliveryLifecycle, attempts int) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
		attempts:   attempts,
	}
}

func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return retryOnConflict(ctx, h.attempts, func() error {
		return h.cancel(ctx, cmd)
	})
}

func (h CancelOrderCommandHandler) cancel(ctx context.Context, cmd CancelOrderCommand) error {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	agentRepo := uow.AgentRepository()

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	var carrier *agent.Agent
	if o.Status().IsActiveDelivery() && o.DeliveryPerson() != nil {
		if carrier, err = agentRepo.Get(ctx, *o.DeliveryPerson()); err != nil {
			return err
		}
	}

	if err = h.lifecycle.Cancel(o, carrier, cmd.Reason(), cmd.Actor(), time.Now()); err != nil {
		return err
	}

	if carrier != nil {
		if err = agentRepo.Update(ctx, carrier); err != nil {
			return err
		}
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
