package commands

import (
	"context"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// DeliverOrderCommandHandler marks an order delivered and, in the same
// transaction, releases its agent and credits the payout.
type DeliverOrderCommandHandler struct {
	uowFactory UoWFactory
	lifecycle  services.DeliveryLifecycle
	attempts   int
}

func NewDeliverOrderCommandHandler(uowFactory UoWFactory, lifecycle services.DeliveryLifecycle, attempts int) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{
		uowFactory: uowFactory,
		lifecycle:  lifecycle,
		attempts:   attempts,
	}
}

func (h DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return retryOnConflict(ctx, h.attempts, func() error {
		return h.deliver(ctx, cmd)
	})
}

func (h DeliverOrderCommandHandler) deliver(ctx context.Context, cmd DeliverOrderCommand) error {
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

	carrierID := o.DeliveryPerson()
	if carrierID == nil {
		return errs.NewInvalidTransitionError(o.Status(), order.Delivered)
	}
	if cmd.AgentID() != nil && !cmd.AgentID().IsEqual(*carrierID) {
		return fmt.Errorf("%w: order %s, agent %s", services.ErrAgentMismatch, o.ID(), cmd.AgentID())
	}

	a, err := agentRepo.Get(ctx, *carrierID)
	if err != nil {
		return err
	}

	if _, err = h.lifecycle.Deliver(o, a, cmd.Proof(), cmd.Actor(), time.Now()); err != nil {
		return err
	}

	if err = agentRepo.Update(ctx, a); err != nil {
		return err
	}
	if err = orderRepo.Update(ctx, o); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
