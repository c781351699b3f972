package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// DispatchOrderCommandHandler matches a ready order to the best available agent.
//
// Candidates are read and ranked outside any transaction. Each candidate is
// then claimed in its own unit of work; a candidate that became busy, went
// offline or lost a race is skipped. When every candidate is gone the order
// simply stays ready.
//
// Example:
//
//	handler := NewDispatchOrderCommandHandler(uowFactory, DefaultAttempts)
//	cmd, _ := NewDispatchOrderCommand(orderID, nil)
//	agentID, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, services.ErrNoAgentAvailable):
//	    // waiting, the dispatch job retries
//	case errors.Is(err, errs.ErrZoneMismatch):
//	    // nobody delivers there
//	case err != nil:
//	    return err
//	default:
//	    log.Printf("order %s assigned to %s", orderID, agentID)
//	}
type DispatchOrderCommandHandler struct {
	uowFactory UoWFactory
	dispatcher services.OrderDispatcher
	assigner   orderAssigner
}

func NewDispatchOrderCommandHandler(uowFactory UoWFactory, attempts int) DispatchOrderCommandHandler {
	dispatcher := services.NewOrderDispatcher()
	return DispatchOrderCommandHandler{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		assigner: orderAssigner{
			uowFactory: uowFactory,
			dispatcher: dispatcher,
			attempts:   attempts,
		},
	}
}

// Handle returns the id of the agent the order was assigned to.
//
// It fails with a ZoneMismatchError when no online agent covers the delivery
// point and with services.ErrNoAgentAvailable when covering agents exist but
// none could be claimed. A forced assignment reports AgentUnavailable instead.
func (h DispatchOrderCommandHandler) Handle(ctx context.Context, cmd DispatchOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}

	if forced := cmd.ForceAgentID(); forced != nil {
		if err := h.assigner.assign(ctx, cmd.OrderID(), *forced, order.ActorAdmin, false); err != nil {
			return kernel.UUID{}, err
		}
		return *forced, nil
	}

	reader := h.uowFactory.Create()
	o, err := reader.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return kernel.UUID{}, err
	}
	agents, err := reader.AgentRepository().ListOnline(ctx)
	if err != nil {
		return kernel.UUID{}, err
	}

	candidates, err := h.dispatcher.Rank(o, agents)
	if err != nil {
		return kernel.UUID{}, err
	}

	for _, candidate := range candidates {
		err = h.assigner.assign(ctx, o.ID(), candidate.ID(), order.ActorSystem, true)
		switch {
		case err == nil:
			return candidate.ID(), nil
		case errors.Is(err, errs.ErrAgentUnavailable), errors.Is(err, errs.ErrZoneMismatch):
			continue
		default:
			return kernel.UUID{}, err
		}
	}

	return kernel.UUID{}, services.ErrNoAgentAvailable
}
