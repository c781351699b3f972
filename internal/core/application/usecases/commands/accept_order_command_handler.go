package commands

import (
	"context"

	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/domain/services"
)

// AcceptOrderCommandHandler lets an agent claim a ready order directly.
// The order must lie in one of the agent's zones (ZoneMismatch otherwise),
// the agent must be free (AgentUnavailable) and the order still ready
// (InvalidTransition, for example when another agent was faster).
type AcceptOrderCommandHandler struct {
	assigner orderAssigner
}

func NewAcceptOrderCommandHandler(uowFactory UoWFactory, attempts int) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		assigner: orderAssigner{
			uowFactory: uowFactory,
			dispatcher: services.NewOrderDispatcher(),
			attempts:   attempts,
		},
	}
}

func (h AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return h.assigner.assign(ctx, cmd.OrderID(), cmd.AgentID(), order.ActorAgent, true)
}
