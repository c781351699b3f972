package commands

import (
	"context"
)

// AddAgentZoneCommandHandler extends the area an agent accepts deliveries in.
type AddAgentZoneCommandHandler struct {
	uowFactory AgentUoWFactory
	attempts   int
}

func NewAddAgentZoneCommandHandler(uowFactory AgentUoWFactory, attempts int) AddAgentZoneCommandHandler {
	return AddAgentZoneCommandHandler{
		uowFactory: uowFactory,
		attempts:   attempts,
	}
}

func (h AddAgentZoneCommandHandler) Handle(ctx context.Context, cmd AddAgentZoneCommand) error {
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

		agentRepo := uow.AgentRepository()
		a, err := agentRepo.Get(ctx, cmd.AgentID())
		if err != nil {
			return err
		}

		if _, err = a.AddWorkingZone(cmd.Name(), cmd.Ring()); err != nil {
			return err
		}

		if err = agentRepo.Update(ctx, a); err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
}
