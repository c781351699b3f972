package commands

import (
	"context"
	"time"
)

// SetAvailabilityCommandHandler applies availability toggles and refreshes lastSeen.
type SetAvailabilityCommandHandler struct {
	uowFactory AgentUoWFactory
	attempts   int
}

func NewSetAvailabilityCommandHandler(uowFactory AgentUoWFactory, attempts int) SetAvailabilityCommandHandler {
	return SetAvailabilityCommandHandler{
		uowFactory: uowFactory,
		attempts:   attempts,
	}
}

// Handle fails with a ValueIsInvalidError when the agent asks to become
// available while still carrying an order.
func (h SetAvailabilityCommandHandler) Handle(ctx context.Context, cmd SetAvailabilityCommand) error {
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

		if err = a.SetAvailability(cmd.IsOnline(), cmd.IsAvailable(), time.Now()); err != nil {
			return err
		}

		if err = agentRepo.Update(ctx, a); err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
}
