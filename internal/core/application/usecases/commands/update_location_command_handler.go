package commands

import (
	"context"
)

// UpdateLocationCommandHandler stores location pings. Pings that are not newer
// than the stored location are acknowledged without a write, so retried or
// duplicated requests are idempotent.
//
// When the agent carries an order the repository tracks the resulting
// LocationReported event and the unit of work forwards it to customers after commit.
type UpdateLocationCommandHandler struct {
	uowFactory AgentUoWFactory
	attempts   int
}

func NewUpdateLocationCommandHandler(uowFactory AgentUoWFactory, attempts int) UpdateLocationCommandHandler {
	return UpdateLocationCommandHandler{
		uowFactory: uowFactory,
		attempts:   attempts,
	}
}

func (h UpdateLocationCommandHandler) Handle(ctx context.Context, cmd UpdateLocationCommand) error {
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

		applied, err := a.UpdateLocation(cmd.Point(), cmd.AccuracyM(), cmd.At())
		if err != nil {
			return err
		}
		if !applied {
			return nil
		}

		if err = agentRepo.Update(ctx, a); err != nil {
			return err
		}

		return uow.Commit(ctx)
	})
}
