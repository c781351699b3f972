package commands

import (
	"context"

	"dispatch/internal/core/domain/model/agent"
)

// SetAgentAccountStatusCommandHandler activates or deactivates agent accounts.
// Deactivating an agent that carries an order is refused.
type SetAgentAccountStatusCommandHandler struct {
	uowFactory AgentUoWFactory
	attempts   int
}

func NewSetAgentAccountStatusCommandHandler(uowFactory AgentUoWFactory, attempts int) SetAgentAccountStatusCommandHandler {
	return SetAgentAccountStatusCommandHandler{
		uowFactory: uowFactory,
		attempts:   attempts,
	}
}

func (h SetAgentAccountStatusCommandHandler) Handle(ctx context.Context, cmd SetAgentAccountStatusCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	return retryOnConflict(ctx, h.attempts, func() error {
		return h.apply(ctx, cmd)
	})
}

func (h SetAgentAccountStatusCommandHandler) apply(ctx context.Context, cmd SetAgentAccountStatusCommand) error {
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

	if cmd.Status() == agent.AccountActive {
		err = a.Activate()
	} else {
		err = a.Deactivate()
	}
	if err != nil {
		return err
	}

	if err = agentRepo.Update(ctx, a); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
