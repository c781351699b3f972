package commands

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/agent"
)

// RegisterAgentCommandHandler creates pending agent accounts.
type RegisterAgentCommandHandler struct {
	uowFactory AgentUoWFactory
}

func NewRegisterAgentCommandHandler(uowFactory AgentUoWFactory) RegisterAgentCommandHandler {
	return RegisterAgentCommandHandler{
		uowFactory: uowFactory,
	}
}

func (h RegisterAgentCommandHandler) Handle(ctx context.Context, cmd RegisterAgentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	a, err := agent.NewAgent(cmd.AgentID(), cmd.Name(), cmd.Phone(), cmd.Vehicle(), time.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.AgentRepository().Add(ctx, a); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
