package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrSetAgentAccountStatusCommandIsNotConstructed = errors.New("SetAgentAccountStatusCommand must be created via NewSetAgentAccountStatusCommand constructor")

// SetAgentAccountStatusCommand is the admin decision on an agent account:
// active approves or re-enables it, deactivated takes it out of dispatch.
type SetAgentAccountStatusCommand struct {
	agentID kernel.UUID
	status  agent.AccountStatus

	guard guard.ConstructorGuard
}

func NewSetAgentAccountStatusCommand(agentID kernel.UUID, status agent.AccountStatus) (SetAgentAccountStatusCommand, error) {
	c := SetAgentAccountStatusCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		c.setAgentID(agentID),
		c.setStatus(status),
	); err != nil {
		return SetAgentAccountStatusCommand{}, err
	}

	return c, nil
}

func (c SetAgentAccountStatusCommand) Validate() error {
	return c.guard.Validate(ErrSetAgentAccountStatusCommandIsNotConstructed)
}

func (c SetAgentAccountStatusCommand) AgentID() kernel.UUID {
	return c.agentID
}

func (c SetAgentAccountStatusCommand) Status() agent.AccountStatus {
	return c.status
}

func (c *SetAgentAccountStatusCommand) setAgentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("agentID", err)
	}
	c.agentID = id
	return nil
}

func (c *SetAgentAccountStatusCommand) setStatus(status agent.AccountStatus) error {
	if status != agent.AccountActive && status != agent.AccountDeactivated {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("an account can only be set to %s or %s", agent.AccountActive, agent.AccountDeactivated))
	}
	c.status = status
	return nil
}
