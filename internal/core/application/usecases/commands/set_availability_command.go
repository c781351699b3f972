package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrSetAvailabilityCommandIsNotConstructed = errors.New("SetAvailabilityCommand must be created via NewSetAvailabilityCommand constructor")

// SetAvailabilityCommand carries the flags an agent toggles in the app.
// A nil flag is left unchanged; at least one must be set.
type SetAvailabilityCommand struct {
	agentID     kernel.UUID
	isOnline    *bool
	isAvailable *bool

	guard guard.ConstructorGuard
}

func NewSetAvailabilityCommand(agentID kernel.UUID, isOnline, isAvailable *bool) (SetAvailabilityCommand, error) {
	c := SetAvailabilityCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		c.setAgentID(agentID),
		c.setFlags(isOnline, isAvailable),
	); err != nil {
		return SetAvailabilityCommand{}, err
	}

	return c, nil
}

func (c SetAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrSetAvailabilityCommandIsNotConstructed)
}

func (c SetAvailabilityCommand) AgentID() kernel.UUID {
	return c.agentID
}

func (c SetAvailabilityCommand) IsOnline() *bool {
	return c.isOnline
}

func (c SetAvailabilityCommand) IsAvailable() *bool {
	return c.isAvailable
}

func (c *SetAvailabilityCommand) setAgentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("agentID", err)
	}
	c.agentID = id
	return nil
}

func (c *SetAvailabilityCommand) setFlags(isOnline, isAvailable *bool) error {
	if isOnline == nil && isAvailable == nil {
		return errs.NewValueIsRequiredError("isOnline or isAvailable")
	}
	c.isOnline = isOnline
	c.isAvailable = isAvailable
	return nil
}
