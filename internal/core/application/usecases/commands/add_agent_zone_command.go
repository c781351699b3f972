package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAddAgentZoneCommandIsNotConstructed = errors.New("AddAgentZoneCommand must be created via NewAddAgentZoneCommand constructor")

// AddAgentZoneCommand appends a working zone, given as [lng, lat] pairs, to an agent.
type AddAgentZoneCommand struct {
	agentID kernel.UUID
	name    string
	ring    kernel.Ring

	guard guard.ConstructorGuard
}

func NewAddAgentZoneCommand(agentID kernel.UUID, name string, pairs [][]float64) (AddAgentZoneCommand, error) {
	c := AddAgentZoneCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		c.setAgentID(agentID),
		c.setName(name),
		c.setRing(pairs),
	); err != nil {
		return AddAgentZoneCommand{}, err
	}

	return c, nil
}

func (c AddAgentZoneCommand) Validate() error {
	return c.guard.Validate(ErrAddAgentZoneCommandIsNotConstructed)
}

func (c AddAgentZoneCommand) AgentID() kernel.UUID {
	return c.agentID
}

func (c AddAgentZoneCommand) Name() string {
	return c.name
}

func (c AddAgentZoneCommand) Ring() kernel.Ring {
	return c.ring
}

func (c *AddAgentZoneCommand) setAgentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("agentID", err)
	}
	c.agentID = id
	return nil
}

func (c *AddAgentZoneCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("zone name")
	}
	c.name = name
	return nil
}

func (c *AddAgentZoneCommand) setRing(pairs [][]float64) error {
	ring, err := kernel.RingFromPairs(pairs)
	if err != nil {
		return err
	}
	c.ring = ring
	return nil
}
