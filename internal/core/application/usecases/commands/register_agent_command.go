package commands

import (
	"errors"
	"strings"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrRegisterAgentCommandIsNotConstructed = errors.New("RegisterAgentCommand must be created via NewRegisterAgentCommand constructor")

// RegisterAgentCommand signs up a delivery agent. The account starts pending
// and is not dispatchable until an admin activates it.
type RegisterAgentCommand struct {
	agentID kernel.UUID
	name    string
	phone   string
	vehicle agent.Vehicle

	guard guard.ConstructorGuard
}

func NewRegisterAgentCommand(agentID kernel.UUID, name, phone string, vehicle agent.Vehicle) (RegisterAgentCommand, error) {
	c := RegisterAgentCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		c.setAgentID(agentID),
		c.setName(name),
		c.setPhone(phone),
		c.setVehicle(vehicle),
	); err != nil {
		return RegisterAgentCommand{}, err
	}

	return c, nil
}

func (c RegisterAgentCommand) Validate() error {
	return c.guard.Validate(ErrRegisterAgentCommandIsNotConstructed)
}

func (c RegisterAgentCommand) AgentID() kernel.UUID {
	return c.agentID
}

func (c RegisterAgentCommand) Name() string {
	return c.name
}

func (c RegisterAgentCommand) Phone() string {
	return c.phone
}

func (c RegisterAgentCommand) Vehicle() agent.Vehicle {
	return c.vehicle
}

func (c *RegisterAgentCommand) setAgentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("agentID", err)
	}
	c.agentID = id
	return nil
}

func (c *RegisterAgentCommand) setName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("name")
	}
	c.name = name
	return nil
}

func (c *RegisterAgentCommand) setPhone(phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return errs.NewValueIsRequiredError("phone")
	}
	c.phone = phone
	return nil
}

func (c *RegisterAgentCommand) setVehicle(vehicle agent.Vehicle) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}
	c.vehicle = vehicle
	return nil
}
