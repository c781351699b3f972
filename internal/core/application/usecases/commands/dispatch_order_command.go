package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrDispatchOrderCommandIsNotConstructed = errors.New("DispatchOrderCommand must be created via NewDispatchOrderCommand constructor")

// DispatchOrderCommand asks the matcher to find an agent for a ready order.
// When forceAgentID is set an admin overrides the matcher: that agent is
// claimed regardless of its working zones.
type DispatchOrderCommand struct {
	orderID      kernel.UUID
	forceAgentID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewDispatchOrderCommand(orderID kernel.UUID, forceAgentID *kernel.UUID) (DispatchOrderCommand, error) {
	c := DispatchOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		c.setOrderID(orderID),
		c.setForceAgentID(forceAgentID),
	); err != nil {
		return DispatchOrderCommand{}, err
	}

	return c, nil
}

func (c DispatchOrderCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrderCommandIsNotConstructed)
}

func (c DispatchOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c DispatchOrderCommand) ForceAgentID() *kernel.UUID {
	return c.forceAgentID
}

func (c *DispatchOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}
	c.orderID = id
	return nil
}

func (c *DispatchOrderCommand) setForceAgentID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("agentID", err)
	}
	c.forceAgentID = id
	return nil
}
