package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAcceptOrderCommandIsNotConstructed = errors.New("AcceptOrderCommand must be created via NewAcceptOrderCommand constructor")

// AcceptOrderCommand is an agent taking a ready order it was offered.
type AcceptOrderCommand struct {
	agentID kernel.UUID
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAcceptOrderCommand(agentID, orderID kernel.UUID) (AcceptOrderCommand, error) {
	c := AcceptOrderCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		c.setAgentID(agentID),
		c.setOrderID(orderID),
	); err != nil {
		return AcceptOrderCommand{}, err
	}

	return c, nil
}

func (c AcceptOrderCommand) Validate() error {
	return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
}

func (c AcceptOrderCommand) AgentID() kernel.UUID {
	return c.agentID
}

func (c AcceptOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c *AcceptOrderCommand) setAgentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("agentID", err)
	}
	c.agentID = id
	return nil
}

func (c *AcceptOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}
	c.orderID = id
	return nil
}
