package commands

import (
	"errors"
	"fmt"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrAdvanceOrderCommandIsNotConstructed = errors.New("AdvanceOrderCommand must be created via NewAdvanceOrderCommand constructor")

// advanceTargets are the statuses an order can be moved to without touching
// an agent. Assignment, delivery and cancellation have their own commands.
var advanceTargets = map[order.Status]struct{}{
	order.Confirmed: {},
	order.Preparing: {},
	order.Ready:     {},
	order.PickedUp:  {},
	order.InTransit: {},
	order.Refunded:  {},
}

// AdvanceOrderCommand moves an order one step along its state machine on
// behalf of actor. For pick-up and transit the reporting agent may be given,
// in which case it has to be the order's delivery person.
type AdvanceOrderCommand struct {
	orderID kernel.UUID
	target  order.Status
	actor   order.Actor
	note    string
	agentID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewAdvanceOrderCommand(
	orderID kernel.UUID,
	target order.Status,
	actor order.Actor,
	note string,
	agentID *kernel.UUID,
) (AdvanceOrderCommand, error) {
	c := AdvanceOrderCommand{
		note:  note,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setOrderID(orderID),
		c.setTarget(target),
		c.setActor(actor),
		c.setAgentID(agentID),
	); err != nil {
		return AdvanceOrderCommand{}, err
	}

	return c, nil
}

func (c AdvanceOrderCommand) Validate() error {
	return c.guard.Validate(ErrAdvanceOrderCommandIsNotConstructed)
}

func (c AdvanceOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func (c AdvanceOrderCommand) Target() order.Status {
	return c.target
}

func (c AdvanceOrderCommand) Actor() order.Actor {
	return c.actor
}

func (c AdvanceOrderCommand) Note() string {
	return c.note
}

func (c AdvanceOrderCommand) AgentID() *kernel.UUID {
	return c.agentID
}

func (c *AdvanceOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}
	c.orderID = id
	return nil
}

func (c *AdvanceOrderCommand) setTarget(target order.Status) error {
	if _, ok := advanceTargets[target]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s has a dedicated operation", target))
	}
	c.target = target
	return nil
}

func (c *AdvanceOrderCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}

func (c *AdvanceOrderCommand) setAgentID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("agentID", err)
	}
	c.agentID = id
	return nil
}
