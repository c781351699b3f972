package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrDeliverOrderCommandIsNotConstructed = errors.New("DeliverOrderCommand must be created via NewDeliverOrderCommand constructor")

// DeliverOrderCommand completes an order in transit. proof references the
// delivery evidence (photo key, OTP, signature) and may be empty.
type DeliverOrderCommand struct {
	orderID kernel.UUID
	agentID *kernel.UUID
	proof   string
	actor   order.Actor

	guard guard.ConstructorGuard
}

func NewDeliverOrderCommand(orderID kernel.UUID, agentID *kernel.UUID, proof string, actor order.Actor) (DeliverOrderCommand, error) {
	c := DeliverOrderCommand{
		proof: proof,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		c.setOrderID(orderID),
		c.setAgentID(agentID),
		c.setActor(actor),
	); err != nil {
		return DeliverOrderCommand{}, err
	}

	return c, nil
}

func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

func (c DeliverOrderCommand) OrderID() kernel.UUID {
	return c.orderID
}

// AgentID is the agent reporting the delivery, nil when an admin closes the order.
func (c DeliverOrderCommand) AgentID() *kernel.UUID {
	return c.agentID
}

func (c DeliverOrderCommand) Proof() string {
	return c.proof
}

func (c DeliverOrderCommand) Actor() order.Actor {
	return c.actor
}

func (c *DeliverOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("orderID", err)
	}
	c.orderID = id
	return nil
}

func (c *DeliverOrderCommand) setAgentID(id *kernel.UUID) error {
	if id == nil {
		return nil
	}
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("agentID", err)
	}
	c.agentID = id
	return nil
}

func (c *DeliverOrderCommand) setActor(actor order.Actor) error {
	if err := actor.Validate(); err != nil {
		return err
	}
	c.actor = actor
	return nil
}
