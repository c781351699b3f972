package services

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// ErrAgentMismatch is returned when the agent passed in is not the order's delivery person.
var ErrAgentMismatch = errors.New("agent is not the delivery person of the order")

// DeliveryLifecycle applies the order transitions that also change the
// carrying agent, so that both aggregates move together.
type DeliveryLifecycle struct {
	payout kernel.BasisPoints
}

// NewDeliveryLifecycle creates the service with the share of the delivery fee
// credited to the agent on delivery, in basis points (8000 = 80%).
func NewDeliveryLifecycle(payout kernel.BasisPoints) (DeliveryLifecycle, error) {
	if payout < 0 || payout > kernel.FullBasisPoints {
		return DeliveryLifecycle{}, errs.NewValueIsOutOfRangeError("payout", payout, 0, kernel.FullBasisPoints)
	}
	return DeliveryLifecycle{payout: payout}, nil
}

// Payout is the amount credited to the agent for o.
func (l DeliveryLifecycle) Payout(o *order.Order) kernel.Money {
	return o.Pricing().DeliveryFee.Share(l.payout)
}

// Deliver completes o, releases a and credits the payout. It returns the credited amount.
func (l DeliveryLifecycle) Deliver(o *order.Order, a *agent.Agent, proof string, actor order.Actor, now time.Time) (kernel.Money, error) {
	if err := l.checkCarrier(o, a); err != nil {
		return 0, err
	}

	if err := o.Deliver(proof, actor, now); err != nil {
		return 0, err
	}

	payout := l.Payout(o)
	if err := a.CompleteDelivery(o.ID(), payout); err != nil {
		return 0, err
	}
	return payout, nil
}

// Cancel cancels o and, if it was being carried, releases the agent. a may be
// nil when the order has no delivery person yet.
func (l DeliveryLifecycle) Cancel(o *order.Order, a *agent.Agent, reason string, actor order.Actor, now time.Time) error {
	if o.Status().IsActiveDelivery() {
		if err := l.checkCarrier(o, a); err != nil {
			return err
		}
	}

	release, err := o.Cancel(reason, actor, now)
	if err != nil {
		return err
	}
	if release == nil {
		return nil
	}
	return a.Release(o.ID())
}

func (l DeliveryLifecycle) checkCarrier(o *order.Order, a *agent.Agent) error {
	if err := errors.Join(o.Validate(), a.Validate()); err != nil {
		return err
	}
	if o.DeliveryPerson() == nil || !o.DeliveryPerson().IsEqual(a.ID()) {
		return fmt.Errorf("%w: order %s, agent %s", ErrAgentMismatch, o.ID(), a.ID())
	}
	return nil
}
