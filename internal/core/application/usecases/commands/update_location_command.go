package commands

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var ErrUpdateLocationCommandIsNotConstructed = errors.New("UpdateLocationCommand must be created via NewUpdateLocationCommand constructor")

// UpdateLocationCommand is a GPS ping from the agent app.
type UpdateLocationCommand struct {
	agentID   kernel.UUID
	point     kernel.Point
	accuracyM float64
	at        time.Time

	guard guard.ConstructorGuard
}

func NewUpdateLocationCommand(agentID kernel.UUID, lng, lat, accuracyM float64, at time.Time) (UpdateLocationCommand, error) {
	c := UpdateLocationCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		c.setAgentID(agentID),
		c.setPoint(lng, lat),
		c.setAccuracy(accuracyM),
		c.setAt(at),
	); err != nil {
		return UpdateLocationCommand{}, err
	}

	return c, nil
}

func (c UpdateLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateLocationCommandIsNotConstructed)
}

func (c UpdateLocationCommand) AgentID() kernel.UUID {
	return c.agentID
}

func (c UpdateLocationCommand) Point() kernel.Point {
	return c.point
}

func (c UpdateLocationCommand) AccuracyM() float64 {
	return c.accuracyM
}

func (c UpdateLocationCommand) At() time.Time {
	return c.at
}

func (c *UpdateLocationCommand) setAgentID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsInvalidErrorWithCause("agentID", err)
	}
	c.agentID = id
	return nil
}

func (c *UpdateLocationCommand) setPoint(lng, lat float64) error {
	p, err := kernel.NewPoint(lng, lat)
	if err != nil {
		return err
	}
	c.point = p
	return nil
}

func (c *UpdateLocationCommand) setAccuracy(accuracyM float64) error {
	if accuracyM < 0 {
		return errs.NewValueIsOutOfRangeError("accuracy", accuracyM, 0, "+Inf")
	}
	c.accuracyM = accuracyM
	return nil
}

func (c *UpdateLocationCommand) setAt(at time.Time) error {
	if at.IsZero() {
		return errs.NewValueIsRequiredError("timestamp")
	}
	c.at = at.UTC()
	return nil
}
