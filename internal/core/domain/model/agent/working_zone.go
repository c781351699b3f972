package agent

import (
	"errors"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrWorkingZoneIsNotConstructed indicates that the WorkingZone was not
	// initialized through NewWorkingZone.
	ErrWorkingZoneIsNotConstructed = errors.New("WorkingZone must be created via NewWorkingZone constructor")

	ErrZoneNameIsRequired = errs.NewValueIsRequiredError("zone name")
)

// WorkingZone is a simple polygon in which an agent accepts deliveries.
// Zones belong to exactly one agent and keep their insertion order.
//
// Example usage:
//
//	ring, _ := kernel.RingFromPairs([][]float64{
//	    {36.70, -1.40}, {36.90, -1.40}, {36.90, -1.20}, {36.70, -1.20},
//	})
//	zone, err := agent.NewWorkingZone(kernel.NewUUID(), "Nairobi CBD", ring)
//	if err != nil {
//	    return err
//	}
//	zone.Contains(point)
type WorkingZone struct {
	id    kernel.UUID
	name  string
	ring  kernel.Ring
	guard guard.ConstructorGuard
}

// NewWorkingZone creates a zone from a validated ring.
func NewWorkingZone(id kernel.UUID, name string, ring kernel.Ring) (*WorkingZone, error) {
	zone := &WorkingZone{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(zone.setID(id), zone.setName(name), zone.setRing(ring)); err != nil {
		return nil, err
	}

	return zone, nil
}

func (z *WorkingZone) IsEqual(other *WorkingZone) bool {
	return other != nil && z.id.IsEqual(other.id)
}

func (z *WorkingZone) ID() kernel.UUID {
	return z.id
}

func (z *WorkingZone) Name() string {
	return z.name
}

func (z *WorkingZone) Ring() kernel.Ring {
	return z.ring
}

// Contains reports whether p lies inside the zone or on its boundary.
func (z *WorkingZone) Contains(p kernel.Point) bool {
	if z.Validate() != nil {
		return false
	}
	return z.ring.Contains(p)
}

func (z *WorkingZone) Validate() error {
	if z == nil {
		return ErrWorkingZoneIsNotConstructed
	}
	return z.guard.Validate(ErrWorkingZoneIsNotConstructed)
}

func (z *WorkingZone) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	z.id = id
	return nil
}

func (z *WorkingZone) setName(name string) error {
	if name == "" {
		return ErrZoneNameIsRequired
	}

	z.name = name
	return nil
}

func (z *WorkingZone) setRing(ring kernel.Ring) error {
	if err := ring.Validate(); err != nil {
		return err
	}

	z.ring = ring
	return nil
}
