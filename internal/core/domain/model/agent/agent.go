package agent

import (
	"errors"
	"fmt"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// Domain errors for agent operations.
var (
	ErrNameIsRequired  = errs.NewValueIsRequiredError("name")
	ErrPhoneIsRequired = errs.NewValueIsRequiredError("phone")
	// ErrAgentIsNotConstructed is returned when using an improperly initialized Agent.
	ErrAgentIsNotConstructed = errors.New("Agent must be created via NewAgent constructor")
	// ErrOrderIsNotCarried is returned by Release and CompleteDelivery when the
	// agent is not bound to the given order.
	ErrOrderIsNotCarried = errors.New("order is not carried by this agent")
)

// AccountStatus is the administrative state of an agent account.
type AccountStatus string

const (
	AccountPending     AccountStatus = "pending"
	AccountActive      AccountStatus = "active"
	AccountDeactivated AccountStatus = "deactivated"
)

func (s AccountStatus) Validate() error {
	switch s {
	case AccountPending, AccountActive, AccountDeactivated:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("account status", fmt.Errorf("%q is not a known status", string(s)))
	}
}

// Vehicle is the means of transport reported to customers on assignment.
type Vehicle string

const (
	VehicleFoot       Vehicle = "foot"
	VehicleBicycle    Vehicle = "bicycle"
	VehicleMotorcycle Vehicle = "motorcycle"
	VehicleCar        Vehicle = "car"
)

func (v Vehicle) Validate() error {
	switch v {
	case VehicleFoot, VehicleBicycle, VehicleMotorcycle, VehicleCar:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("vehicle", fmt.Errorf("%q is not a known vehicle", string(v)))
	}
}

// Location is the latest position reported by the agent's device.
type Location struct {
	Point     kernel.Point
	AccuracyM float64
	At        time.Time
}

// LocationReported is raised when an agent carrying an order reports a newer position.
type LocationReported struct {
	AgentID kernel.UUID
	OrderID kernel.UUID
	Point   kernel.Point
	At      time.Time
}

// Agent is the aggregate root of a delivery person.
//
// Business rules:
//   - an agent carries at most one order and is never available while carrying it
//   - Claim is the only way to bind an order, Release and CompleteDelivery the only ways to unbind it
//   - location updates are last-write-wins by timestamp
//   - agents are never deleted, only deactivated
//
// Example usage:
//
//	a, err := agent.NewAgent(kernel.NewUUID(), "Wanjiru", "+254700000001", agent.VehicleMotorcycle, time.Now())
//	if err != nil {
//	    return err
//	}
//	_ = a.Activate()
type Agent struct {
	id            kernel.UUID
	name          string
	phone         string
	vehicle       Vehicle
	accountStatus AccountStatus

	isOnline     bool
	isAvailable  bool
	currentOrder *kernel.UUID

	workingZones []*WorkingZone
	location     *Location
	lastSeen     time.Time

	completedDeliveries int
	earnings            kernel.Money
	registeredAt        time.Time

	version int
	events  []LocationReported
	guard   guard.ConstructorGuard
}

// NewAgent registers an agent: pending account, offline, available, no zones.
func NewAgent(id kernel.UUID, name, phone string, vehicle Vehicle, now time.Time) (*Agent, error) {
	a := &Agent{
		accountStatus: AccountPending,
		isAvailable:   true,
		registeredAt:  now.UTC(),
		lastSeen:      now.UTC(),
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setName(name),
		a.setPhone(phone),
		a.setVehicle(vehicle),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// State is the persisted form of an agent, used by RestoreAgent.
type State struct {
	ID                  kernel.UUID
	Name                string
	Phone               string
	Vehicle             Vehicle
	AccountStatus       AccountStatus
	IsOnline            bool
	IsAvailable         bool
	CurrentOrder        *kernel.UUID
	WorkingZones        []*WorkingZone
	Location            *Location
	LastSeen            time.Time
	CompletedDeliveries int
	Earnings            kernel.Money
	RegisteredAt        time.Time
	Version             int
}

// RestoreAgent rebuilds an agent from storage and re-checks the
// availability/current order symmetry.
func RestoreAgent(s State) (*Agent, error) {
	a := &Agent{
		isOnline:            s.IsOnline,
		isAvailable:         s.IsAvailable,
		lastSeen:            s.LastSeen,
		completedDeliveries: s.CompletedDeliveries,
		registeredAt:        s.RegisteredAt,
		version:             s.Version,
		guard:               guard.NewConstructorGuard(),
	}

	var symmetryErr error
	if s.IsAvailable && s.CurrentOrder != nil {
		symmetryErr = errs.NewValueIsInvalidErrorWithCause("availability",
			fmt.Errorf("agent is available while carrying order %s", s.CurrentOrder))
	}

	if err := errors.Join(
		a.setID(s.ID),
		a.setName(s.Name),
		a.setPhone(s.Phone),
		a.setVehicle(s.Vehicle),
		a.setAccountStatus(s.AccountStatus),
		a.setCurrentOrder(s.CurrentOrder),
		a.setWorkingZones(s.WorkingZones),
		a.setLocation(s.Location),
		a.setEarnings(s.Earnings),
		symmetryErr,
	); err != nil {
		return nil, err
	}

	return a, nil
}

func (a *Agent) IsEqual(other *Agent) bool {
	if other == nil {
		return false
	}
	return a.id.IsEqual(other.id)
}

// Validate checks that the Agent was created through NewAgent or RestoreAgent.
func (a *Agent) Validate() error {
	if a == nil {
		return ErrAgentIsNotConstructed
	}
	return a.guard.Validate(ErrAgentIsNotConstructed)
}

func (a *Agent) ID() kernel.UUID {
	return a.id
}

func (a *Agent) Name() string {
	return a.name
}

func (a *Agent) Phone() string {
	return a.phone
}

func (a *Agent) Vehicle() Vehicle {
	return a.vehicle
}

func (a *Agent) AccountStatus() AccountStatus {
	return a.accountStatus
}

func (a *Agent) IsOnline() bool {
	return a.isOnline
}

func (a *Agent) IsAvailable() bool {
	return a.isAvailable
}

// CurrentOrder returns the order the agent carries, nil when idle.
func (a *Agent) CurrentOrder() *kernel.UUID {
	return a.currentOrder
}

// WorkingZones returns the zones in insertion order.
func (a *Agent) WorkingZones() []*WorkingZone {
	out := make([]*WorkingZone, len(a.workingZones))
	copy(out, a.workingZones)
	return out
}

// Location returns the latest accepted position, nil before the first report.
func (a *Agent) Location() *Location {
	return a.location
}

func (a *Agent) LastSeen() time.Time {
	return a.lastSeen
}

func (a *Agent) CompletedDeliveries() int {
	return a.completedDeliveries
}

func (a *Agent) Earnings() kernel.Money {
	return a.earnings
}

func (a *Agent) RegisteredAt() time.Time {
	return a.registeredAt
}

func (a *Agent) Version() int {
	return a.version
}

// BumpVersion is called by repositories after a successful optimistic write.
func (a *Agent) BumpVersion() {
	a.version++
}

func (a *Agent) DomainEvents() []LocationReported {
	out := make([]LocationReported, len(a.events))
	copy(out, a.events)
	return out
}

func (a *Agent) ClearDomainEvents() {
	a.events = nil
}

// Activate approves a pending account or re-enables a deactivated one.
func (a *Agent) Activate() error {
	if err := a.Validate(); err != nil {
		return err
	}
	a.accountStatus = AccountActive
	return nil
}

// Deactivate takes the agent out of dispatch for good. An agent carrying an
// order has to finish or be released first.
func (a *Agent) Deactivate() error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.currentOrder != nil {
		return errs.NewValueIsInvalidErrorWithCause("account status",
			fmt.Errorf("agent carries order %s", a.currentOrder))
	}

	a.accountStatus = AccountDeactivated
	a.isOnline = false
	return nil
}

// AddWorkingZone appends a new zone built from ring.
func (a *Agent) AddWorkingZone(name string, ring kernel.Ring) (*WorkingZone, error) {
	if err := a.Validate(); err != nil {
		return nil, err
	}

	zone, err := NewWorkingZone(kernel.NewUUID(), name, ring)
	if err != nil {
		return nil, err
	}

	a.workingZones = append(a.workingZones, zone)
	return zone, nil
}

// SetAvailability updates the flags that are not nil and touches lastSeen.
// isAvailable=true is refused while an order is carried; only Release frees the agent.
func (a *Agent) SetAvailability(isOnline, isAvailable *bool, now time.Time) error {
	if err := a.Validate(); err != nil {
		return err
	}

	if isAvailable != nil && *isAvailable && a.currentOrder != nil {
		return errs.NewValueIsInvalidErrorWithCause("isAvailable",
			fmt.Errorf("agent carries order %s", a.currentOrder))
	}
	// an agent carrying an order is already unavailable
	if isAvailable != nil && a.currentOrder == nil {
		a.isAvailable = *isAvailable
	}

	if isOnline != nil {
		a.isOnline = *isOnline
	}

	a.touch(now)
	return nil
}

// UpdateLocation applies a position report. Reports not newer than the current
// one are ignored, which makes duplicate pings no-ops. It returns whether the
// report was applied.
func (a *Agent) UpdateLocation(point kernel.Point, accuracyM float64, at time.Time) (bool, error) {
	if err := a.Validate(); err != nil {
		return false, err
	}
	if err := point.Validate(); err != nil {
		return false, err
	}
	if accuracyM < 0 {
		return false, errs.NewValueIsOutOfRangeError("accuracy", accuracyM, 0, "+Inf")
	}

	at = at.UTC()
	if a.location != nil && !at.After(a.location.At) {
		return false, nil
	}

	a.location = &Location{Point: point, AccuracyM: accuracyM, At: at}
	a.touch(at)

	if a.currentOrder != nil {
		a.events = append(a.events, LocationReported{
			AgentID: a.id,
			OrderID: *a.currentOrder,
			Point:   point,
			At:      at,
		})
	}
	return true, nil
}

// Covers reports whether any working zone contains p.
func (a *Agent) Covers(p kernel.Point) bool {
	for _, zone := range a.workingZones {
		if zone.Contains(p) {
			return true
		}
	}
	return false
}

// DistanceKmTo returns the full precision distance from the last known
// location to p. ok is false when the agent has never reported a location.
func (a *Agent) DistanceKmTo(p kernel.Point) (km float64, ok bool) {
	if a.location == nil {
		return 0, false
	}
	d, err := a.location.Point.DistanceKm(p)
	if err != nil {
		return 0, false
	}
	return d, true
}

// IsDispatchable reports whether the matcher may pick this agent.
func (a *Agent) IsDispatchable() bool {
	return a.accountStatus == AccountActive && a.isOnline && a.isAvailable && a.currentOrder == nil
}

// Claim binds orderID to the agent. It fails with AgentUnavailable unless the
// account is active and the agent is online, available and carries nothing.
func (a *Agent) Claim(orderID kernel.UUID) error {
	if err := errors.Join(a.Validate(), orderID.Validate()); err != nil {
		return err
	}

	switch {
	case a.currentOrder != nil:
		return errs.NewAgentUnavailableError(a.id, "already carrying an order")
	case !a.isAvailable:
		return errs.NewAgentUnavailableError(a.id, "not available")
	case a.accountStatus != AccountActive:
		return errs.NewAgentUnavailableError(a.id, fmt.Sprintf("account is %s", a.accountStatus))
	case !a.isOnline:
		return errs.NewAgentUnavailableError(a.id, "offline")
	}

	id := orderID
	a.currentOrder = &id
	a.isAvailable = false
	return nil
}

// Release unbinds orderID and makes the agent available again.
func (a *Agent) Release(orderID kernel.UUID) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.currentOrder == nil || !a.currentOrder.IsEqual(orderID) {
		return ErrOrderIsNotCarried
	}

	a.currentOrder = nil
	a.isAvailable = true
	return nil
}

// CompleteDelivery releases the agent after a delivered order and credits payout.
func (a *Agent) CompleteDelivery(orderID kernel.UUID, payout kernel.Money) error {
	if err := payout.Validate(); err != nil {
		return err
	}
	if err := a.Release(orderID); err != nil {
		return err
	}

	a.completedDeliveries++
	a.earnings += payout
	return nil
}

// MarkOffline is used by the presence sweep. It leaves lastSeen and any
// carried order untouched.
func (a *Agent) MarkOffline() {
	a.isOnline = false
}

func (a *Agent) touch(now time.Time) {
	if now = now.UTC(); now.After(a.lastSeen) {
		a.lastSeen = now
	}
}

func (a *Agent) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	a.id = id
	return nil
}

func (a *Agent) setName(name string) error {
	if name == "" {
		return ErrNameIsRequired
	}

	a.name = name
	return nil
}

func (a *Agent) setPhone(phone string) error {
	if phone == "" {
		return ErrPhoneIsRequired
	}

	a.phone = phone
	return nil
}

func (a *Agent) setVehicle(vehicle Vehicle) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}

	a.vehicle = vehicle
	return nil
}

func (a *Agent) setAccountStatus(status AccountStatus) error {
	if err := status.Validate(); err != nil {
		return err
	}

	a.accountStatus = status
	return nil
}

func (a *Agent) setCurrentOrder(orderID *kernel.UUID) error {
	if orderID == nil {
		return nil
	}
	if err := orderID.Validate(); err != nil {
		return err
	}

	id := *orderID
	a.currentOrder = &id
	return nil
}

func (a *Agent) setWorkingZones(zones []*WorkingZone) error {
	for _, zone := range zones {
		if err := zone.Validate(); err != nil {
			return err
		}
	}

	a.workingZones = make([]*WorkingZone, len(zones))
	copy(a.workingZones, zones)
	return nil
}

func (a *Agent) setLocation(location *Location) error {
	if location == nil {
		return nil
	}
	if err := location.Point.Validate(); err != nil {
		return err
	}

	l := *location
	a.location = &l
	return nil
}

func (a *Agent) setEarnings(earnings kernel.Money) error {
	if err := earnings.Validate(); err != nil {
		return err
	}

	a.earnings = earnings
	return nil
}
