package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	ErrItemsAreRequired = errs.NewValueIsRequiredError("items")
)

// Order is the aggregate root of a customer order as seen by dispatch.
//
// Invariants:
//   - status only moves along the adjacency table in status.go
//   - every accepted move appends exactly one HistoryEntry; entries are never rewritten
//   - deliveryPerson is nil before Assigned and set from Assigned onwards
//   - Delivered, Cancelled and Refunded are terminal
type Order struct {
	id             kernel.UUID
	number         string
	customerID     kernel.UUID
	items          []Item
	address        Address
	pickup         *kernel.Point
	pricing        Pricing
	status         Status
	deliveryPerson *kernel.UUID
	history        []HistoryEntry
	createdAt      time.Time
	readyAt        *time.Time
	proof          string
	cancelReason   string

	// version is the optimistic concurrency token maintained by repositories.
	version int

	events []StatusChanged
	guard  guard.ConstructorGuard
}

// NewOrder creates a pending order and writes its first history entry.
//
// Example:
//
//	item, _ := order.NewItem(productID, vendorID, "Maize flour 2kg", 2, 18000)
//	address, _ := order.NewAddress(point, "Moi Avenue 12")
//	o, err := order.NewOrder(kernel.NewUUID(), customerID, []order.Item{item}, address, nil,
//	    order.Charges{DeliveryFee: 15000}, order.ActorCustomer, time.Now())
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	items []Item,
	address Address,
	pickup *kernel.Point,
	charges Charges,
	actor Actor,
	now time.Time,
) (*Order, error) {
	o := &Order{
		status:    Pending,
		createdAt: now.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	pricing, pricingErr := newPricing(items, charges)
	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setItems(items),
		o.setAddress(address),
		o.setPickup(pickup),
		pricingErr,
		actor.Validate(),
	); err != nil {
		return nil, err
	}

	o.number = NewOrderNumber(id, now)
	o.pricing = pricing
	o.appendHistory(Pending, actor, "", now)
	return o, nil
}

// State is the full persisted form of an order, used by RestoreOrder.
type State struct {
	ID             kernel.UUID
	Number         string
	CustomerID     kernel.UUID
	Items          []Item
	Address        Address
	Pickup         *kernel.Point
	Pricing        Pricing
	Status         Status
	DeliveryPerson *kernel.UUID
	History        []HistoryEntry
	CreatedAt      time.Time
	ReadyAt        *time.Time
	Proof          string
	CancelReason   string
	Version        int
}

// RestoreOrder rebuilds an order from storage and re-checks its invariants.
func RestoreOrder(s State) (*Order, error) {
	o := &Order{
		number:       s.Number,
		pricing:      s.Pricing,
		createdAt:    s.CreatedAt,
		readyAt:      s.ReadyAt,
		proof:        s.Proof,
		cancelReason: s.CancelReason,
		version:      s.Version,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setCustomerID(s.CustomerID),
		o.setItems(s.Items),
		o.setAddress(s.Address),
		o.setPickup(s.Pickup),
		o.setStatus(s.Status, s.DeliveryPerson),
		o.setHistory(s.History),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// orderNumberSuffix is the number of hex digits taken from the order id. The
// first 12 digits of a version 4 id are all random.
const orderNumberSuffix = 12

// NewOrderNumber derives the human-readable number, e.g. ORD-20261016-3F2A9C01B4E7.
func NewOrderNumber(id kernel.UUID, now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:orderNumberSuffix])
	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102"), suffix)
}

func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) Number() string { return o.number }
func (o *Order) CustomerID() kernel.UUID { return o.customerID }
func (o *Order) Address() Address { return o.address }
func (o *Order) Pricing() Pricing { return o.pricing }
func (o *Order) Status() Status { return o.status }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) ReadyAt() *time.Time { return o.readyAt }
func (o *Order) Proof() string { return o.proof }
func (o *Order) CancelReason() string { return o.cancelReason }
func (o *Order) Version() int { return o.version }
func (o *Order) DeliveryPerson() *kernel.UUID { return o.deliveryPerson }

// Items returns a copy of the order lines.
func (o *Order) Items() []Item {
	out := make([]Item, len(o.items))
	copy(out, o.items)
	return out
}

// VendorIDs returns the distinct vendors of the order lines in first-seen order.
func (o *Order) VendorIDs() []kernel.UUID {
	seen := make(map[kernel.UUID]struct{}, len(o.items))
	out := make([]kernel.UUID, 0, len(o.items))
	for _, item := range o.items {
		if _, ok := seen[item.VendorID]; ok {
			continue
		}
		seen[item.VendorID] = struct{}{}
		out = append(out, item.VendorID)
	}
	return out
}

// Pickup returns the vendor pickup point, nil when unknown.
func (o *Order) Pickup() *kernel.Point {
	return o.pickup
}

// RankingPoint is where dispatch measures agent distance from: the pickup
// point when known, the delivery point otherwise.
func (o *Order) RankingPoint() kernel.Point {
	if o.pickup != nil {
		return *o.pickup
	}
	return o.address.Point
}

// History returns a copy of the status log, oldest first.
func (o *Order) History() []HistoryEntry {
	out := make([]HistoryEntry, len(o.history))
	copy(out, o.history)
	return out
}

// DomainEvents returns the status changes raised since the last ClearDomainEvents.
func (o *Order) DomainEvents() []StatusChanged {
	out := make([]StatusChanged, len(o.events))
	copy(out, o.events)
	return out
}

func (o *Order) ClearDomainEvents() {
	o.events = nil
}

// BumpVersion is called by repositories after a successful optimistic write.
func (o *Order) BumpVersion() {
	o.version++
}

func (o *Order) Confirm(actor Actor, now time.Time) error {
	return o.transition(Confirmed, actor, "", now)
}

func (o *Order) StartPreparing(actor Actor, now time.Time) error {
	return o.transition(Preparing, actor, "", now)
}

// MarkReady makes the order visible to dispatch.
func (o *Order) MarkReady(actor Actor, now time.Time) error {
	if err := o.transition(Ready, actor, "", now); err != nil {
		return err
	}
	readyAt := now.UTC()
	o.readyAt = &readyAt
	return nil
}

// Assign binds the order to an agent. Callers must have claimed the agent
// first; see services.OrderDispatcher.Assign.
func (o *Order) Assign(agentID kernel.UUID, actor Actor, now time.Time) error {
	if err := errors.Join(o.Validate(), actor.Validate(), agentID.Validate()); err != nil {
		return err
	}
	if _, err := o.status.Transition(Assigned); err != nil {
		return err
	}

	o.deliveryPerson = &agentID
	return o.transition(Assigned, actor, "", now)
}

func (o *Order) PickUp(actor Actor, now time.Time) error {
	return o.transition(PickedUp, actor, "", now)
}

func (o *Order) StartTransit(actor Actor, now time.Time) error {
	return o.transition(InTransit, actor, "", now)
}

// Deliver completes the order and records the delivery proof (photo key, OTP, signature ref).
func (o *Order) Deliver(proof string, actor Actor, now time.Time) error {
	if err := o.transition(Delivered, actor, proof, now); err != nil {
		return err
	}
	o.proof = proof
	return nil
}

// Cancel moves any non-terminal order to Cancelled. The returned id is the
// agent that must be released in the same transaction, nil if none was bound.
func (o *Order) Cancel(reason string, actor Actor, now time.Time) (*kernel.UUID, error) {
	wasCarried := o.status.IsActiveDelivery()
	if err := o.transition(Cancelled, actor, reason, now); err != nil {
		return nil, err
	}
	o.cancelReason = reason

	if wasCarried {
		return o.deliveryPerson, nil
	}
	return nil, nil
}

// Refund records a payment reversal on a delivered or cancelled order.
func (o *Order) Refund(note string, actor Actor, now time.Time) error {
	return o.transition(Refunded, actor, note, now)
}

func (o *Order) transition(to Status, actor Actor, note string, now time.Time) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := actor.Validate(); err != nil {
		return err
	}

	next, err := o.status.Transition(to)
	if err != nil {
		return err
	}

	o.status = next
	o.appendHistory(next, actor, note, now)
	o.events = append(o.events, StatusChanged{
		OrderID: o.id,
		Status:  next,
		At:      now.UTC(),
		Actor:   actor,
		Note:    note,
		AgentID: o.deliveryPerson,
	})
	return nil
}

func (o *Order) appendHistory(status Status, actor Actor, note string, now time.Time) {
	o.history = append(o.history, HistoryEntry{
		Seq:    len(o.history) + 1,
		Status: status,
		At:     now.UTC(),
		Actor:  actor,
		Note:   note,
	})
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("customer", err)
	}
	o.customerID = id
	return nil
}

func (o *Order) setItems(items []Item) error {
	if len(items) == 0 {
		return ErrItemsAreRequired
	}
	for i, item := range items {
		lineTotal, err := item.UnitPrice.Times(item.Quantity, "lineTotal")
		if item.Quantity <= 0 || err != nil || item.LineTotal != lineTotal {
			return errs.NewValueIsInvalidErrorWithCause("items", fmt.Errorf("line %d is inconsistent", i))
		}
	}
	o.items = make([]Item, len(items))
	copy(o.items, items)
	return nil
}

func (o *Order) setAddress(address Address) error {
	if err := address.Point.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setPickup(pickup *kernel.Point) error {
	if pickup == nil {
		return nil
	}
	if err := pickup.Validate(); err != nil {
		return err
	}
	p := *pickup
	o.pickup = &p
	return nil
}

func (o *Order) setStatus(status Status, deliveryPerson *kernel.UUID) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if err := status.ValidateCanHaveAgent(deliveryPerson != nil); err != nil {
		return err
	}
	if deliveryPerson != nil {
		if err := deliveryPerson.Validate(); err != nil {
			return err
		}
		id := *deliveryPerson
		o.deliveryPerson = &id
	}
	o.status = status
	return nil
}

// setHistory checks that the log is gap free and replays a path the
// adjacency table allows, ending in the current status.
func (o *Order) setHistory(history []HistoryEntry) error {
	if len(history) == 0 {
		return errs.NewValueIsRequiredError("history")
	}
	if history[0].Status != Pending {
		return errs.NewValueIsInvalidErrorWithCause("history", fmt.Errorf("starts at %s", history[0].Status))
	}
	for i, entry := range history {
		if entry.Seq != i+1 {
			return errs.NewValueIsInvalidErrorWithCause("history", fmt.Errorf("entry %d has seq %d", i+1, entry.Seq))
		}
		if i > 0 && !history[i-1].Status.CanTransitionTo(entry.Status) {
			return errs.NewValueIsInvalidErrorWithCause("history", errs.NewInvalidTransitionError(history[i-1].Status, entry.Status))
		}
	}
	if last := history[len(history)-1].Status; last != o.status {
		return errs.NewValueIsInvalidErrorWithCause("history", fmt.Errorf("ends at %s, order is %s", last, o.status))
	}

	o.history = make([]HistoryEntry, len(history))
	copy(o.history, history)
	return nil
}
