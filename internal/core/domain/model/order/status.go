package order

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status is the lifecycle state of an order.
//
// Happy path and escapes:
//
//	Pending ─> Confirmed ─┬─> Preparing ─> Ready ─> Assigned ─> PickedUp ─> InTransit ─> Delivered ─┐
//	                      └──────────────────^                                                       ├─> Refunded
//	any non-terminal state ─────────────────────────────────────────────────────> Cancelled ─────────┘
//
// Delivered, Cancelled and Refunded are terminal: the only move out of
// Delivered or Cancelled is a payment reversal to Refunded, and Refunded
// accepts nothing.
type Status int

const (
	// Unknown (0) catches uninitialised values.
	Unknown Status = iota
	Pending
	Confirmed
	Preparing
	Ready
	Assigned
	PickedUp
	InTransit
	Delivered
	Cancelled
	Refunded
)

// transitions is the single authoritative adjacency table of the state machine.
var transitions = map[Status][]Status{
	Pending:   {Confirmed, Cancelled},
	Confirmed: {Preparing, Ready, Cancelled},
	Preparing: {Ready, Cancelled},
	Ready:     {Assigned, Cancelled},
	Assigned:  {PickedUp, Cancelled},
	PickedUp:  {InTransit, Cancelled},
	InTransit: {Delivered, Cancelled},
	Delivered: {Refunded},
	Cancelled: {Refunded},
	Refunded:  {},
}

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Confirmed: "confirmed",
		Preparing: "preparing",
		Ready:     "ready",
		Assigned:  "assigned",
		PickedUp:  "picked_up",
		InTransit: "in_transit",
		Delivered: "delivered",
		Cancelled: "cancelled",
		Refunded:  "refunded",
	}
}

// AllStatuses lists every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{Pending, Confirmed, Preparing, Ready, Assigned, PickedUp, InTransit, Delivered, Cancelled, Refunded}
}

// ParseStatus converts the wire name ("picked_up") back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != Unknown {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate rejects Unknown and out-of-range values, e.g. from a corrupted row.
func (s Status) Validate() error {
	if _, ok := transitions[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the snake_case wire name, "unknown" for invalid values.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// CanTransitionTo reports whether the adjacency table allows s -> to.
func (s Status) CanTransitionTo(to Status) bool {
	for _, next := range transitions[s] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition returns to, or an InvalidTransitionError when the table forbids it.
func (s Status) Transition(to Status) (Status, error) {
	if !s.CanTransitionTo(to) {
		return s, errs.NewInvalidTransitionError(s, to)
	}
	return to, nil
}

// IsTerminal reports Delivered, Cancelled and Refunded.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Cancelled || s == Refunded
}

// IsActiveDelivery reports the states in which an agent carries the order.
func (s Status) IsActiveDelivery() bool {
	return s == Assigned || s == PickedUp || s == InTransit
}

// IsPreAssignment reports the states before any agent is bound.
func (s Status) IsPreAssignment() bool {
	return s == Pending || s == Confirmed || s == Preparing || s == Ready
}

// ValidateCanHaveAgent checks status against presence of a delivery person:
// pre-assignment orders have none, active deliveries and Delivered must have one.
// Cancelled and Refunded may have either.
func (s Status) ValidateCanHaveAgent(hasAgent bool) error {
	if hasAgent && s.IsPreAssignment() {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a delivery person", s),
		)
	}

	if !hasAgent && (s.IsActiveDelivery() || s == Delivered) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no delivery person", s),
		)
	}

	return nil
}
