package commands_test

import (
	"testing"
	"time"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/stretchr/testify/require"
)

var registeredAt = time.Date(2026, 10, 16, 8, 0, 0, 0, time.UTC)

func point(t *testing.T, lng, lat float64) kernel.Point {
	t.Helper()
	p, err := kernel.NewPoint(lng, lat)
	require.NoError(t, err)
	return p
}

// cbdPairs covers central Nairobi.
var cbdPairs = [][]float64{{36.70, -1.40}, {36.90, -1.40}, {36.90, -1.20}, {36.70, -1.20}}

// mombasaPairs is far from every test order.
var mombasaPairs = [][]float64{{39.60, -4.10}, {39.70, -4.10}, {39.70, -4.00}, {39.60, -4.00}}

// onlineAgent returns an active, online, available agent working zonePairs.
func onlineAgent(t *testing.T, name string, zonePairs [][]float64) *agent.Agent {
	t.Helper()
	a, err := agent.NewAgent(kernel.NewUUID(), name, "+254711000000", agent.VehicleMotorcycle, registeredAt)
	require.NoError(t, err)
	require.NoError(t, a.Activate())
	ring, err := kernel.RingFromPairs(zonePairs)
	require.NoError(t, err)
	_, err = a.AddWorkingZone(name+" zone", ring)
	require.NoError(t, err)
	online := true
	require.NoError(t, a.SetAvailability(&online, nil, registeredAt))
	return a
}

func newItem(t *testing.T) order.Item {
	t.Helper()
	item, err := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Chapati", 4, 2500)
	require.NoError(t, err)
	return item
}

func cbdAddress(t *testing.T) order.Address {
	t.Helper()
	address, err := order.NewAddress(point(t, 36.82, -1.29), "Tom Mboya Street 5")
	require.NoError(t, err)
	return address
}

func pendingOrder(t *testing.T) *order.Order {
	t.Helper()
	o, err := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.Item{newItem(t)}, cbdAddress(t), nil,
		order.Charges{DeliveryFee: 20000}, order.ActorCustomer, registeredAt)
	require.NoError(t, err)
	return o
}

func readyOrder(t *testing.T) *order.Order {
	t.Helper()
	o := pendingOrder(t)
	require.NoError(t, o.Confirm(order.ActorVendor, registeredAt))
	require.NoError(t, o.MarkReady(order.ActorVendor, registeredAt))
	return o
}

// assignedTo returns a ready order that a has claimed.
func assignedTo(t *testing.T, a *agent.Agent) *order.Order {
	t.Helper()
	o := readyOrder(t)
	require.NoError(t, a.Claim(o.ID()))
	require.NoError(t, o.Assign(a.ID(), order.ActorSystem, registeredAt))
	return o
}

// agentSnapshot returns a function producing fresh copies of a as it is now,
// the way each repository read yields its own instance.
func agentSnapshot(t *testing.T, a *agent.Agent) func() *agent.Agent {
	t.Helper()
	state := agent.State{
		ID:                  a.ID(),
		Name:                a.Name(),
		Phone:               a.Phone(),
		Vehicle:             a.Vehicle(),
		AccountStatus:       a.AccountStatus(),
		IsOnline:            a.IsOnline(),
		IsAvailable:         a.IsAvailable(),
		CurrentOrder:        a.CurrentOrder(),
		WorkingZones:        a.WorkingZones(),
		Location:            a.Location(),
		LastSeen:            a.LastSeen(),
		CompletedDeliveries: a.CompletedDeliveries(),
		Earnings:            a.Earnings(),
		RegisteredAt:        a.RegisteredAt(),
		Version:             a.Version(),
	}
	return func() *agent.Agent {
		restored, err := agent.RestoreAgent(state)
		require.NoError(t, err)
		return restored
	}
}

// orderSnapshot is agentSnapshot for orders.
func orderSnapshot(t *testing.T, o *order.Order) func() *order.Order {
	t.Helper()
	state := order.State{
		ID:             o.ID(),
		Number:         o.Number(),
		CustomerID:     o.CustomerID(),
		Items:          o.Items(),
		Address:        o.Address(),
		Pickup:         o.Pickup(),
		Pricing:        o.Pricing(),
		Status:         o.Status(),
		DeliveryPerson: o.DeliveryPerson(),
		History:        o.History(),
		CreatedAt:      o.CreatedAt(),
		ReadyAt:        o.ReadyAt(),
		Proof:          o.Proof(),
		CancelReason:   o.CancelReason(),
		Version:        o.Version(),
	}
	return func() *order.Order {
		restored, err := order.RestoreOrder(state)
		require.NoError(t, err)
		return restored
	}
}
