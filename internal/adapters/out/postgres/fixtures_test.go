package postgres_test

import (
	"time"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

var now = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

// createTestAgent creates an active, online agent covering central Nairobi.
func createTestAgent(name string) *agent.Agent {
	a, _ := agent.NewAgent(kernel.NewUUID(), name, "+254700000001", agent.VehicleMotorcycle, now)
	_ = a.Activate()
	ring, _ := kernel.RingFromPairs([][]float64{{36.70, -1.40}, {36.90, -1.40}, {36.90, -1.20}, {36.70, -1.20}})
	_, _ = a.AddWorkingZone("CBD", ring)
	online := true
	_ = a.SetAvailability(&online, nil, now)
	return a
}

// createTestOrder creates a pending order delivering into central Nairobi.
func createTestOrder() *order.Order {
	item, _ := order.NewItem(kernel.NewUUID(), kernel.NewUUID(), "Ugali", 1, 8000)
	point, _ := kernel.NewPoint(36.80, -1.30)
	address, _ := order.NewAddress(point, "Moi Avenue")
	o, _ := order.NewOrder(kernel.NewUUID(), kernel.NewUUID(), []order.Item{item}, address, nil,
		order.Charges{DeliveryFee: 10000}, order.ActorCustomer, now)
	return o
}

// createReadyOrder creates an order that dispatch can assign.
func createReadyOrder() *order.Order {
	o := createTestOrder()
	_ = o.Confirm(order.ActorVendor, now)
	_ = o.MarkReady(order.ActorVendor, now)
	return o
}
