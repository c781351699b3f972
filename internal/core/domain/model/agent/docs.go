// Package agent provides the Agent aggregate, the registry entry of a delivery person.
//
// The package includes:
//   - Agent: account state, online/available flags, the carried order, location and earnings
//   - WorkingZone: a polygon in which the agent accepts deliveries
//   - LocationReported: raised when an agent carrying an order moves
//
// Key business rules:
//   - Claim binds an order only to an active, available agent with no current order
//   - Release and CompleteDelivery unbind the same order that was claimed
//   - isAvailable cannot be switched on while an order is carried
//   - older or duplicate location reports are ignored
package agent
