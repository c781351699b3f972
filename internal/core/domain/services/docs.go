// Package services holds the domain services that change an order and an agent together.
//
// The package includes:
//   - OrderDispatcher: ranks eligible agents for a ready order and binds one of them
//   - DeliveryLifecycle: delivers or cancels an order and releases its agent, crediting the payout on delivery
//
// The services are pure: they mutate aggregates in memory and leave persistence
// and atomicity to the unit of work of the calling command handler.
package services
