// Package order implements the Order aggregate and its lifecycle state machine.
//
// The package includes:
//   - Order: the aggregate root holding items, pricing, the bound delivery agent and the status log
//   - Status: the lifecycle states and the single adjacency table of allowed moves
//   - HistoryEntry: one append-only line of the status log
//   - StatusChanged: the domain event raised on every accepted move
//
// Key business rules:
//   - Orders move Pending -> Confirmed -> (Preparing) -> Ready -> Assigned -> PickedUp -> InTransit -> Delivered
//   - Any non-terminal order can be cancelled; Delivered and Cancelled orders can only be refunded
//   - A rejected move leaves the order and its history untouched
//   - An order has a delivery person exactly when it is, or has been, in an active delivery state
package order
