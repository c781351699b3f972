package ports

import (
	"context"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order together with its first history entry.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists the order row under optimistic concurrency control and
	// appends history entries that are not stored yet. Stored entries are never
	// rewritten.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order with items and full history.
	// Returns an ObjectNotFoundError for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// ListReady returns up to limit orders in Ready status, oldest ready first.
	ListReady(ctx context.Context, limit int) ([]*order.Order, error)
}
