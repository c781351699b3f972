package ports

import (
	"context"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
)

// AgentSummary is what a customer learns about the agent bringing the order.
type AgentSummary struct {
	ID      kernel.UUID
	Name    string
	Phone   string
	Vehicle agent.Vehicle
}

// NotificationSink is the one-way outbound channel to the real-time transport.
// Implementations must not block the caller on delivery and report their own
// failures (log, metrics); nothing is returned to the core.
type NotificationSink interface {
	OrderStatusChanged(ctx context.Context, event order.StatusChanged)
	DeliveryLocationUpdate(ctx context.Context, event agent.LocationReported)
	AgentAssigned(ctx context.Context, orderID kernel.UUID, summary AgentSummary)
}
