package notify

import (
	"context"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// FanOut forwards every notification to each sink in order. Nil sinks are skipped.
type FanOut []ports.NotificationSink

func NewFanOut(sinks ...ports.NotificationSink) FanOut {
	out := make(FanOut, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

func (f FanOut) OrderStatusChanged(ctx context.Context, event order.StatusChanged) {
	for _, s := range f {
		s.OrderStatusChanged(ctx, event)
	}
}

func (f FanOut) DeliveryLocationUpdate(ctx context.Context, event agent.LocationReported) {
	for _, s := range f {
		s.DeliveryLocationUpdate(ctx, event)
	}
}

func (f FanOut) AgentAssigned(ctx context.Context, orderID kernel.UUID, summary ports.AgentSummary) {
	for _, s := range f {
		s.AgentAssigned(ctx, orderID, summary)
	}
}
