package notify

import (
	"context"
	"log/slog"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// LogSink writes every notification as a structured log record.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	return &LogSink{logger: logger.With("component", "notify")}
}

func (s *LogSink) OrderStatusChanged(ctx context.Context, event order.StatusChanged) {
	attrs := []any{
		slog.String("order_id", event.OrderID.String()),
		slog.String("status", event.Status.String()),
		slog.String("actor", string(event.Actor)),
	}
	if event.AgentID != nil {
		attrs = append(attrs, slog.String("agent_id", event.AgentID.String()))
	}
	if event.Note != "" {
		attrs = append(attrs, slog.String("note", event.Note))
	}
	s.logger.InfoContext(ctx, "order status changed", attrs...)
}

func (s *LogSink) DeliveryLocationUpdate(ctx context.Context, event agent.LocationReported) {
	s.logger.DebugContext(ctx, "delivery location updated",
		slog.String("order_id", event.OrderID.String()),
		slog.String("agent_id", event.AgentID.String()),
		slog.Float64("lng", event.Point.Lng()),
		slog.Float64("lat", event.Point.Lat()),
		slog.Time("at", event.At),
	)
}

func (s *LogSink) AgentAssigned(ctx context.Context, orderID kernel.UUID, summary ports.AgentSummary) {
	s.logger.InfoContext(ctx, "agent assigned",
		slog.String("order_id", orderID.String()),
		slog.String("agent_id", summary.ID.String()),
		slog.String("agent_name", summary.Name),
		slog.String("vehicle", string(summary.Vehicle)),
	)
}
