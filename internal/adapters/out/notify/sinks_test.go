package notify_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"

	"dispatch/internal/adapters/out/notify"
	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	sink := notify.NewLogSink(logger)
	orderID, agentID := kernel.NewUUID(), kernel.NewUUID()
	point, err := kernel.NewPoint(36.8, -1.3)
	require.NoError(t, err)

	sink.OrderStatusChanged(t.Context(), order.StatusChanged{
		OrderID: orderID, Status: order.Assigned, At: now, Actor: order.ActorSystem, AgentID: &agentID,
	})
	sink.DeliveryLocationUpdate(t.Context(), agent.LocationReported{
		AgentID: agentID, OrderID: orderID, Point: point, At: now,
	})
	sink.AgentAssigned(t.Context(), orderID, ports.AgentSummary{ID: agentID, Name: "Wanjiru", Vehicle: agent.VehicleBicycle})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)

	var record map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &record))
	assert.Equal(t, "order status changed", record["msg"])
	assert.Equal(t, "notify", record["component"])
	assert.Equal(t, "assigned", record["status"])
	assert.Equal(t, agentID.String(), record["agent_id"])

	require.NoError(t, json.Unmarshal([]byte(lines[1]), &record))
	assert.Equal(t, "delivery location updated", record["msg"])
	assert.InDelta(t, 36.8, record["lng"], 1e-9)

	require.NoError(t, json.Unmarshal([]byte(lines[2]), &record))
	assert.Equal(t, "agent assigned", record["msg"])
	assert.Equal(t, "bicycle", record["vehicle"])
}

func TestFanOut(t *testing.T) {
	first, second := notify.NewRecorder(), notify.NewRecorder()
	sink := notify.NewFanOut(first, nil, second)
	orderID := kernel.NewUUID()

	sink.OrderStatusChanged(context.Background(), order.StatusChanged{OrderID: orderID, Status: order.Ready})
	sink.AgentAssigned(context.Background(), orderID, ports.AgentSummary{ID: kernel.NewUUID()})
	sink.DeliveryLocationUpdate(context.Background(), agent.LocationReported{OrderID: orderID})

	assert.Len(t, sink, 2)
	for _, r := range []*notify.Recorder{first, second} {
		assert.Equal(t, []order.Status{order.Ready}, r.Statuses(orderID))
		assert.Len(t, r.Assignments(), 1)
		assert.Len(t, r.LocationUpdates(), 1)
	}

	first.Reset()
	assert.Empty(t, first.StatusChanges())
	assert.Len(t, second.StatusChanges(), 1)
}
