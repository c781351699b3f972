// Package notify contains the NotificationSink implementations: a structured
// log sink, a Redis pub/sub sink, a fan-out and an in-memory recorder.
//
// Every sink is one-way. Failures are logged and never reported back to the
// caller, which has already committed its transaction.
package notify

import (
	"time"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// Message types carried in Message.Type.
const (
	TypeOrderStatusChanged = "order_status_changed"
	TypeDeliveryLocation   = "delivery_location"
	TypeAgentAssigned      = "agent_assigned"
)

// Message is the JSON payload published to subscribers.
type Message struct {
	Type    string        `json:"type"`
	OrderID string        `json:"orderId"`
	Status  string        `json:"status,omitempty"`
	Actor   string        `json:"actor,omitempty"`
	Note    string        `json:"note,omitempty"`
	AgentID string        `json:"agentId,omitempty"`
	Lng     *float64      `json:"lng,omitempty"`
	Lat     *float64      `json:"lat,omitempty"`
	Agent   *AgentMessage `json:"agent,omitempty"`
	At      time.Time     `json:"at"`
}

// AgentMessage is what a customer is told about the assigned agent.
type AgentMessage struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Vehicle string `json:"vehicle"`
}

func statusMessage(event order.StatusChanged) Message {
	m := Message{
		Type:    TypeOrderStatusChanged,
		OrderID: event.OrderID.String(),
		Status:  event.Status.String(),
		Actor:   string(event.Actor),
		Note:    event.Note,
		At:      event.At,
	}
	if event.AgentID != nil {
		m.AgentID = event.AgentID.String()
	}
	return m
}

func locationMessage(event agent.LocationReported) Message {
	lng, lat := event.Point.Lng(), event.Point.Lat()
	return Message{
		Type:    TypeDeliveryLocation,
		OrderID: event.OrderID.String(),
		AgentID: event.AgentID.String(),
		Lng:     &lng,
		Lat:     &lat,
		At:      event.At,
	}
}

func assignedMessage(orderID string, summary ports.AgentSummary, at time.Time) Message {
	return Message{
		Type:    TypeAgentAssigned,
		OrderID: orderID,
		AgentID: summary.ID.String(),
		Agent: &AgentMessage{
			ID:      summary.ID.String(),
			Name:    summary.Name,
			Phone:   summary.Phone,
			Vehicle: string(summary.Vehicle),
		},
		At: at,
	}
}
