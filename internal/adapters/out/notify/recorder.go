package notify

import (
	"context"
	"sync"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/core/ports"
)

// Assignment is one AgentAssigned call seen by a Recorder.
type Assignment struct {
	OrderID kernel.UUID
	Agent   ports.AgentSummary
}

// Recorder keeps every notification in memory. It is safe for concurrent use.
type Recorder struct {
	mu          sync.Mutex
	statuses    []order.StatusChanged
	locations   []agent.LocationReported
	assignments []Assignment
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) OrderStatusChanged(_ context.Context, event order.StatusChanged) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, event)
}

func (r *Recorder) DeliveryLocationUpdate(_ context.Context, event agent.LocationReported) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locations = append(r.locations, event)
}

func (r *Recorder) AgentAssigned(_ context.Context, orderID kernel.UUID, summary ports.AgentSummary) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.assignments = append(r.assignments, Assignment{OrderID: orderID, Agent: summary})
}

func (r *Recorder) StatusChanges() []order.StatusChanged {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]order.StatusChanged(nil), r.statuses...)
}

func (r *Recorder) LocationUpdates() []agent.LocationReported {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]agent.LocationReported(nil), r.locations...)
}

func (r *Recorder) Assignments() []Assignment {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Assignment(nil), r.assignments...)
}

// Statuses returns the statuses announced for orderID, in order.
func (r *Recorder) Statuses(orderID kernel.UUID) []order.Status {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []order.Status
	for _, e := range r.statuses {
		if e.OrderID.IsEqual(orderID) {
			out = append(out, e.Status)
		}
	}
	return out
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses, r.locations, r.assignments = nil, nil, nil
}
