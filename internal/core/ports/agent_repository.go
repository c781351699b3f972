// Package ports defines the contracts between the dispatch core and its
// infrastructure: repositories, the unit of work and the notification sink.
package ports

import (
	"context"
	"time"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
)

// AgentRepository defines the persistence contract for agent aggregates.
type AgentRepository interface {
	// Add persists a newly registered agent with its working zones.
	Add(ctx context.Context, aggregate *agent.Agent) error

	// Update persists changes to an existing agent. The write is conditional on
	// the version the agent was loaded with; a concurrent writer makes it fail
	// with a ConcurrencyConflictError and nothing is written.
	Update(ctx context.Context, aggregate *agent.Agent) error

	// Get retrieves an agent with its working zones.
	// Returns an ObjectNotFoundError for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error)

	// ListOnline returns active agents that are online, ordered by registration time.
	// Zone containment is evaluated in process by the caller.
	ListOnline(ctx context.Context) ([]*agent.Agent, error)

	// ListStale returns online agents whose lastSeen is before cutoff.
	ListStale(ctx context.Context, cutoff time.Time, limit int) ([]*agent.Agent, error)
}
