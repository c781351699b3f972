// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"
	"time"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrListAgentsQueryIsNotConstructed = errors.New(
		"ListAgentsQuery must be created via NewListAgentsQuery constructor",
	)
)

// ListAgentsQuery retrieves the agent roster for operators.
//
// Example:
//
//	query := NewListAgentsQuery(true)
//	handler := NewListAgentsQueryHandler(db)
//
//	agents, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to list agents: %w", err)
//	}
//
//	for _, a := range agents {
//	    fmt.Printf("%s online=%t carrying=%v\n", a.Name, a.IsOnline, a.CurrentOrderID)
//	}
type ListAgentsQuery struct {
	onlineOnly bool
	guard      guard.ConstructorGuard
}

// NewListAgentsQuery creates the query. With onlineOnly the roster is limited
// to agents currently online.
func NewListAgentsQuery(onlineOnly bool) ListAgentsQuery {
	return ListAgentsQuery{onlineOnly: onlineOnly, guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListAgentsQuery) Validate() error {
	return q.guard.Validate(ErrListAgentsQueryIsNotConstructed)
}

func (q ListAgentsQuery) OnlineOnly() bool {
	return q.onlineOnly
}

// AgentLocation is the last reported position of an agent.
type AgentLocation struct {
	Point     kernel.Point
	AccuracyM float64
	At        time.Time
}

// ListAgentsQueryResponse is one roster line.
type ListAgentsQueryResponse struct {
	ID                  kernel.UUID
	Name                string
	Phone               string
	Vehicle             agent.Vehicle
	AccountStatus       agent.AccountStatus
	IsOnline            bool
	IsAvailable         bool
	CurrentOrderID      *kernel.UUID
	Location            *AgentLocation
	LastSeen            time.Time
	CompletedDeliveries int
	Earnings            kernel.Money
	RegisteredAt        time.Time
}
