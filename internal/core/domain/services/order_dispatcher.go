package services

import (
	"cmp"
	"errors"
	"math"
	"slices"
	"time"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/order"
	"dispatch/internal/pkg/errs"
)

// ErrNoAgentAvailable is returned when agents cover the order's delivery
// point but none of them is free right now. It is a waiting state, not a failure:
// the order stays ready and dispatch is retried later.
var ErrNoAgentAvailable = errors.New("no agent available yet")

// OrderDispatcher is a domain service that matches ready orders to agents.
//
// Business rules:
//   - only active, online agents whose working zones contain the delivery point are considered
//   - candidates are ranked by distance from their last location to the order's ranking point,
//     then by registration time, then by id; agents that never reported a location rank last
//   - the agent is claimed before the order is assigned, and released again if the assignment fails
//
// Example usage:
//
//	dispatcher := services.NewOrderDispatcher()
//	candidates, err := dispatcher.Rank(o, agents)
//	if errors.Is(err, services.ErrNoAgentAvailable) {
//	    return // retry later
//	}
//	for _, a := range candidates {
//	    if err := dispatcher.Assign(o, a, order.ActorSystem, now); err == nil {
//	        break
//	    }
//	}
type OrderDispatcher struct{}

func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// Rank returns the agents eligible for o, best first.
//
// It fails with a ZoneMismatchError when no active online agent covers the
// delivery point, and with ErrNoAgentAvailable when covering agents exist but
// are all busy or paused.
func (d OrderDispatcher) Rank(o *order.Order, agents []*agent.Agent) ([]*agent.Agent, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if _, err := o.Status().Transition(order.Assigned); err != nil {
		return nil, err
	}

	destination := o.Address().Point
	covering := 0
	candidates := make([]*agent.Agent, 0, len(agents))
	for _, a := range agents {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if a.AccountStatus() != agent.AccountActive || !a.IsOnline() || !a.Covers(destination) {
			continue
		}
		covering++
		if a.IsDispatchable() {
			candidates = append(candidates, a)
		}
	}

	if covering == 0 {
		return nil, errs.NewZoneMismatchError(destination)
	}
	if len(candidates) == 0 {
		return nil, ErrNoAgentAvailable
	}

	d.sort(o, candidates)
	return candidates, nil
}

// Assign claims a for o and moves o to Assigned. When the order refuses the
// transition (for example it was cancelled meanwhile) the claim is undone so
// that both aggregates are left as they were.
func (d OrderDispatcher) Assign(o *order.Order, a *agent.Agent, actor order.Actor, now time.Time) error {
	if err := errors.Join(o.Validate(), a.Validate()); err != nil {
		return err
	}

	if err := a.Claim(o.ID()); err != nil {
		return err
	}

	if err := o.Assign(a.ID(), actor, now); err != nil {
		if releaseErr := a.Release(o.ID()); releaseErr != nil {
			return errors.Join(err, releaseErr)
		}
		return err
	}

	return nil
}

func (d OrderDispatcher) sort(o *order.Order, candidates []*agent.Agent) {
	target := o.RankingPoint()

	distance := make(map[*agent.Agent]float64, len(candidates))
	for _, a := range candidates {
		km, ok := a.DistanceKmTo(target)
		if !ok {
			km = math.Inf(1)
		}
		distance[a] = km
	}

	slices.SortStableFunc(candidates, func(x, y *agent.Agent) int {
		if c := cmp.Compare(distance[x], distance[y]); c != 0 {
			return c
		}
		if c := x.RegisteredAt().Compare(y.RegisteredAt()); c != 0 {
			return c
		}
		return cmp.Compare(x.ID().String(), y.ID().String())
	})
}
