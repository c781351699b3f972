package queries

import (
	"errors"
	"math"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// DefaultAvailableOrdersLimit caps how many ready orders are scanned per request.
const DefaultAvailableOrdersLimit = 100

var (
	ErrGetAvailableOrdersQueryIsNotConstructed = errors.New(
		"GetAvailableOrdersQuery must be created via NewGetAvailableOrdersQuery constructor",
	)
)

// GetAvailableOrdersQuery lists ready orders an agent may accept: the
// delivery point lies in one of the agent's working zones and, when radiusKm
// is set, the pickup point lies within that distance of the agent.
type GetAvailableOrdersQuery struct {
	agentID  kernel.UUID
	radiusKm *float64
	guard    guard.ConstructorGuard
}

func NewGetAvailableOrdersQuery(agentID kernel.UUID, radiusKm *float64) (GetAvailableOrdersQuery, error) {
	q := GetAvailableOrdersQuery{guard: guard.NewConstructorGuard()}

	var idErr, radiusErr error
	if err := agentID.Validate(); err != nil {
		idErr = errs.NewValueIsInvalidErrorWithCause("agentID", err)
	}
	if radiusKm != nil && (*radiusKm <= 0 || math.IsNaN(*radiusKm) || math.IsInf(*radiusKm, 0)) {
		radiusErr = errs.NewValueIsOutOfRangeError("radiusKm", *radiusKm, 0, math.Inf(1))
	}
	if err := errors.Join(idErr, radiusErr); err != nil {
		return GetAvailableOrdersQuery{}, err
	}

	q.agentID = agentID
	if radiusKm != nil {
		r := *radiusKm
		q.radiusKm = &r
	}
	return q, nil
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableOrdersQueryIsNotConstructed)
}

func (q GetAvailableOrdersQuery) AgentID() kernel.UUID {
	return q.agentID
}

func (q GetAvailableOrdersQuery) RadiusKm() *float64 {
	return q.radiusKm
}

// GetAvailableOrdersQueryResponse is one acceptable order. DistanceKm is the
// rounded distance from the agent to the pickup point, nil while the agent has
// no known location.
type GetAvailableOrdersQueryResponse struct {
	ID          kernel.UUID
	Number      string
	Destination kernel.Point
	AddressText string
	Pickup      kernel.Point
	DeliveryFee kernel.Money
	Total       kernel.Money
	ReadyAt     time.Time
	DistanceKm  *float64
}
