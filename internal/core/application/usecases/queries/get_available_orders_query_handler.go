package queries

import (
	"context"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
)

// GetAvailableOrdersQueryHandler evaluates zone containment in process, so it
// reads aggregates through the repositories instead of raw rows.
type GetAvailableOrdersQueryHandler struct {
	uowFactory ports.UnitOfWorkFactory
	limit      int
}

// NewGetAvailableOrdersQueryHandler creates the handler. A limit of zero or
// less falls back to DefaultAvailableOrdersLimit.
func NewGetAvailableOrdersQueryHandler(uowFactory ports.UnitOfWorkFactory, limit int) GetAvailableOrdersQueryHandler {
	if limit <= 0 {
		limit = DefaultAvailableOrdersLimit
	}
	return GetAvailableOrdersQueryHandler{uowFactory: uowFactory, limit: limit}
}

// Handle returns matching orders oldest ready first. Agents that are not
// active get an empty list. Without a known agent location the radius filter
// is not applied.
func (h GetAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableOrdersQuery,
) ([]GetAvailableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()

	a, err := uow.AgentRepository().Get(ctx, query.AgentID())
	if err != nil {
		return nil, err
	}

	available := make([]GetAvailableOrdersQueryResponse, 0)
	if a.AccountStatus() != agent.AccountActive {
		return available, nil
	}

	ready, err := uow.OrderRepository().ListReady(ctx, h.limit)
	if err != nil {
		return nil, err
	}

	radius := query.RadiusKm()
	for _, o := range ready {
		if !a.Covers(o.Address().Point) {
			continue
		}

		pickup := o.RankingPoint()
		km, located := a.DistanceKmTo(pickup)
		if radius != nil && located && km > *radius {
			continue
		}

		resp := GetAvailableOrdersQueryResponse{
			ID:          o.ID(),
			Number:      o.Number(),
			Destination: o.Address().Point,
			AddressText: o.Address().Text,
			Pickup:      pickup,
			DeliveryFee: o.Pricing().DeliveryFee,
			Total:       o.Pricing().Total,
		}
		if readyAt := o.ReadyAt(); readyAt != nil {
			resp.ReadyAt = *readyAt
		}
		if located {
			rounded := kernel.RoundKm(km)
			resp.DistanceKm = &rounded
		}
		available = append(available, resp)
	}

	return available, nil
}
