package queries

import (
	"context"
	"database/sql"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/domain/model/order"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetActiveDeliveriesQueryHandler retrieves orders on the road from the database.
// Joins the carrying agent to report its last known position.
//
// Example:
//
//	handler := NewGetActiveDeliveriesQueryHandler(db)
//	query := NewGetActiveDeliveriesQuery()
//
//	deliveries, err := handler.Handle(ctx, query)
//	if err != nil {
//	    log.Printf("Failed to get active deliveries: %v", err)
//	    return err
//	}
type GetActiveDeliveriesQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveDeliveriesQueryHandler creates a handler for active delivery queries.
// Requires a GORM database connection for query execution.
func NewGetActiveDeliveriesQueryHandler(db *gorm.DB) GetActiveDeliveriesQueryHandler {
	return GetActiveDeliveriesQueryHandler{db: db}
}

// Handle executes the query. Results are sorted by order number for
// consistent output.
func (h GetActiveDeliveriesQueryHandler) Handle(
	ctx context.Context,
	query GetActiveDeliveriesQuery,
) ([]GetActiveDeliveriesQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	deliveries := make([]GetActiveDeliveriesQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.number,
			o.status,
			o.delivery_person_id,
			a.name,
			o.delivery_lng,
			o.delivery_lat,
			a.location_lng,
			a.location_lat,
			a.location_at
		FROM orders o
		JOIN agents a ON a.id = o.delivery_person_id
		WHERE o.status IN ?
		ORDER BY o.number
	`, []string{
		order.Assigned.String(),
		order.PickedUp.String(),
		order.InTransit.String(),
	}).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp              GetActiveDeliveriesQueryResponse
			id, agentID       uuid.UUID
			status            string
			lng, lat          float64
			agentLng, agentLt sql.NullFloat64
			locatedAt         sql.NullTime
		)

		err = rows.Scan(
			&id,
			&resp.Number,
			&status,
			&agentID,
			&resp.AgentName,
			&lng,
			&lat,
			&agentLng,
			&agentLt,
			&locatedAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if resp.AgentID, err = kernel.UUIDFromBytes(agentID[:]); err != nil {
			return nil, err
		}
		if resp.Status, err = order.ParseStatus(status); err != nil {
			return nil, err
		}
		if resp.Destination, err = kernel.NewPoint(lng, lat); err != nil {
			return nil, err
		}
		if agentLng.Valid && agentLt.Valid {
			p, pointErr := kernel.NewPoint(agentLng.Float64, agentLt.Float64)
			if pointErr != nil {
				return nil, pointErr
			}
			resp.AgentLocation = &p
		}
		if locatedAt.Valid {
			at := locatedAt.Time.UTC()
			resp.LocatedAt = &at
		}

		deliveries = append(deliveries, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return deliveries, nil
}
