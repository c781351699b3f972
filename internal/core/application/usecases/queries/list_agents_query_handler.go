package queries

import (
	"context"
	"database/sql"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ListAgentsQueryHandler reads the roster straight from the agents table.
// Uses direct SQL queries for optimal read performance in the CQRS pattern.
type ListAgentsQueryHandler struct {
	db *gorm.DB
}

// NewListAgentsQueryHandler creates a handler for roster queries.
// Requires a GORM database connection for query execution.
func NewListAgentsQueryHandler(db *gorm.DB) ListAgentsQueryHandler {
	return ListAgentsQueryHandler{db: db}
}

// Handle returns agents ordered by registration time, then id.
func (h ListAgentsQueryHandler) Handle(
	ctx context.Context,
	query ListAgentsQuery,
) ([]ListAgentsQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	agents := make([]ListAgentsQueryResponse, 0)

	stmt := `
		SELECT
			id,
			name,
			phone,
			vehicle,
			account_status,
			is_online,
			is_available,
			current_order_id,
			location_lng,
			location_lat,
			location_accuracy_m,
			location_at,
			last_seen,
			completed_deliveries,
			earnings,
			registered_at
		FROM agents`
	args := make([]any, 0, 1)
	if query.OnlineOnly() {
		stmt += " WHERE is_online = ?"
		args = append(args, true)
	}
	stmt += " ORDER BY registered_at, id"

	rows, err := h.db.WithContext(ctx).Raw(stmt, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp           ListAgentsQueryResponse
			id             uuid.UUID
			currentOrderID uuid.NullUUID
			vehicle        string
			accountStatus  string
			lng, lat, acc  sql.NullFloat64
			locatedAt      sql.NullTime
			earnings       int64
		)

		err = rows.Scan(
			&id,
			&resp.Name,
			&resp.Phone,
			&vehicle,
			&accountStatus,
			&resp.IsOnline,
			&resp.IsAvailable,
			&currentOrderID,
			&lng,
			&lat,
			&acc,
			&locatedAt,
			&resp.LastSeen,
			&resp.CompletedDeliveries,
			&earnings,
			&resp.RegisteredAt,
		)
		if err != nil {
			return nil, err
		}

		if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		if currentOrderID.Valid {
			orderID, idErr := kernel.UUIDFromBytes(currentOrderID.UUID[:])
			if idErr != nil {
				return nil, idErr
			}
			resp.CurrentOrderID = &orderID
		}
		if lng.Valid && lat.Valid && locatedAt.Valid {
			p, pointErr := kernel.NewPoint(lng.Float64, lat.Float64)
			if pointErr != nil {
				return nil, pointErr
			}
			resp.Location = &AgentLocation{Point: p, AccuracyM: acc.Float64, At: locatedAt.Time.UTC()}
		}

		resp.Vehicle = agent.Vehicle(vehicle)
		resp.AccountStatus = agent.AccountStatus(accountStatus)
		resp.Earnings = kernel.Money(earnings)
		resp.LastSeen = resp.LastSeen.UTC()
		resp.RegisteredAt = resp.RegisteredAt.UTC()
		agents = append(agents, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return agents, nil
}
