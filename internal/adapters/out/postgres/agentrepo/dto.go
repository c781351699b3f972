// Package agentrepo maps the agent aggregate to the agents and
// agent_working_zones tables.
package agentrepo

import (
	"fmt"
	"time"

	"dispatch/internal/adapters/out/postgres/columns"
	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// AgentDTO is one row of the agents table.
//
// CurrentOrderID carries a unique index, so the database itself refuses a
// second agent holding an order that is already claimed.
type AgentDTO struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                string
	Phone               string
	Vehicle             string
	AccountStatus       string `gorm:"index"`
	IsOnline            bool   `gorm:"index"`
	IsAvailable         bool
	CurrentOrderID      *uuid.UUID  `gorm:"type:uuid;uniqueIndex"`
	Location            LocationDTO `gorm:"embedded;embeddedPrefix:location_"`
	LastSeen            time.Time   `gorm:"index"`
	CompletedDeliveries int
	Earnings            int64
	RegisteredAt        time.Time
	Version             int
	WorkingZones        []WorkingZoneDTO `gorm:"foreignKey:AgentID;constraint:OnDelete:CASCADE"`
}

func (AgentDTO) TableName() string {
	return "agents"
}

// LocationDTO holds the last reported position. All columns are NULL until
// the first report.
type LocationDTO struct {
	Lng       *float64
	Lat       *float64
	AccuracyM *float64
	At        *time.Time
}

// WorkingZoneDTO stores a zone ring as two parallel coordinate arrays.
type WorkingZoneDTO struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	AgentID  uuid.UUID `gorm:"type:uuid;index"`
	Position int
	Name     string
	Lngs     columns.Float64Array
	Lats     columns.Float64Array
}

func (WorkingZoneDTO) TableName() string {
	return "agent_working_zones"
}

func fromDomain(a *agent.Agent) AgentDTO {
	var currentOrderID *uuid.UUID
	if id := a.CurrentOrder(); id != nil {
		raw := id.Bytes()
		currentOrderID = &raw
	}

	var location LocationDTO
	if loc := a.Location(); loc != nil {
		lng, lat, accuracy, at := loc.Point.Lng(), loc.Point.Lat(), loc.AccuracyM, loc.At
		location = LocationDTO{Lng: &lng, Lat: &lat, AccuracyM: &accuracy, At: &at}
	}

	zones := make([]WorkingZoneDTO, 0, len(a.WorkingZones()))
	for i, z := range a.WorkingZones() {
		vertices := z.Ring().Vertices()
		lngs := make(columns.Float64Array, 0, len(vertices))
		lats := make(columns.Float64Array, 0, len(vertices))
		for _, v := range vertices {
			lngs = append(lngs, v.Lng())
			lats = append(lats, v.Lat())
		}
		zones = append(zones, WorkingZoneDTO{
			ID:       z.ID().Bytes(),
			AgentID:  a.ID().Bytes(),
			Position: i,
			Name:     z.Name(),
			Lngs:     lngs,
			Lats:     lats,
		})
	}

	return AgentDTO{
		ID:                  a.ID().Bytes(),
		Name:                a.Name(),
		Phone:               a.Phone(),
		Vehicle:             string(a.Vehicle()),
		AccountStatus:       string(a.AccountStatus()),
		IsOnline:            a.IsOnline(),
		IsAvailable:         a.IsAvailable(),
		CurrentOrderID:      currentOrderID,
		Location:            location,
		LastSeen:            a.LastSeen(),
		CompletedDeliveries: a.CompletedDeliveries(),
		Earnings:            int64(a.Earnings()),
		RegisteredAt:        a.RegisteredAt(),
		Version:             a.Version(),
		WorkingZones:        zones,
	}
}

// updateColumns lists every mutable column. A map is used so that zero values
// (false, NULL) are written too.
func (dto AgentDTO) updateColumns() map[string]any {
	return map[string]any{
		"name":                 dto.Name,
		"phone":                dto.Phone,
		"vehicle":              dto.Vehicle,
		"account_status":       dto.AccountStatus,
		"is_online":            dto.IsOnline,
		"is_available":         dto.IsAvailable,
		"current_order_id":     dto.CurrentOrderID,
		"location_lng":         dto.Location.Lng,
		"location_lat":         dto.Location.Lat,
		"location_accuracy_m":  dto.Location.AccuracyM,
		"location_at":          dto.Location.At,
		"last_seen":            dto.LastSeen,
		"completed_deliveries": dto.CompletedDeliveries,
		"earnings":             dto.Earnings,
		"version":              dto.Version + 1,
	}
}

func toDomain(dto AgentDTO) (*agent.Agent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	var currentOrder *kernel.UUID
	if dto.CurrentOrderID != nil {
		orderID, orderErr := kernel.UUIDFromBytes((*dto.CurrentOrderID)[:])
		if orderErr != nil {
			return nil, orderErr
		}
		currentOrder = &orderID
	}

	var location *agent.Location
	if dto.Location.Lng != nil && dto.Location.Lat != nil {
		p, pointErr := kernel.NewPoint(*dto.Location.Lng, *dto.Location.Lat)
		if pointErr != nil {
			return nil, pointErr
		}
		location = &agent.Location{Point: p}
		if dto.Location.AccuracyM != nil {
			location.AccuracyM = *dto.Location.AccuracyM
		}
		if dto.Location.At != nil {
			location.At = *dto.Location.At
		}
	}

	zones := make([]*agent.WorkingZone, 0, len(dto.WorkingZones))
	for _, z := range dto.WorkingZones {
		zone, zoneErr := zoneToDomain(z)
		if zoneErr != nil {
			return nil, zoneErr
		}
		zones = append(zones, zone)
	}

	return agent.RestoreAgent(agent.State{
		ID:                  id,
		Name:                dto.Name,
		Phone:               dto.Phone,
		Vehicle:             agent.Vehicle(dto.Vehicle),
		AccountStatus:       agent.AccountStatus(dto.AccountStatus),
		IsOnline:            dto.IsOnline,
		IsAvailable:         dto.IsAvailable,
		CurrentOrder:        currentOrder,
		WorkingZones:        zones,
		Location:            location,
		LastSeen:            dto.LastSeen,
		CompletedDeliveries: dto.CompletedDeliveries,
		Earnings:            kernel.Money(dto.Earnings),
		RegisteredAt:        dto.RegisteredAt,
		Version:             dto.Version,
	})
}

func zoneToDomain(dto WorkingZoneDTO) (*agent.WorkingZone, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	if len(dto.Lngs) != len(dto.Lats) {
		return nil, fmt.Errorf("working zone %s: %d longitudes for %d latitudes", id, len(dto.Lngs), len(dto.Lats))
	}

	vertices := make([]kernel.Point, 0, len(dto.Lngs))
	for i := range dto.Lngs {
		p, pointErr := kernel.NewPoint(dto.Lngs[i], dto.Lats[i])
		if pointErr != nil {
			return nil, pointErr
		}
		vertices = append(vertices, p)
	}

	ring, err := kernel.NewRing(vertices)
	if err != nil {
		return nil, err
	}
	return agent.NewWorkingZone(id, dto.Name, ring)
}
