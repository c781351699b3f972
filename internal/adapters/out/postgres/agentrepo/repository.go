package agentrepo

import (
	"context"
	"errors"
	"time"

	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormAgentRepository implements ports.AgentRepository using GORM.
type GormAgentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormAgentRepository creates a new GORM agent repository.
func NewGormAgentRepository(db *gorm.DB, tracker aggregateTracker) *GormAgentRepository {
	return &GormAgentRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new agent and its working zones.
func (r *GormAgentRepository) Add(ctx context.Context, aggregate *agent.Agent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes the agent row only if its version is still the one the agent
// was loaded with, then inserts working zones that are not stored yet.
//
// Losing the race either on the version or on the unique current order index
// yields a ConcurrencyConflictError.
func (r *GormAgentRepository) Update(ctx context.Context, aggregate *agent.Agent) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&AgentDTO{}).
		Where("id = ? AND version = ?", dto.ID, dto.Version).
		Updates(dto.updateColumns())
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return errs.NewConcurrencyConflictError("agent", aggregate.ID())
		}
		return result.Error
	}

	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&AgentDTO{}).Where("id = ?", dto.ID).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return errs.NewObjectNotFoundError("agent", aggregate.ID().String())
		}
		return errs.NewConcurrencyConflictError("agent", aggregate.ID())
	}

	if len(dto.WorkingZones) > 0 {
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&dto.WorkingZones).Error; err != nil {
			return err
		}
	}

	aggregate.BumpVersion()
	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an agent by ID.
func (r *GormAgentRepository) Get(ctx context.Context, id kernel.UUID) (*agent.Agent, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto AgentDTO
	if err := r.withZones(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("agent", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// ListOnline retrieves active agents that are online, oldest registration first.
// Busy agents are included: dispatch needs them to tell a zone with no
// coverage from a zone whose agents are all busy.
func (r *GormAgentRepository) ListOnline(ctx context.Context) ([]*agent.Agent, error) {
	var dtos []AgentDTO
	if err := r.withZones(ctx).
		Where("account_status = ? AND is_online = ?", string(agent.AccountActive), true).
		Order("registered_at, id").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

// ListStale retrieves online agents that have not been seen since cutoff.
// A limit of zero or less returns all of them.
func (r *GormAgentRepository) ListStale(ctx context.Context, cutoff time.Time, limit int) ([]*agent.Agent, error) {
	query := r.withZones(ctx).
		Where("is_online = ? AND last_seen < ?", true, cutoff).
		Order("last_seen, id")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var dtos []AgentDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func (r *GormAgentRepository) withZones(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("WorkingZones", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}

func toDomainList(dtos []AgentDTO) ([]*agent.Agent, error) {
	agents := make([]*agent.Agent, 0, len(dtos))
	for _, dto := range dtos {
		a, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		agents = append(agents, a)
	}
	return agents, nil
}
