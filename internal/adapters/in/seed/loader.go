package seed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/core/domain/model/agent"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/core/ports"
	"dispatch/internal/pkg/errs"
)

type (
	AgentRegistrar interface {
		Handle(ctx context.Context, cmd commands.RegisterAgentCommand) error
	}
	AccountStatusSetter interface {
		Handle(ctx context.Context, cmd commands.SetAgentAccountStatusCommand) error
	}
	ZoneAdder interface {
		Handle(ctx context.Context, cmd commands.AddAgentZoneCommand) error
	}
	AvailabilitySetter interface {
		Handle(ctx context.Context, cmd commands.SetAvailabilityCommand) error
	}
)

// Handlers are the agent use cases a seed file is replayed through.
type Handlers struct {
	Register        AgentRegistrar
	SetStatus       AccountStatusSetter
	AddZone         ZoneAdder
	SetAvailability AvailabilitySetter
}

// Loader registers seeded agents that are not stored yet.
type Loader struct {
	uowFactory ports.UnitOfWorkFactory
	h          Handlers
	logger     *slog.Logger
}

func NewLoader(uowFactory ports.UnitOfWorkFactory, h Handlers, logger *slog.Logger) *Loader {
	return &Loader{uowFactory: uowFactory, h: h, logger: logger.With("component", "seed")}
}

// Apply registers every agent of f that does not exist yet and returns how
// many were created. Existing agents are left untouched.
func (l *Loader) Apply(ctx context.Context, f *File) (int, error) {
	created := 0
	for i, entry := range f.Agents {
		id, err := entry.AgentID()
		if err != nil {
			return created, fmt.Errorf("agents[%d]: %w", i, err)
		}

		exists, err := l.exists(ctx, id)
		if err != nil {
			return created, err
		}
		if exists {
			l.logger.DebugContext(ctx, "seeded agent already present", "agent_id", id.String())
			continue
		}

		if err = l.apply(ctx, id, entry); err != nil {
			return created, fmt.Errorf("agents[%d] %q: %w", i, entry.Name, err)
		}
		created++
		l.logger.InfoContext(ctx, "seeded agent", "agent_id", id.String(), "name", entry.Name, "zones", len(entry.Zones))
	}
	return created, nil
}

func (l *Loader) exists(ctx context.Context, id kernel.UUID) (bool, error) {
	_, err := l.uowFactory.Create().AgentRepository().Get(ctx, id)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, errs.ErrObjectNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (l *Loader) apply(ctx context.Context, id kernel.UUID, entry Agent) error {
	register, err := commands.NewRegisterAgentCommand(id, entry.Name, entry.Phone, agent.Vehicle(entry.Vehicle))
	if err != nil {
		return err
	}
	if err = l.h.Register.Handle(ctx, register); err != nil {
		return err
	}

	for _, z := range entry.Zones {
		zone, zoneErr := commands.NewAddAgentZoneCommand(id, z.Name, z.Coordinates)
		if zoneErr != nil {
			return zoneErr
		}
		if zoneErr = l.h.AddZone.Handle(ctx, zone); zoneErr != nil {
			return zoneErr
		}
	}

	if !entry.Active {
		return nil
	}
	activate, err := commands.NewSetAgentAccountStatusCommand(id, agent.AccountActive)
	if err != nil {
		return err
	}
	if err = l.h.SetStatus.Handle(ctx, activate); err != nil {
		return err
	}

	if !entry.Online {
		return nil
	}
	online, available := true, true
	availability, err := commands.NewSetAvailabilityCommand(id, &online, &available)
	if err != nil {
		return err
	}
	return l.h.SetAvailability.Handle(ctx, availability)
}
