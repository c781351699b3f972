package commands

import (
	"context"
	"errors"

	"dispatch/internal/pkg/errs"
)

// SweepStaleAgentsCommandHandler marks silent agents offline so dispatch stops
// offering them orders. An order an agent already carries is not touched.
//
// Each agent is written in its own transaction. An agent that pinged between
// the listing and the write loses its conflict silently: it is alive again.
type SweepStaleAgentsCommandHandler struct {
	uowFactory AgentUoWFactory
}

func NewSweepStaleAgentsCommandHandler(uowFactory AgentUoWFactory) SweepStaleAgentsCommandHandler {
	return SweepStaleAgentsCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle returns how many agents were taken offline.
func (h SweepStaleAgentsCommandHandler) Handle(ctx context.Context, cmd SweepStaleAgentsCommand) (int, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	stale, err := h.uowFactory.Create().AgentRepository().ListStale(ctx, cmd.Cutoff(), cmd.Limit())
	if err != nil {
		return 0, err
	}

	swept := 0
	var failures []error
	for _, a := range stale {
		uow := h.uowFactory.Create()
		if err = uow.Begin(ctx); err != nil {
			return swept, err
		}

		a.MarkOffline()
		err = uow.AgentRepository().Update(ctx, a)
		if err == nil {
			err = uow.Commit(ctx)
		}
		_ = uow.Rollback(ctx)

		switch {
		case err == nil:
			swept++
		case errors.Is(err, errs.ErrConcurrencyConflict):
		default:
			failures = append(failures, err)
		}
	}

	return swept, errors.Join(failures...)
}
