package commands

import (
	"context"
	"errors"

	"dispatch/internal/core/domain/services"
	"dispatch/internal/pkg/errs"
)

// DispatchReport summarises one batch run.
type DispatchReport struct {
	Assigned  int
	Waiting   int
	Uncovered int
	Failed    int
}

// DispatchReadyOrdersCommandHandler retries dispatch for orders that are still
// ready, oldest first. One order failing does not stop the batch.
type DispatchReadyOrdersCommandHandler struct {
	uowFactory UoWFactory
	dispatch   DispatchOrderCommandHandler
}

func NewDispatchReadyOrdersCommandHandler(uowFactory UoWFactory, attempts int) DispatchReadyOrdersCommandHandler {
	return DispatchReadyOrdersCommandHandler{
		uowFactory: uowFactory,
		dispatch:   NewDispatchOrderCommandHandler(uowFactory, attempts),
	}
}

// Handle returns the per-outcome counts. The returned error joins the errors
// of orders that failed for reasons other than waiting or zone coverage.
func (h DispatchReadyOrdersCommandHandler) Handle(ctx context.Context, cmd DispatchReadyOrdersCommand) (DispatchReport, error) {
	if err := cmd.Validate(); err != nil {
		return DispatchReport{}, err
	}

	ready, err := h.uowFactory.Create().OrderRepository().ListReady(ctx, cmd.BatchSize())
	if err != nil {
		return DispatchReport{}, err
	}

	var (
		report   DispatchReport
		failures []error
	)
	for _, o := range ready {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return report, errors.Join(append(failures, ctxErr)...)
		}

		dispatchCmd, cmdErr := NewDispatchOrderCommand(o.ID(), nil)
		if cmdErr != nil {
			return report, cmdErr
		}

		_, err = h.dispatch.Handle(ctx, dispatchCmd)
		switch {
		case err == nil:
			report.Assigned++
		case errors.Is(err, services.ErrNoAgentAvailable):
			report.Waiting++
		case errors.Is(err, errs.ErrZoneMismatch):
			report.Uncovered++
		case errors.Is(err, errs.ErrInvalidTransition):
			// cancelled or accepted since it was listed
		default:
			report.Failed++
			failures = append(failures, err)
		}
	}

	return report, errors.Join(failures...)
}
