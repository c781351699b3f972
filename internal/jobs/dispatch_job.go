package jobs

import (
	"context"
	"log/slog"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// ReadyOrdersDispatcher runs one dispatch pass over ready orders.
type ReadyOrdersDispatcher interface {
	Handle(ctx context.Context, cmd commands.DispatchReadyOrdersCommand) (commands.DispatchReport, error)
}

// DispatchJob retries dispatch for orders left waiting in ready status.
// Orders are normally dispatched when they are marked ready; this job picks
// up the ones that found no agent at that moment.
type DispatchJob struct {
	handler   ReadyOrdersDispatcher
	schedule  string
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewDispatchJob creates the job. schedule is a six field cron expression
// (seconds first), batchSize caps the orders handled per tick.
func NewDispatchJob(handler ReadyOrdersDispatcher, schedule string, batchSize int, logger *slog.Logger) *DispatchJob {
	return &DispatchJob{
		handler:   handler,
		schedule:  schedule,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "dispatch_job"),
	}
}

// Start registers the tick and starts the scheduler.
func (j *DispatchJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch job started", "schedule", j.schedule, "batch_size", j.batchSize)
	return nil
}

// Run executes a single tick. Waiting and uncovered orders are normal outcomes
// and only logged at debug level.
func (j *DispatchJob) Run(ctx context.Context) {
	cmd, err := commands.NewDispatchReadyOrdersCommand(j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Dispatch job misconfigured", "error", err)
		return
	}

	report, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Dispatch job failed", "error", err,
			"assigned", report.Assigned, "failed", report.Failed)
		return
	}

	if report.Assigned > 0 {
		j.logger.InfoContext(ctx, "Dispatched ready orders", "assigned", report.Assigned,
			"waiting", report.Waiting, "uncovered", report.Uncovered)
		return
	}
	j.logger.DebugContext(ctx, "No ready order dispatched", "waiting", report.Waiting, "uncovered", report.Uncovered)
}

// Stop stops the scheduler and waits for a running tick to finish.
func (j *DispatchJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Dispatch job stopped")
}
