package jobs

import (
	"context"
	"log/slog"
	"time"

	"dispatch/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StaleAgentSweeper takes silent agents offline.
type StaleAgentSweeper interface {
	Handle(ctx context.Context, cmd commands.SweepStaleAgentsCommand) (int, error)
}

// PresenceSweepJob marks agents offline when they have not been seen for
// longer than timeout. Orders they carry are left alone.
type PresenceSweepJob struct {
	handler  StaleAgentSweeper
	schedule string
	timeout  time.Duration
	limit    int
	now      func() time.Time
	cron     *cron.Cron
	logger   *slog.Logger
}

func NewPresenceSweepJob(
	handler StaleAgentSweeper,
	schedule string,
	timeout time.Duration,
	limit int,
	logger *slog.Logger,
) *PresenceSweepJob {
	return &PresenceSweepJob{
		handler:  handler,
		schedule: schedule,
		timeout:  timeout,
		limit:    limit,
		now:      time.Now,
		cron:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:   logger.With("component", "presence_sweep_job"),
	}
}

// Start registers the tick and starts the scheduler.
func (j *PresenceSweepJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Presence sweep job started", "schedule", j.schedule, "timeout", j.timeout)
	return nil
}

// Run executes a single sweep.
func (j *PresenceSweepJob) Run(ctx context.Context) {
	cmd, err := commands.NewSweepStaleAgentsCommand(j.now(), j.timeout, j.limit)
	if err != nil {
		j.logger.ErrorContext(ctx, "Presence sweep job misconfigured", "error", err)
		return
	}

	swept, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Presence sweep job failed", "error", err, "swept", swept)
		return
	}
	if swept > 0 {
		j.logger.InfoContext(ctx, "Stale agents taken offline", "count", swept)
	}
}

// Stop stops the scheduler and waits for a running sweep to finish.
func (j *PresenceSweepJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Presence sweep job stopped")
}
