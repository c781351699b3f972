package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// Schedule holds the timing of the background jobs.
type Schedule struct {
	DispatchCron  string
	DispatchBatch int
	SweepCron     string
	SweepTimeout  time.Duration
	SweepLimit    int
}

// JobManager coordinates all scheduled jobs in the application.
// Provides a unified interface to start and stop all background jobs.
type JobManager struct {
	dispatchJob *DispatchJob
	sweepJob    *PresenceSweepJob
}

// NewJobManager creates a new job manager with all required jobs.
// Takes command handlers as dependencies to wire up the job execution.
func NewJobManager(
	dispatcher ReadyOrdersDispatcher,
	sweeper StaleAgentSweeper,
	schedule Schedule,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		dispatchJob: NewDispatchJob(dispatcher, schedule.DispatchCron, schedule.DispatchBatch, logger),
		sweepJob:    NewPresenceSweepJob(sweeper, schedule.SweepCron, schedule.SweepTimeout, schedule.SweepLimit, logger),
	}
}

// StartAll starts all scheduled jobs.
// Returns an error if any job fails to start.
func (jm *JobManager) StartAll() error {
	if err := jm.dispatchJob.Start(); err != nil {
		return fmt.Errorf("failed to start dispatch job: %w", err)
	}

	if err := jm.sweepJob.Start(); err != nil {
		// Stop already started jobs if this one fails
		jm.dispatchJob.Stop()
		return fmt.Errorf("failed to start presence sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.sweepJob.Stop()
	jm.dispatchJob.Stop()
}
