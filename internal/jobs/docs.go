// Package jobs provides scheduled background tasks for the dispatch service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for the dispatch service.
//
// # Available Jobs
//
// 1. DispatchJob - Retries dispatch for orders still waiting in ready status
// 2. PresenceSweepJob - Takes agents offline once their last heartbeat is older than a timeout
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	// Create job manager with required handlers
//	jobManager := jobs.NewJobManager(dispatchReadyHandler, sweepHandler, jobs.Schedule{
//		DispatchCron:  "*/5 * * * * *",
//		DispatchBatch: 50,
//		SweepCron:     "0 * * * * *",
//		SweepTimeout:  5 * time.Minute,
//	}, logger)
//
//	// Start all jobs
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	// Stop all jobs when shutting down
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Schedules are six field cron expressions with a leading seconds field.
// A tick that is still running when the next one fires is skipped.
//
// # Error Handling
//
// - Dispatch job treats waiting and uncovered orders as normal outcomes
// - Sweep job logs all errors as they indicate system issues
// - Failed job starts will stop any already running jobs
package jobs
