package jobs_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"dispatch/internal/core/application/usecases/commands"
	"dispatch/internal/jobs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockReadyOrdersDispatcher struct {
	mock.Mock
}

func (m *MockReadyOrdersDispatcher) Handle(ctx context.Context, cmd commands.DispatchReadyOrdersCommand) (commands.DispatchReport, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.DispatchReport), args.Error(1)
}

type MockStaleAgentSweeper struct {
	mock.Mock
}

func (m *MockStaleAgentSweeper) Handle(ctx context.Context, cmd commands.SweepStaleAgentsCommand) (int, error) {
	args := m.Called(ctx, cmd)
	return args.Int(0), args.Error(1)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestDispatchJob_RunPassesBatchSize(t *testing.T) {
	dispatcher := new(MockReadyOrdersDispatcher)
	dispatcher.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.DispatchReadyOrdersCommand) bool {
		return cmd.BatchSize() == 25
	})).Return(commands.DispatchReport{Assigned: 2, Waiting: 1}, nil).Once()

	job := jobs.NewDispatchJob(dispatcher, "*/5 * * * * *", 25, discardLogger())
	job.Run(context.Background())

	dispatcher.AssertExpectations(t)
}

func TestDispatchJob_RunSurvivesHandlerError(t *testing.T) {
	dispatcher := new(MockReadyOrdersDispatcher)
	dispatcher.On("Handle", mock.Anything, mock.Anything).
		Return(commands.DispatchReport{Failed: 1}, errors.New("db down")).Once()

	job := jobs.NewDispatchJob(dispatcher, "*/5 * * * * *", 10, discardLogger())

	assert.NotPanics(t, func() { job.Run(context.Background()) })
	dispatcher.AssertExpectations(t)
}

func TestDispatchJob_RunWithBadBatchSizeSkipsHandler(t *testing.T) {
	dispatcher := new(MockReadyOrdersDispatcher)

	job := jobs.NewDispatchJob(dispatcher, "*/5 * * * * *", 0, discardLogger())
	job.Run(context.Background())

	dispatcher.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestPresenceSweepJob_RunUsesTimeout(t *testing.T) {
	sweeper := new(MockStaleAgentSweeper)
	before := time.Now().Add(-5 * time.Minute)
	sweeper.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.SweepStaleAgentsCommand) bool {
		return !cmd.Cutoff().Before(before) && cmd.Limit() == 100
	})).Return(3, nil).Once()

	job := jobs.NewPresenceSweepJob(sweeper, "0 * * * * *", 5*time.Minute, 100, discardLogger())
	job.Run(context.Background())

	sweeper.AssertExpectations(t)
}

func TestJobManager_StartRejectsBadSchedule(t *testing.T) {
	manager := jobs.NewJobManager(new(MockReadyOrdersDispatcher), new(MockStaleAgentSweeper), jobs.Schedule{
		DispatchCron:  "*/5 * * * * *",
		DispatchBatch: 10,
		SweepCron:     "not a schedule",
		SweepTimeout:  time.Minute,
	}, discardLogger())

	err := manager.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "presence sweep job")
}

func TestJobManager_StartAndStop(t *testing.T) {
	manager := jobs.NewJobManager(new(MockReadyOrdersDispatcher), new(MockStaleAgentSweeper), jobs.Schedule{
		DispatchCron:  "0 0 0 1 1 *",
		DispatchBatch: 10,
		SweepCron:     "0 0 0 1 1 *",
		SweepTimeout:  time.Minute,
	}, discardLogger())

	require.NoError(t, manager.StartAll())
	manager.StopAll()
}
