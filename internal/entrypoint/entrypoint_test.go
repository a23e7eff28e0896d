package entrypoint

import (
	"context"
	"sync"
	"testing"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/learnhub/internal/config"
	"github.com/mrlokans/learnhub/internal/logger"
)

type fakeRunner struct {
	mu  sync.Mutex
	ctx context.Context
}

func (f *fakeRunner) Start(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.ctx = ctx
}

func (f *fakeRunner) Enqueue(context.Context, backlite.Task) error {
	return nil
}

func (f *fakeRunner) started() context.Context {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.ctx
}

func TestStartBackground(t *testing.T) {
	runner := &fakeRunner{}
	cfg := config.Tasks{StatsSchedule: "*/30 * * * *", AuditCleanupSchedule: "0 3 * * *", AuditRetentionDays: 90}

	sched, cancel, err := startBackground(runner, cfg, logger.NewNop())
	require.NoError(t, err)
	require.NotNil(t, sched)
	defer sched.Stop()

	ctx := runner.started()
	require.NotNil(t, ctx)
	assert.NoError(t, ctx.Err())

	cancel()
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}

func TestStartBackground_BadScheduleStopsWorkers(t *testing.T) {
	runner := &fakeRunner{}
	cfg := config.Tasks{StatsSchedule: "*/30 * * * *", AuditCleanupSchedule: "not a schedule"}

	sched, cancel, err := startBackground(runner, cfg, logger.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cleanup_audit_events")
	assert.Nil(t, sched)
	assert.Nil(t, cancel)

	ctx := runner.started()
	require.NotNil(t, ctx)
	assert.ErrorIs(t, ctx.Err(), context.Canceled)
}
