package scheduler

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/mikestefanello/backlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/learnhub/internal/logger"
)

type fakeTask struct{}

func (fakeTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{Name: "fake"}
}

type recordingAdder struct {
	mu    sync.Mutex
	tasks []backlite.Task
	err   error
}

func (a *recordingAdder) Enqueue(_ context.Context, task backlite.Task) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.err != nil {
		return a.err
	}
	a.tasks = append(a.tasks, task)
	return nil
}

func TestValidateCronSchedule(t *testing.T) {
	assert.NoError(t, ValidateCronSchedule("*/30 * * * *"))
	assert.NoError(t, ValidateCronSchedule("0 3 * * *"))
	assert.Error(t, ValidateCronSchedule("every day"))
	assert.Error(t, ValidateCronSchedule("0 0 3 * * *"))
}

func TestScheduler_AddAndStart(t *testing.T) {
	adder := &recordingAdder{}
	s := New(adder, logger.NewNop())

	require.NoError(t, s.Add(Job{Name: "stats", Schedule: "*/30 * * * *", Task: fakeTask{}}))
	require.NoError(t, s.Add(Job{Name: "disabled", Schedule: "", Task: fakeTask{}}))
	assert.Error(t, s.Add(Job{Name: "bad", Schedule: "nope", Task: fakeTask{}}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s.Start(ctx)
	assert.True(t, s.IsRunning())
	assert.NotNil(t, s.NextRun("stats"))
	assert.Nil(t, s.NextRun("disabled"))

	s.Stop()
	assert.False(t, s.IsRunning())
}

func TestScheduler_RunNow(t *testing.T) {
	adder := &recordingAdder{}
	s := New(adder, logger.NewNop())

	s.RunNow(Job{Name: "stats", Task: fakeTask{}})
	assert.Len(t, adder.tasks, 1)

	adder.err = errors.New("queue down")
	assert.NotPanics(t, func() { s.RunNow(Job{Name: "stats", Task: fakeTask{}}) })
	assert.Len(t, adder.tasks, 1)
}
