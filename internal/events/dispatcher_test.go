package events

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/learnhub/internal/logger"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
	err    error
	closed bool
}

func (p *recordingPublisher) Publish(_ context.Context, e Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return p.err
}

func (p *recordingPublisher) Close() error {
	p.closed = true
	return nil
}

type stubEnqueuer struct {
	events []Event
	err    error
}

func (q *stubEnqueuer) EnqueueEvent(_ context.Context, e Event) error {
	if q.err != nil {
		return q.err
	}
	q.events = append(q.events, e)
	return nil
}

func TestNew(t *testing.T) {
	e := New(TypeBookmarkCreated, 1, 2, map[string]any{"k": "v"})
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, TypeBookmarkCreated, e.Type)
	assert.Equal(t, uint(1), e.UserID)
	assert.Equal(t, uint(2), e.ResourceID)
	assert.False(t, e.OccurredAt.IsZero())
	assert.NotEqual(t, e.ID, New(TypeBookmarkCreated, 1, 2, nil).ID)
}

func TestDispatcher_PublishesDirectly(t *testing.T) {
	pub := &recordingPublisher{}
	d := NewDispatcher(pub, logger.NewNop())

	d.Dispatch(context.Background(), New(TypeReviewCreated, 1, 2, nil))
	d.Dispatch(context.Background(), New(TypeProgressCompleted, 1, 3, nil))
	d.Wait()

	require.Len(t, pub.events, 2)
}

func TestDispatcher_PrefersEnqueuer(t *testing.T) {
	pub := &recordingPublisher{}
	q := &stubEnqueuer{}
	d := NewDispatcher(pub, logger.NewNop())
	d.SetEnqueuer(q)

	d.Dispatch(context.Background(), New(TypeBookmarkCreated, 1, 2, nil))
	d.Wait()

	assert.Len(t, q.events, 1)
	assert.Empty(t, pub.events)
}

func TestDispatcher_FallsBackWhenEnqueueFails(t *testing.T) {
	pub := &recordingPublisher{}
	d := NewDispatcher(pub, logger.NewNop())
	d.SetEnqueuer(&stubEnqueuer{err: errors.New("queue down")})

	d.Dispatch(context.Background(), New(TypeBookmarkCreated, 1, 2, nil))
	d.Wait()

	assert.Len(t, pub.events, 1)
}

func TestDispatcher_SwallowsPublishErrors(t *testing.T) {
	pub := &recordingPublisher{err: errors.New("broker down")}
	d := NewDispatcher(pub, logger.NewNop())

	assert.NotPanics(t, func() {
		d.Dispatch(context.Background(), New(TypeReviewCreated, 1, 2, nil))
	})
	require.NoError(t, d.Close())
	assert.True(t, pub.closed)
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() {
		d.Dispatch(context.Background(), New(TypeReviewCreated, 1, 2, nil))
	})
}

func TestLogPublisher(t *testing.T) {
	p := NewLogPublisher(logger.NewNop())
	assert.NoError(t, p.Publish(context.Background(), New(TypeResourceCreated, 0, 9, nil)))
	assert.NoError(t, p.Close())
}
