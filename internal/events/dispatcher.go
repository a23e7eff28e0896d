package events

import (
	"context"
	"sync"
	"time"

	"github.com/mrlokans/learnhub/internal/logger"
)

const publishTimeout = 5 * time.Second

// Enqueuer hands an event to a durable queue for later publishing.
type Enqueuer interface {
	EnqueueEvent(ctx context.Context, e Event) error
}

// Dispatcher routes events to the task queue when one is attached, and to the
// publisher otherwise. Failures are logged, never returned.
type Dispatcher struct {
	publisher Publisher
	enqueuer  Enqueuer
	log       *logger.Logger
	wg        sync.WaitGroup
}

func NewDispatcher(publisher Publisher, log *logger.Logger) *Dispatcher {
	return &Dispatcher{publisher: publisher, log: log}
}

// SetEnqueuer routes later events through q. Call before serving requests.
func (d *Dispatcher) SetEnqueuer(q Enqueuer) {
	d.enqueuer = q
}

// Dispatch sends e without blocking the caller on the broker.
func (d *Dispatcher) Dispatch(ctx context.Context, e Event) {
	if d == nil {
		return
	}

	if d.enqueuer != nil {
		err := d.enqueuer.EnqueueEvent(ctx, e)
		if err == nil {
			return
		}
		d.log.Warn("Failed to enqueue event, publishing directly", "event_type", e.Type, "error", err)
	}

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		pubCtx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()
		if err := d.publisher.Publish(pubCtx, e); err != nil {
			d.log.Error("Failed to publish event", "event_id", e.ID, "event_type", e.Type, "error", err)
		}
	}()
}

// Wait blocks until in-flight direct publishes finish.
func (d *Dispatcher) Wait() {
	d.wg.Wait()
}

// Close waits for in-flight publishes and closes the publisher.
func (d *Dispatcher) Close() error {
	d.Wait()
	return d.publisher.Close()
}
