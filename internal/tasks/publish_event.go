package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/learnhub/internal/events"
)

// PublishEventTask carries one domain event to the broker. Failed publishes
// are retried by the queue.
type PublishEventTask struct {
	Event events.Event `json:"event"`
}

// Config returns the queue configuration for event publishing tasks.
func (t PublishEventTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "publish_event",
		MaxAttempts: 5,
		Backoff:     15 * time.Second,
		Timeout:     30 * time.Second,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: true,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// PublishEventProcessor creates a processor function for PublishEventTask.
func PublishEventProcessor(publisher events.Publisher) backlite.QueueProcessor[PublishEventTask] {
	return func(ctx context.Context, task PublishEventTask) error {
		if publisher == nil {
			return fmt.Errorf("event publisher not configured")
		}
		if err := publisher.Publish(ctx, task.Event); err != nil {
			return fmt.Errorf("publish event %s: %w", task.Event.ID, err)
		}
		return nil
	}
}

// NewPublishEventQueue creates a backlite queue for event publishing tasks.
func NewPublishEventQueue(publisher events.Publisher) backlite.Queue {
	return backlite.NewQueue(PublishEventProcessor(publisher))
}
