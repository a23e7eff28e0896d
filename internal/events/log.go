package events

import (
	"context"

	"github.com/mrlokans/learnhub/internal/logger"
)

// LogPublisher writes events to the log. It stands in when no broker is configured.
type LogPublisher struct {
	log *logger.Logger
}

func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(_ context.Context, e Event) error {
	p.log.Info("Event published",
		"event_id", e.ID,
		"event_type", e.Type,
		"user_id", e.UserID,
		"resource_id", e.ResourceID,
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
