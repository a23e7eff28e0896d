// Package events publishes domain events about user interactions.
//
// Handlers hand events to a Dispatcher, which either enqueues them as
// background tasks or publishes them straight away. Publishing never fails the
// request that produced the event.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeBookmarkCreated   Type = "bookmark.created"
	TypeReviewCreated     Type = "review.created"
	TypeProgressCompleted Type = "progress.completed"
	TypeResourceCreated   Type = "resource.created"
	TypeResourceDeleted   Type = "resource.deleted"
)

// Event is the message body sent to the broker. Type doubles as the routing key.
type Event struct {
	ID         string         `json:"id"`
	Type       Type           `json:"type"`
	OccurredAt time.Time      `json:"occurredAt"`
	UserID     uint           `json:"userId,omitempty"`
	ResourceID uint           `json:"resourceId,omitempty"`
	Data       map[string]any `json:"data,omitempty"`
}

// New stamps an event with a fresh id and the current time.
func New(t Type, userID, resourceID uint, data map[string]any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       t,
		OccurredAt: time.Now().UTC(),
		UserID:     userID,
		ResourceID: resourceID,
		Data:       data,
	}
}

// Publisher delivers events to a broker.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}
