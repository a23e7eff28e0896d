// Package audit persists the append-only audit trail.
package audit

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/learnhub/internal/entities"
)

const defaultPageSize = 50

// Query selects a page of audit events. Zero values mean "any".
type Query struct {
	UserID    uint
	EventType entities.AuditEventType
	Since     time.Time
	Limit     int
	Offset    int
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogEvent saves an audit event to the database.
func (r *Repository) LogEvent(ctx context.Context, event *entities.AuditEvent) error {
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now().UTC()
	}
	return r.db.WithContext(ctx).Create(event).Error
}

// Find returns matching events, most recent first, and the total match count.
func (r *Repository) Find(ctx context.Context, q Query) ([]entities.AuditEvent, int64, error) {
	query := r.db.WithContext(ctx).Model(&entities.AuditEvent{})
	if q.UserID > 0 {
		query = query.Where("user_id = ?", q.UserID)
	}
	if q.EventType != "" {
		query = query.Where("event_type = ?", q.EventType)
	}
	if !q.Since.IsZero() {
		query = query.Where("created_at > ?", q.Since)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if q.Limit <= 0 {
		q.Limit = defaultPageSize
	}
	if q.Offset < 0 {
		q.Offset = 0
	}

	var events []entities.AuditEvent
	err := query.Order("created_at DESC, id DESC").Limit(q.Limit).Offset(q.Offset).Find(&events).Error
	return events, total, err
}

// DeleteOlderThan removes events created before cutoff and returns how many went.
func (r *Repository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("created_at < ?", cutoff).Delete(&entities.AuditEvent{})
	return result.RowsAffected, result.Error
}
