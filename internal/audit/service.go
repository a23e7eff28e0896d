// Package audit records security-relevant actions to the audit_events table.
package audit

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/mrlokans/learnhub/internal/entities"
	"github.com/mrlokans/learnhub/internal/logger"
)

const writeTimeout = 5 * time.Second

// EventStore persists audit events.
type EventStore interface {
	LogEvent(ctx context.Context, event *entities.AuditEvent) error
}

// Service provides high-level audit logging functionality.
type Service struct {
	repo EventStore
	log  *logger.Logger
	wg   sync.WaitGroup
}

// NewService creates a new audit service.
func NewService(repo EventStore, log *logger.Logger) *Service {
	return &Service{repo: repo, log: log}
}

// Log records an audit event synchronously.
func (s *Service) Log(ctx context.Context, event *entities.AuditEvent) error {
	return s.repo.LogEvent(ctx, event)
}

// LogAsync records an audit event in the background. Request cancellation
// does not abort the write.
func (s *Service) LogAsync(event *entities.AuditEvent) {
	if s == nil {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()
		if err := s.repo.LogEvent(ctx, event); err != nil {
			s.log.Error("Failed to log audit event", "action", event.Action, "error", err)
		}
	}()
}

// Wait blocks until pending asynchronous writes finish.
func (s *Service) Wait() {
	s.wg.Wait()
}

// LogAuth records an authentication event. userID is zero when the caller is unknown.
func (s *Service) LogAuth(userID uint, action, email, ipAddr, userAgent string, success bool) {
	event := &entities.AuditEvent{
		UserID:    userID,
		EventType: entities.AuditEventAuth,
		Action:    action,
		IPAddress: ipAddr,
		UserAgent: truncate(userAgent, 500),
		Status:    entities.AuditStatusSuccess,
	}
	if email != "" {
		event.Metadata = marshalMetadata(map[string]any{"email": email})
	}
	if !success {
		event.Status = entities.AuditStatusFailed
	}

	s.LogAsync(event)
}

// LogCreate records the creation of a catalogue entity.
func (s *Service) LogCreate(userID uint, entityType string, entityID uint, entityName string) {
	s.LogAsync(&entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventCreate,
		Action:      entityType + "_create",
		Description: truncate("Created "+entityType+": "+entityName, 500),
		EntityType:  entityType,
		EntityID:    &entityID,
		Status:      entities.AuditStatusSuccess,
	})
}

// LogDelete records a deletion event.
func (s *Service) LogDelete(userID uint, entityType string, entityID uint, entityName string) {
	s.LogAsync(&entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventDelete,
		Action:      entityType + "_delete",
		Description: truncate("Deleted "+entityType+": "+entityName, 500),
		EntityType:  entityType,
		EntityID:    &entityID,
		Status:      entities.AuditStatusSuccess,
	})
}

func marshalMetadata(md map[string]any) string {
	b, err := json.Marshal(md)
	if err != nil {
		return ""
	}
	return string(b)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
