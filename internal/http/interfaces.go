package http

import (
	"context"
	"time"

	"github.com/mrlokans/learnhub/internal/auth"
	"github.com/mrlokans/learnhub/internal/database/resources"
	"github.com/mrlokans/learnhub/internal/entities"
	"github.com/mrlokans/learnhub/internal/events"
	"github.com/mrlokans/learnhub/internal/search"
)

// Authenticator issues sessions for new and returning users.
type Authenticator interface {
	Register(ctx context.Context, email, password, name string) (*auth.Session, error)
	Login(ctx context.Context, email, password string) (*auth.Session, error)
	GetUserByID(ctx context.Context, id uint) (*entities.User, error)
}

// LoginLimiter locks out repeated failed logins per IP and email.
type LoginLimiter interface {
	Allow(ip, email string) (bool, time.Duration)
	RecordFailure(ip, email string) (bool, time.Duration)
	RecordSuccess(ip, email string)
}

// AuditLogger records security-relevant actions without blocking the request.
type AuditLogger interface {
	LogAuth(userID uint, action, email, ipAddr, userAgent string, success bool)
	LogCreate(userID uint, entityType string, entityID uint, entityName string)
	LogDelete(userID uint, entityType string, entityID uint, entityName string)
}

// EventDispatcher forwards domain events to the broker.
type EventDispatcher interface {
	Dispatch(ctx context.Context, e events.Event)
}

// ResourceSearcher queries the external search provider.
type ResourceSearcher interface {
	Search(ctx context.Context, f search.Filters, page, pageSize int) (*search.Result, error)
}

// ResourceStore defines database operations for catalogued resources.
type ResourceStore interface {
	Create(ctx context.Context, res *entities.Resource) error
	GetByID(ctx context.Context, id uint) (*entities.Resource, error)
	FindByURL(ctx context.Context, url string) (*entities.Resource, error)
	Update(ctx context.Context, id uint, upd resources.Update) (*entities.Resource, error)
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, f resources.Filter) ([]entities.Resource, int64, error)
}

// SubjectStore defines database operations for subjects.
type SubjectStore interface {
	Create(ctx context.Context, name, description string) (*entities.Subject, error)
	GetOrCreate(ctx context.Context, name string) (*entities.Subject, error)
	GetByID(ctx context.Context, id uint) (*entities.Subject, error)
	List(ctx context.Context) ([]entities.Subject, error)
	Delete(ctx context.Context, id uint) error
}

// ProgressStore records per-user completion of resources.
type ProgressStore interface {
	Upsert(ctx context.Context, userID, resourceID uint, percentage int) (*entities.Progress, error)
	ListForUser(ctx context.Context, userID uint) ([]entities.Progress, error)
}

// BookmarkStore defines database operations for bookmarks.
type BookmarkStore interface {
	Create(ctx context.Context, userID, resourceID uint) (*entities.Bookmark, error)
	ListForUser(ctx context.Context, userID uint) ([]entities.Bookmark, error)
	Delete(ctx context.Context, userID, id uint) error
}

// ReviewStore defines database operations for reviews.
type ReviewStore interface {
	Create(ctx context.Context, userID, resourceID uint, rating int, comment string) (*entities.Review, error)
	ListForResource(ctx context.Context, resourceID uint) ([]entities.Review, error)
}

// Counter reports how many rows a table holds.
type Counter interface {
	Count(ctx context.Context) (int64, error)
}
