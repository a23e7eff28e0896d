package http

import (
	"github.com/redis/go-redis/v9"

	"github.com/mrlokans/learnhub/internal/auth"
	"github.com/mrlokans/learnhub/internal/config"
	"github.com/mrlokans/learnhub/internal/logger"
)

// RouterConfig contains all dependencies and configuration needed
// to create the HTTP router.
type RouterConfig struct {
	// Core dependencies
	Resources ResourceStore
	Subjects  SubjectStore
	Progress  ProgressStore
	Bookmarks BookmarkStore
	Reviews   ReviewStore
	Health    Pinger

	// Admin counters
	UserCounter     Counter
	ResourceCounter Counter
	SubjectCounter  Counter
	AuditReader     AuditReader

	// Authentication
	Auth           Authenticator
	AuthMiddleware *auth.Middleware
	LoginLimiter   LoginLimiter

	// External search
	Searcher ResourceSearcher

	// Side channels; both tolerate being unset
	Audit    AuditLogger
	Dispatch EventDispatcher

	// Distributed rate limiting (optional)
	Redis     redis.Scripter
	RateLimit config.RateLimit

	// Hide server-side error details from clients
	Production bool

	CORSOrigins []string
	Tracing     bool
	ServiceName string

	// Application info
	Version string

	Logger *logger.Logger
}
