package interfaces

// This file contains compile-time interface implementation checks.
// These ensure that concrete types satisfy their interfaces at compile time,
// catching missing methods before runtime.
//
// To verify all checks pass: go build ./internal/interfaces/...

import (
	"github.com/mrlokans/learnhub/internal/audit"
	"github.com/mrlokans/learnhub/internal/auth"
	"github.com/mrlokans/learnhub/internal/database"
	auditRepo "github.com/mrlokans/learnhub/internal/database/audit"
	"github.com/mrlokans/learnhub/internal/database/bookmarks"
	"github.com/mrlokans/learnhub/internal/database/progress"
	"github.com/mrlokans/learnhub/internal/database/resources"
	"github.com/mrlokans/learnhub/internal/database/reviews"
	"github.com/mrlokans/learnhub/internal/database/stats"
	"github.com/mrlokans/learnhub/internal/database/subjects"
	"github.com/mrlokans/learnhub/internal/database/users"
	"github.com/mrlokans/learnhub/internal/events"
	"github.com/mrlokans/learnhub/internal/http"
	"github.com/mrlokans/learnhub/internal/scheduler"
	"github.com/mrlokans/learnhub/internal/search"
	"github.com/mrlokans/learnhub/internal/tasks"
)

// =============================================================================
// Data Access Layer
// =============================================================================

var _ auth.UserStore = (*users.Repository)(nil)

var _ http.ResourceStore = (*resources.Repository)(nil)
var _ http.SubjectStore = (*subjects.Repository)(nil)
var _ http.ProgressStore = (*progress.Repository)(nil)
var _ http.BookmarkStore = (*bookmarks.Repository)(nil)
var _ http.ReviewStore = (*reviews.Repository)(nil)
var _ http.AuditReader = (*auditRepo.Repository)(nil)
var _ http.Pinger = (*database.Database)(nil)

var _ http.Counter = (*users.Repository)(nil)
var _ http.Counter = (*resources.Repository)(nil)
var _ http.Counter = (*subjects.Repository)(nil)

var _ audit.EventStore = (*auditRepo.Repository)(nil)

// =============================================================================
// Services
// =============================================================================

var _ http.Authenticator = (*auth.Service)(nil)
var _ auth.TokenValidator = (*auth.Service)(nil)
var _ http.LoginLimiter = (*auth.LoginLimiter)(nil)
var _ http.AuditLogger = (*audit.Service)(nil)

// =============================================================================
// External Services
// =============================================================================

var _ http.ResourceSearcher = (*search.Client)(nil)

var _ events.Publisher = (*events.AMQPPublisher)(nil)
var _ events.Publisher = (*events.LogPublisher)(nil)
var _ http.EventDispatcher = (*events.Dispatcher)(nil)

// =============================================================================
// Background Work
// =============================================================================

var _ events.Enqueuer = (*tasks.Client)(nil)
var _ scheduler.TaskAdder = (*tasks.Client)(nil)
var _ tasks.StatsRefresher = (*stats.Repository)(nil)
var _ tasks.AuditEventCleaner = (*auditRepo.Repository)(nil)
