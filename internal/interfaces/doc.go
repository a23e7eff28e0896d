// Package interfaces documents the core abstractions used throughout the application.
//
// # Interface Categories
//
// ## Data Access Interfaces
//
//   - ResourceStore, SubjectStore: catalogue management (internal/http/interfaces.go)
//   - ProgressStore, BookmarkStore, ReviewStore: per-user interactions (internal/http/interfaces.go)
//   - UserStore: accounts (internal/auth/service.go)
//   - EventStore: audit persistence (internal/audit/service.go)
//
// Each is implemented by a Repository in a sub-package of internal/database.
//
// ## External Service Interfaces
//
//   - ResourceSearcher: live discovery through the search provider (internal/http/interfaces.go)
//   - Publisher: domain event delivery to the broker (internal/events/event.go)
//
// ## Background Work Interfaces
//
//   - Enqueuer: hands events to the task queue (internal/events/dispatcher.go)
//   - TaskAdder: enqueues scheduled jobs (internal/scheduler/scheduler.go)
//   - StatsRefresher, AuditEventCleaner: task dependencies (internal/tasks/)
//
// # Adding a New Database Domain
//
// To add a new data domain (e.g., learning paths):
//
//  1. Create sub-package: internal/database/paths/
//
//  2. Define repository:
//
//     type Repository struct { db *gorm.DB }
//
//     func NewRepository(db *gorm.DB) *Repository
//
//  3. Translate driver errors with database.TranslateWrite, TranslateRead and
//     TranslateDelete so handlers see ErrNotFound, ErrDuplicate, ErrInUse and
//     ErrMissingReference.
//
//  4. Register the entity in database.Models and add a compile-time check.
//
// # Adding a New Event
//
//  1. Add a Type constant in internal/events/event.go. The value is the AMQP
//     routing key.
//
//  2. Dispatch it from the handler after the write succeeds:
//
//     dispatcher.Dispatch(ctx, events.New(events.TypeSomething, userID, resourceID, nil))
//
// # Compile-Time Interface Checks
//
// All implementations should include compile-time checks to ensure they satisfy
// their interfaces:
//
//	var _ SomeInterface = (*MyImplementation)(nil)
//
// See checks.go for the full list.
package interfaces
