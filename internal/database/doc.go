// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Driver selection (sqlite/postgres), migrations
//	├── errors.go        # Constraint violation translation
//	├── users/           # Accounts and roles
//	├── subjects/        # Subject catalogue with slugs
//	├── resources/       # Learning resources and catalogue listing
//	├── progress/        # Atomic progress upsert
//	├── bookmarks/       # Per-user bookmarks
//	├── reviews/         # Per-user reviews
//	├── stats/           # Resource aggregate refresh
//	└── audit/           # Audit event log
//
// # Using Sub-packages
//
//	db, err := database.NewDatabase(cfg.Database)
//
//	resourcesRepo := resources.NewRepository(db.DB)
//	res, err := resourcesRepo.GetByID(ctx, 42)
//
// # Errors
//
// Repositories return ErrNotFound, ErrDuplicate, ErrInUse and
// ErrMissingReference so callers never inspect driver-specific errors.
// Uniqueness and restrict-delete rules live in the schema; repositories do
// not pre-check them.
package database
