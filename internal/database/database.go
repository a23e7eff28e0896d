package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mrlokans/learnhub/internal/config"
	"github.com/mrlokans/learnhub/internal/entities"
)

// Models lists every entity managed by AutoMigrate, parents before children.
var Models = []any{
	&entities.User{},
	&entities.Subject{},
	&entities.Resource{},
	&entities.ResourceStats{},
	&entities.Progress{},
	&entities.Bookmark{},
	&entities.Review{},
	&entities.AuditEvent{},
}

type Database struct {
	DB     *gorm.DB
	Driver string
}

// NewDatabase opens the configured driver and migrates the schema.
func NewDatabase(cfg config.Database) (*Database, error) {
	var dialector gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(cfg.DSN)
	case config.DriverSQLite, "":
		dialector = sqlite.Open(SQLiteDSN(cfg.Path))
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnknownDriver, cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
		// Unique and foreign key violations come back as gorm.ErrDuplicatedKey
		// and gorm.ErrForeignKeyViolated.
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if cfg.Driver == config.DriverPostgres {
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to get sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	database := &Database{DB: db, Driver: cfg.Driver}
	if err := database.Migrate(); err != nil {
		return nil, err
	}
	return database, nil
}

// NewSQLiteDatabase is a shorthand for a migrated SQLite database at path.
func NewSQLiteDatabase(path string) (*Database, error) {
	return NewDatabase(config.Database{Driver: config.DriverSQLite, Path: path})
}

// SQLiteDSN appends the connection options required for restrict-delete
// semantics and concurrent access.
func SQLiteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_foreign_keys=on&_busy_timeout=5000&_journal_mode=WAL"
}

// Migrate creates or updates all tables.
func (d *Database) Migrate() error {
	if err := d.DB.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Ping verifies the underlying connection is alive.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
