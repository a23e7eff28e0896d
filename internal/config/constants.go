package config

const (
	// DefaultDatabasePath is the default path for the SQLite database
	DefaultDatabasePath = "./learnhub.db"

	// DefaultSearchBaseURL is the Google Custom Search JSON API root
	DefaultSearchBaseURL = "https://customsearch.googleapis.com/"

	// devJWTSecret signs tokens outside production when AUTH_JWT_SECRET is unset.
	devJWTSecret = "learnhub-development-secret-do-not-use-in-production"
)

const (
	EnvironmentDevelopment = "development"
	EnvironmentProduction  = "production"
	EnvironmentTest        = "test"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)
