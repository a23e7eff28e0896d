// Package dbtest opens throwaway migrated databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/mrlokans/learnhub/internal/database"
	"github.com/mrlokans/learnhub/internal/entities"
)

// Open returns a migrated SQLite database living in t.TempDir().
func Open(t *testing.T) *database.Database {
	t.Helper()
	db, err := database.NewSQLiteDatabase(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	db.DB = db.DB.Session(&gorm.Session{Logger: gormlogger.Default.LogMode(gormlogger.Silent)})
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// SeedUser inserts a user with the given email and role.
func SeedUser(t *testing.T, db *gorm.DB, email string, role entities.Role) *entities.User {
	t.Helper()
	u := &entities.User{Email: email, Name: email, PasswordHash: "x", Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

// SeedSubject inserts a subject.
func SeedSubject(t *testing.T, db *gorm.DB, name string) *entities.Subject {
	t.Helper()
	s := &entities.Subject{Name: name, Slug: name}
	require.NoError(t, db.Create(s).Error)
	return s
}

// SeedResource inserts a resource under subject.
func SeedResource(t *testing.T, db *gorm.DB, subject *entities.Subject, title string) *entities.Resource {
	t.Helper()
	r := &entities.Resource{
		Title:      title,
		URL:        "https://example.com/" + title,
		Source:     entities.SourceOther,
		Type:       entities.TypeArticle,
		Difficulty: entities.DifficultyBeginner,
		SubjectID:  subject.ID,
	}
	require.NoError(t, db.Create(r).Error)
	return r
}
