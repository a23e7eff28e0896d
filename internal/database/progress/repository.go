// Package progress records how far each user has got through a resource.
package progress

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/learnhub/internal/database"
	"github.com/mrlokans/learnhub/internal/entities"
)

var ErrInvalidPercentage = errors.New("percentage must be between 0 and 100")

// Repository implements http.ProgressStore.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert records percentage for (userID, resourceID) in a single
// INSERT ... ON CONFLICT statement; the status follows the percentage.
// An unknown resource or user yields database.ErrMissingReference.
func (r *Repository) Upsert(ctx context.Context, userID, resourceID uint, percentage int) (*entities.Progress, error) {
	if percentage < entities.MinPercentage || percentage > entities.MaxPercentage {
		return nil, ErrInvalidPercentage
	}

	now := time.Now().UTC()
	row := entities.Progress{
		UserID:       userID,
		ResourceID:   resourceID,
		Status:       entities.StatusForPercentage(percentage),
		Percentage:   percentage,
		LastAccessed: now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := r.db.WithContext(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "resource_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "percentage", "last_accessed", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return nil, database.TranslateWrite(err)
	}

	return r.Get(ctx, userID, resourceID)
}

// Get returns the progress row for (userID, resourceID).
func (r *Repository) Get(ctx context.Context, userID, resourceID uint) (*entities.Progress, error) {
	var p entities.Progress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND resource_id = ?", userID, resourceID).
		First(&p).Error
	if err != nil {
		return nil, database.TranslateRead(err)
	}
	return &p, nil
}

// ListForUser returns the user's progress, most recently accessed first.
func (r *Repository) ListForUser(ctx context.Context, userID uint) ([]entities.Progress, error) {
	var out []entities.Progress
	err := r.db.WithContext(ctx).
		Preload("Resource").
		Where("user_id = ?", userID).
		Order("last_accessed DESC").
		Find(&out).Error
	return out, err
}
