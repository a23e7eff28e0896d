// Package reviews stores one rating per user per resource.
package reviews

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/learnhub/internal/database"
	"github.com/mrlokans/learnhub/internal/entities"
)

var ErrInvalidRating = errors.New("rating must be between 1 and 5")

// Repository implements http.ReviewStore.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create stores a review. A second review by the same user for the same
// resource yields database.ErrDuplicate.
func (r *Repository) Create(ctx context.Context, userID, resourceID uint, rating int, comment string) (*entities.Review, error) {
	if !entities.ValidRating(rating) {
		return nil, ErrInvalidRating
	}
	review := &entities.Review{
		UserID:     userID,
		ResourceID: resourceID,
		Rating:     rating,
		Comment:    strings.TrimSpace(comment),
	}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(review).Error; err != nil {
		return nil, database.TranslateWrite(err)
	}
	return review, nil
}

// ListForResource returns a resource's reviews, newest first.
func (r *Repository) ListForResource(ctx context.Context, resourceID uint) ([]entities.Review, error) {
	var out []entities.Review
	err := r.db.WithContext(ctx).
		Where("resource_id = ?", resourceID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}
