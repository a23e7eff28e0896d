// Package bookmarks stores the resources each user has saved.
package bookmarks

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/learnhub/internal/database"
	"github.com/mrlokans/learnhub/internal/entities"
)

// Repository implements http.BookmarkStore.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create bookmarks resourceID for userID. A second bookmark of the same
// resource yields database.ErrDuplicate.
func (r *Repository) Create(ctx context.Context, userID, resourceID uint) (*entities.Bookmark, error) {
	b := &entities.Bookmark{UserID: userID, ResourceID: resourceID}
	if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error; err != nil {
		return nil, database.TranslateWrite(err)
	}
	return b, nil
}

// ListForUser returns only the caller's bookmarks, newest first.
func (r *Repository) ListForUser(ctx context.Context, userID uint) ([]entities.Bookmark, error) {
	var out []entities.Bookmark
	err := r.db.WithContext(ctx).
		Preload("Resource").
		Preload("Resource.Subject").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

// Delete removes bookmark id if it belongs to userID. Someone else's
// bookmark is reported as database.ErrNotFound.
func (r *Repository) Delete(ctx context.Context, userID, id uint) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&entities.Bookmark{})
	if res.Error != nil {
		return database.TranslateDelete(res.Error)
	}
	if res.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}
