// Package users provides database operations for user accounts.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	user, err := repo.GetByEmail(ctx, "a@b.com")
package users

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/mrlokans/learnhub/internal/database"
	"github.com/mrlokans/learnhub/internal/entities"
)

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts user. A taken email yields database.ErrDuplicate.
func (r *Repository) Create(ctx context.Context, user *entities.User) error {
	user.Email = NormalizeEmail(user.Email)
	if user.Role == "" {
		user.Role = entities.RoleStudent
	}
	return database.TranslateWrite(r.db.WithContext(ctx).Create(user).Error)
}

// GetByID retrieves a user by ID.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.User, error) {
	var user entities.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, database.TranslateRead(err)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email, ignoring case.
func (r *Repository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	var user entities.User
	err := r.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&user).Error
	if err != nil {
		return nil, database.TranslateRead(err)
	}
	return &user, nil
}

// SetRole changes a user's role.
func (r *Repository) SetRole(ctx context.Context, id uint, role entities.Role) error {
	res := r.db.WithContext(ctx).Model(&entities.User{}).Where("id = ?", id).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}

// Count returns the number of registered users.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.User{}).Count(&n).Error
	return n, err
}

// NormalizeEmail lowercases and trims an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
