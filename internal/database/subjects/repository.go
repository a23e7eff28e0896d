// Package subjects manages the subject catalogue that resources are filed under.
package subjects

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"gorm.io/gorm"

	"github.com/mrlokans/learnhub/internal/database"
	"github.com/mrlokans/learnhub/internal/entities"
)

var ErrInvalidName = errors.New("subject name is required")

// Repository implements http.SubjectStore.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// maxCreateAttempts bounds retries when a concurrent insert claims the slug
// picked for a new subject.
const maxCreateAttempts = 3

// Create inserts a new subject. Names are unique case-insensitively and a
// taken name yields database.ErrDuplicate. Names that slugify alike ("C",
// "C#", "C++") are distinct subjects and get suffixed slugs ("c", "c-2", "c-3").
func (r *Repository) Create(ctx context.Context, name, description string) (*entities.Subject, error) {
	name = strings.TrimSpace(name)
	base := slug.Make(name)
	if name == "" || base == "" {
		return nil, ErrInvalidName
	}

	for attempt := 0; attempt < maxCreateAttempts; attempt++ {
		if _, err := r.findByName(ctx, name); err == nil {
			return nil, database.ErrDuplicate
		} else if !errors.Is(err, database.ErrNotFound) {
			return nil, err
		}

		s, err := r.availableSlug(ctx, base)
		if err != nil {
			return nil, err
		}
		subject := &entities.Subject{Name: name, Slug: s, Description: strings.TrimSpace(description)}
		err = database.TranslateWrite(r.db.WithContext(ctx).Create(subject).Error)
		if err == nil {
			return subject, nil
		}
		if !errors.Is(err, database.ErrDuplicate) {
			return nil, err
		}
	}
	return nil, database.ErrDuplicate
}

// availableSlug returns base, or base with the lowest free numeric suffix.
func (r *Repository) availableSlug(ctx context.Context, base string) (string, error) {
	var taken []string
	err := r.db.WithContext(ctx).Model(&entities.Subject{}).
		Where("slug = ? OR slug LIKE ?", base, base+"-%").
		Pluck("slug", &taken).Error
	if err != nil {
		return "", err
	}
	used := make(map[string]struct{}, len(taken))
	for _, t := range taken {
		used[t] = struct{}{}
	}
	candidate := base
	for n := 2; ; n++ {
		if _, ok := used[candidate]; !ok {
			return candidate, nil
		}
		candidate = fmt.Sprintf("%s-%d", base, n)
	}
}

// GetOrCreate resolves a subject by case-insensitive name or exact slug,
// creating it when absent. Concurrent creators converge on the same row.
func (r *Repository) GetOrCreate(ctx context.Context, name string) (*entities.Subject, error) {
	existing, err := r.FindByName(ctx, name)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, database.ErrNotFound) {
		return nil, err
	}

	created, err := r.Create(ctx, name, "")
	if errors.Is(err, database.ErrDuplicate) {
		// Lost the race to another request.
		return r.FindByName(ctx, name)
	}
	return created, err
}

// FindByName matches name against subject names (case-insensitive), then
// against stored slugs verbatim. The input is never slugified, so "C#" does
// not resolve to "C".
func (r *Repository) FindByName(ctx context.Context, name string) (*entities.Subject, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidName
	}
	subject, err := r.findByName(ctx, name)
	if !errors.Is(err, database.ErrNotFound) {
		return subject, err
	}

	var bySlug entities.Subject
	err = r.db.WithContext(ctx).Where("slug = ?", strings.ToLower(name)).First(&bySlug).Error
	if err != nil {
		return nil, database.TranslateRead(err)
	}
	return &bySlug, nil
}

func (r *Repository) findByName(ctx context.Context, name string) (*entities.Subject, error) {
	var subject entities.Subject
	err := r.db.WithContext(ctx).Where("LOWER(name) = LOWER(?)", name).First(&subject).Error
	if err != nil {
		return nil, database.TranslateRead(err)
	}
	return &subject, nil
}

func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Subject, error) {
	var subject entities.Subject
	if err := r.db.WithContext(ctx).First(&subject, id).Error; err != nil {
		return nil, database.TranslateRead(err)
	}
	return &subject, nil
}

// List returns all subjects ordered by name.
func (r *Repository) List(ctx context.Context) ([]entities.Subject, error) {
	var out []entities.Subject
	err := r.db.WithContext(ctx).Order("name ASC").Find(&out).Error
	return out, err
}

// Delete removes a subject. Subjects still referenced by resources yield
// database.ErrInUse.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.Subject{}, id)
	if res.Error != nil {
		return database.TranslateDelete(res.Error)
	}
	if res.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.Subject{}).Count(&n).Error
	return n, err
}
