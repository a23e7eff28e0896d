// Package resources stores catalogued learning resources.
package resources

import (
	"context"
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/learnhub/internal/database"
	"github.com/mrlokans/learnhub/internal/entities"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Filter narrows a catalogue listing. Zero values are ignored.
type Filter struct {
	Subject    string // name or slug
	Type       entities.ResourceType
	Difficulty entities.Difficulty
	Keyword    string
	Page       int
	Limit      int
}

// Normalize applies paging defaults and caps.
func (f *Filter) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 {
		f.Limit = DefaultLimit
	}
	if f.Limit > MaxLimit {
		f.Limit = MaxLimit
	}
}

// Update holds the optional fields of a partial update.
type Update struct {
	Title       *string
	Description *string
	URL         *string
	Source      *entities.ResourceSource
	Type        *entities.ResourceType
	Difficulty  *entities.Difficulty
	SubjectID   *uint
}

func (u Update) columns() map[string]any {
	cols := map[string]any{}
	if u.Title != nil {
		cols["title"] = *u.Title
	}
	if u.Description != nil {
		cols["description"] = *u.Description
	}
	if u.URL != nil {
		cols["url"] = *u.URL
	}
	if u.Source != nil {
		cols["source"] = *u.Source
	}
	if u.Type != nil {
		cols["type"] = *u.Type
	}
	if u.Difficulty != nil {
		cols["difficulty"] = *u.Difficulty
	}
	if u.SubjectID != nil {
		cols["subject_id"] = *u.SubjectID
	}
	return cols
}

// Repository implements http.ResourceStore.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts res. An unknown SubjectID yields database.ErrMissingReference.
func (r *Repository) Create(ctx context.Context, res *entities.Resource) error {
	if res.Source == "" {
		res.Source = entities.SourceOther
	}
	err := r.db.WithContext(ctx).Omit(clause.Associations).Create(res).Error
	return database.TranslateWrite(err)
}

// GetByID returns a resource with its subject and stats preloaded.
func (r *Repository) GetByID(ctx context.Context, id uint) (*entities.Resource, error) {
	var res entities.Resource
	err := r.db.WithContext(ctx).Preload("Subject").Preload("Stats").First(&res, id).Error
	if err != nil {
		return nil, database.TranslateRead(err)
	}
	return &res, nil
}

// FindByURL returns the oldest resource with the exact url.
func (r *Repository) FindByURL(ctx context.Context, url string) (*entities.Resource, error) {
	var res entities.Resource
	err := r.db.WithContext(ctx).Preload("Subject").
		Where("url = ?", strings.TrimSpace(url)).
		Order("id ASC").First(&res).Error
	if err != nil {
		return nil, database.TranslateRead(err)
	}
	return &res, nil
}

// Exists reports whether a resource with id exists.
func (r *Repository) Exists(ctx context.Context, id uint) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.Resource{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// Update applies a partial update and returns the fresh row.
func (r *Repository) Update(ctx context.Context, id uint, upd Update) (*entities.Resource, error) {
	exists, err := r.Exists(ctx, id)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, database.ErrNotFound
	}

	if cols := upd.columns(); len(cols) > 0 {
		err := r.db.WithContext(ctx).Model(&entities.Resource{}).Where("id = ?", id).Updates(cols).Error
		if err != nil {
			return nil, database.TranslateWrite(err)
		}
	}
	return r.GetByID(ctx, id)
}

// Delete removes a resource. Resources with progress, bookmarks or reviews
// yield database.ErrInUse.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&entities.Resource{}, id)
	if res.Error != nil {
		return database.TranslateDelete(res.Error)
	}
	if res.RowsAffected == 0 {
		return database.ErrNotFound
	}
	return nil
}

// List returns one page of the catalogue matching f, newest first, and the
// total number of matches.
func (r *Repository) List(ctx context.Context, f Filter) ([]entities.Resource, int64, error) {
	f.Normalize()

	query := r.db.WithContext(ctx).Model(&entities.Resource{})
	if s := strings.TrimSpace(f.Subject); s != "" {
		query = query.Joins("JOIN subjects ON subjects.id = resources.subject_id").
			Where("LOWER(subjects.name) = LOWER(?) OR subjects.slug = LOWER(?)", s, s)
	}
	if f.Type != "" {
		query = query.Where("resources.type = ?", f.Type)
	}
	if f.Difficulty != "" {
		query = query.Where("resources.difficulty = ?", f.Difficulty)
	}
	if kw := strings.TrimSpace(f.Keyword); kw != "" {
		like := "%" + strings.ToLower(kw) + "%"
		query = query.Where("LOWER(resources.title) LIKE ? OR LOWER(resources.description) LIKE ?", like, like)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var items []entities.Resource
	err := query.Preload("Subject").
		Order("resources.created_at DESC, resources.id DESC").
		Limit(f.Limit).Offset((f.Page - 1) * f.Limit).
		Find(&items).Error
	return items, total, err
}

func (r *Repository) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&entities.Resource{}).Count(&n).Error
	return n, err
}
