// Package stats recomputes per-resource aggregates from interaction tables.
package stats

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/mrlokans/learnhub/internal/entities"
)

const aggregateSQL = `
SELECT r.id AS resource_id,
	(SELECT COUNT(*) FROM reviews rv WHERE rv.resource_id = r.id) AS review_count,
	(SELECT COALESCE(AVG(rv.rating), 0) FROM reviews rv WHERE rv.resource_id = r.id) AS average_rating,
	(SELECT COUNT(*) FROM bookmarks b WHERE b.resource_id = r.id) AS bookmark_count,
	(SELECT COUNT(*) FROM progress p WHERE p.resource_id = r.id AND p.status = ?) AS completion_count
FROM resources r
ORDER BY r.id`

// Repository implements tasks.StatsRefresher.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// RefreshAll recomputes aggregates for every resource and upserts them.
// Returns the number of resources refreshed.
func (r *Repository) RefreshAll(ctx context.Context) (int, error) {
	var rows []entities.ResourceStats
	if err := r.db.WithContext(ctx).Raw(aggregateSQL, entities.StatusCompleted).Scan(&rows).Error; err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}

	now := time.Now().UTC()
	for i := range rows {
		rows[i].RefreshedAt = now
	}

	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "resource_id"}},
		UpdateAll: true,
	}).CreateInBatches(rows, 200).Error
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// Get returns the stored aggregates for a resource.
func (r *Repository) Get(ctx context.Context, resourceID uint) (*entities.ResourceStats, error) {
	var s entities.ResourceStats
	if err := r.db.WithContext(ctx).First(&s, "resource_id = ?", resourceID).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
