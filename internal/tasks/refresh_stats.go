package tasks

import (
	"context"
	"fmt"
	"time"

	"github.com/mikestefanello/backlite"

	"github.com/mrlokans/learnhub/internal/logger"
)

// StatsRefresher recomputes the per-resource aggregates.
type StatsRefresher interface {
	RefreshAll(ctx context.Context) (int, error)
}

// RefreshResourceStatsTask rebuilds resource_stats from reviews, bookmarks and progress.
type RefreshResourceStatsTask struct{}

// Config returns the queue configuration for stats refresh tasks.
func (t RefreshResourceStatsTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "refresh_resource_stats",
		MaxAttempts: 2,
		Backoff:     time.Minute,
		Timeout:     5 * time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: true,
		},
	}
}

// RefreshResourceStatsProcessor creates a processor function for RefreshResourceStatsTask.
func RefreshResourceStatsProcessor(refresher StatsRefresher, log *logger.Logger) backlite.QueueProcessor[RefreshResourceStatsTask] {
	return func(ctx context.Context, _ RefreshResourceStatsTask) error {
		if refresher == nil {
			return fmt.Errorf("stats refresher not configured")
		}

		start := time.Now()
		n, err := refresher.RefreshAll(ctx)
		if err != nil {
			return fmt.Errorf("refresh resource stats: %w", err)
		}

		log.Info("Refreshed resource stats", "resources", n, "duration", time.Since(start).Round(time.Millisecond))
		return nil
	}
}

// NewRefreshResourceStatsQueue creates a backlite queue for stats refresh tasks.
func NewRefreshResourceStatsQueue(refresher StatsRefresher, log *logger.Logger) backlite.Queue {
	return backlite.NewQueue(RefreshResourceStatsProcessor(refresher, log))
}
