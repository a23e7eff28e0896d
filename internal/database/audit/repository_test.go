package audit

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/learnhub/internal/database/dbtest"
	"github.com/mrlokans/learnhub/internal/entities"
)

func TestRepository_LogEvent(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db.DB)

	event := &entities.AuditEvent{
		UserID:      1,
		EventType:   entities.AuditEventAuth,
		Action:      "login",
		Description: "User logged in",
		Status:      entities.AuditStatusSuccess,
	}

	require.NoError(t, repo.LogEvent(context.Background(), event))
	assert.NotZero(t, event.ID)
	assert.False(t, event.CreatedAt.IsZero())
}

func TestRepository_Find(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{
			UserID:    1,
			EventType: entities.AuditEventAuth,
			Action:    "login",
			Status:    entities.AuditStatusSuccess,
			CreatedAt: time.Now().Add(time.Duration(-i) * time.Hour),
		}))
	}
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{
			UserID:    2,
			EventType: entities.AuditEventDelete,
			Action:    "resource_delete",
			Status:    entities.AuditStatusSuccess,
		}))
	}

	t.Run("all events", func(t *testing.T) {
		events, total, err := repo.Find(ctx, Query{})
		require.NoError(t, err)
		assert.Equal(t, int64(20), total)
		assert.Len(t, events, 20)
	})

	t.Run("by user", func(t *testing.T) {
		_, total, err := repo.Find(ctx, Query{UserID: 1})
		require.NoError(t, err)
		assert.Equal(t, int64(15), total)
	})

	t.Run("by type", func(t *testing.T) {
		events, total, err := repo.Find(ctx, Query{EventType: entities.AuditEventDelete})
		require.NoError(t, err)
		assert.Equal(t, int64(5), total)
		for _, e := range events {
			assert.Equal(t, entities.AuditEventDelete, e.EventType)
		}
	})

	t.Run("since", func(t *testing.T) {
		_, total, err := repo.Find(ctx, Query{UserID: 1, Since: time.Now().Add(-150 * time.Minute)})
		require.NoError(t, err)
		assert.Equal(t, int64(3), total)
	})

	t.Run("pagination and ordering", func(t *testing.T) {
		page1, _, err := repo.Find(ctx, Query{UserID: 1, Limit: 5})
		require.NoError(t, err)
		page2, _, err := repo.Find(ctx, Query{UserID: 1, Limit: 5, Offset: 5})
		require.NoError(t, err)
		require.Len(t, page1, 5)
		require.Len(t, page2, 5)
		assert.NotEqual(t, page1[0].ID, page2[0].ID)
		for i := 1; i < len(page1); i++ {
			assert.False(t, page1[i].CreatedAt.After(page1[i-1].CreatedAt))
		}
	})
}

func TestRepository_DeleteOlderThan(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()
	now := time.Now()

	require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{Action: "old", CreatedAt: now.Add(-48 * time.Hour)}))
	require.NoError(t, repo.LogEvent(ctx, &entities.AuditEvent{Action: "new", CreatedAt: now.Add(-1 * time.Hour)}))

	deleted, err := repo.DeleteOlderThan(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	events, _, err := repo.Find(ctx, Query{})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "new", events[0].Action)
}
