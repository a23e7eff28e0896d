package bookmarks

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/learnhub/internal/database"
	"github.com/mrlokans/learnhub/internal/database/dbtest"
	"github.com/mrlokans/learnhub/internal/entities"
)

func TestRepository_CreateDuplicate(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()
	user := dbtest.SeedUser(t, db.DB, "b@example.com", entities.RoleStudent)
	res := dbtest.SeedResource(t, db.DB, dbtest.SeedSubject(t, db.DB, "art"), "color")

	_, err := repo.Create(ctx, user.ID, res.ID)
	require.NoError(t, err)

	_, err = repo.Create(ctx, user.ID, res.ID)
	assert.ErrorIs(t, err, database.ErrDuplicate)

	var count int64
	require.NoError(t, db.DB.Model(&entities.Bookmark{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRepository_ConcurrentCreateOneWinner(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db.DB)
	user := dbtest.SeedUser(t, db.DB, "race@example.com", entities.RoleStudent)
	res := dbtest.SeedResource(t, db.DB, dbtest.SeedSubject(t, db.DB, "art"), "race")

	var ok, dup int32
	var wg sync.WaitGroup
	for i := 0; i < 6; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.Create(context.Background(), user.ID, res.ID)
			switch {
			case err == nil:
				atomic.AddInt32(&ok, 1)
			case assert.ErrorIs(t, err, database.ErrDuplicate):
				atomic.AddInt32(&dup, 1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), ok)
	assert.Equal(t, int32(5), dup)
}

func TestRepository_CreateUnknownResource(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db.DB)
	user := dbtest.SeedUser(t, db.DB, "u@example.com", entities.RoleStudent)

	_, err := repo.Create(context.Background(), user.ID, 999)
	assert.ErrorIs(t, err, database.ErrMissingReference)
}

func TestRepository_ListAndDeleteScopedToOwner(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()
	subject := dbtest.SeedSubject(t, db.DB, "art")
	alice := dbtest.SeedUser(t, db.DB, "alice@example.com", entities.RoleStudent)
	bob := dbtest.SeedUser(t, db.DB, "bob@example.com", entities.RoleStudent)
	r1 := dbtest.SeedResource(t, db.DB, subject, "one")
	r2 := dbtest.SeedResource(t, db.DB, subject, "two")

	aliceBookmark, err := repo.Create(ctx, alice.ID, r1.ID)
	require.NoError(t, err)
	_, err = repo.Create(ctx, alice.ID, r2.ID)
	require.NoError(t, err)
	_, err = repo.Create(ctx, bob.ID, r1.ID)
	require.NoError(t, err)

	list, err := repo.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.NotNil(t, list[0].Resource)
	require.NotNil(t, list[0].Resource.Subject)
	assert.Equal(t, "art", list[0].Resource.Subject.Name)

	assert.ErrorIs(t, repo.Delete(ctx, bob.ID, aliceBookmark.ID), database.ErrNotFound)
	assert.NoError(t, repo.Delete(ctx, alice.ID, aliceBookmark.ID))

	list, err = repo.ListForUser(ctx, alice.ID)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
