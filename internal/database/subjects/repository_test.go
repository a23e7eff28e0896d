package subjects

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/learnhub/internal/database"
	"github.com/mrlokans/learnhub/internal/database/dbtest"
	"github.com/mrlokans/learnhub/internal/entities"
)

func TestRepository_GetOrCreate(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()

	first, err := repo.GetOrCreate(ctx, "Linear Algebra")
	require.NoError(t, err)
	assert.Equal(t, "linear-algebra", first.Slug)

	t.Run("same name different case reuses row", func(t *testing.T) {
		again, err := repo.GetOrCreate(ctx, "linear algebra")
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
	})

	t.Run("slug form reuses row", func(t *testing.T) {
		again, err := repo.GetOrCreate(ctx, "linear-algebra")
		require.NoError(t, err)
		assert.Equal(t, first.ID, again.ID)
	})

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestRepository_SlugCollisionsStayDistinct(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()

	c, err := repo.GetOrCreate(ctx, "C")
	require.NoError(t, err)
	sharp, err := repo.GetOrCreate(ctx, "C#")
	require.NoError(t, err)
	plus, err := repo.GetOrCreate(ctx, "C++")
	require.NoError(t, err)

	assert.Equal(t, "C", c.Name)
	assert.Equal(t, "C#", sharp.Name)
	assert.Equal(t, "C++", plus.Name)
	assert.Equal(t, "c", c.Slug)
	assert.Equal(t, "c-2", sharp.Slug)
	assert.Equal(t, "c-3", plus.Slug)
	assert.NotEqual(t, c.ID, sharp.ID)
	assert.NotEqual(t, sharp.ID, plus.ID)

	again, err := repo.GetOrCreate(ctx, "c#")
	require.NoError(t, err)
	assert.Equal(t, sharp.ID, again.ID)

	_, err = repo.Create(ctx, "c++", "")
	assert.ErrorIs(t, err, database.ErrDuplicate)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestRepository_CreateDistinctNameSharingSlug(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, "C", "")
	require.NoError(t, err)
	sharp, err := repo.Create(ctx, "C#", "")
	require.NoError(t, err)
	assert.Equal(t, "c-2", sharp.Slug)

	_, err = repo.Create(ctx, "PHYSICS", "")
	require.NoError(t, err)
	_, err = repo.Create(ctx, "physics", "")
	assert.ErrorIs(t, err, database.ErrDuplicate)
}

func TestRepository_CreateValidation(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()

	_, err := repo.Create(ctx, "   ", "")
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = repo.Create(ctx, "Physics", "")
	require.NoError(t, err)
	_, err = repo.Create(ctx, "Physics", "again")
	assert.ErrorIs(t, err, database.ErrDuplicate)
}

func TestRepository_DeleteRestrictedByResource(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()

	subject, err := repo.Create(ctx, "Chemistry", "")
	require.NoError(t, err)
	resource := dbtest.SeedResource(t, db.DB, subject, "atoms")

	err = repo.Delete(ctx, subject.ID)
	assert.ErrorIs(t, err, database.ErrInUse)

	require.NoError(t, db.DB.Delete(&entities.Resource{}, resource.ID).Error)
	assert.NoError(t, repo.Delete(ctx, subject.ID))

	_, err = repo.GetByID(ctx, subject.ID)
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_DeleteMissing(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db.DB)

	assert.ErrorIs(t, repo.Delete(context.Background(), 404), database.ErrNotFound)
}

func TestRepository_List(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()

	for _, name := range []string{"Zoology", "Art", "Music"} {
		_, err := repo.Create(ctx, name, "")
		require.NoError(t, err)
	}

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Art", list[0].Name)
	assert.Equal(t, "Zoology", list[2].Name)
}
