package resources

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/learnhub/internal/database"
	"github.com/mrlokans/learnhub/internal/database/dbtest"
	"github.com/mrlokans/learnhub/internal/entities"
)

func newResource(subjectID uint, title string, typ entities.ResourceType, diff entities.Difficulty) *entities.Resource {
	return &entities.Resource{
		Title:      title,
		URL:        "https://example.com/" + title,
		Type:       typ,
		Difficulty: diff,
		SubjectID:  subjectID,
	}
}

func TestRepository_CreateGet(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()
	subject := dbtest.SeedSubject(t, db.DB, "math")

	res := newResource(subject.ID, "calculus", entities.TypeVideo, entities.DifficultyBeginner)
	require.NoError(t, repo.Create(ctx, res))
	assert.Equal(t, entities.SourceOther, res.Source)

	got, err := repo.GetByID(ctx, res.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Subject)
	assert.Equal(t, "math", got.Subject.Name)
	assert.Nil(t, got.Stats)

	byURL, err := repo.FindByURL(ctx, "https://example.com/calculus")
	require.NoError(t, err)
	assert.Equal(t, res.ID, byURL.ID)
}

func TestRepository_CreateUnknownSubject(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db.DB)

	err := repo.Create(context.Background(), newResource(777, "orphan", entities.TypeVideo, entities.DifficultyBeginner))
	assert.ErrorIs(t, err, database.ErrMissingReference)
}

func TestRepository_Update(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()
	subject := dbtest.SeedSubject(t, db.DB, "math")
	res := dbtest.SeedResource(t, db.DB, subject, "algebra")

	title := "Algebra II"
	diff := entities.DifficultyAdvanced
	got, err := repo.Update(ctx, res.ID, Update{Title: &title, Difficulty: &diff})
	require.NoError(t, err)
	assert.Equal(t, "Algebra II", got.Title)
	assert.Equal(t, entities.DifficultyAdvanced, got.Difficulty)
	assert.Equal(t, entities.TypeArticle, got.Type)

	_, err = repo.Update(ctx, 999, Update{Title: &title})
	assert.ErrorIs(t, err, database.ErrNotFound)
}

func TestRepository_DeleteRestricted(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()
	subject := dbtest.SeedSubject(t, db.DB, "math")
	res := dbtest.SeedResource(t, db.DB, subject, "geometry")
	user := dbtest.SeedUser(t, db.DB, "u@example.com", entities.RoleStudent)

	bookmark := &entities.Bookmark{UserID: user.ID, ResourceID: res.ID}
	require.NoError(t, db.DB.Create(bookmark).Error)

	assert.ErrorIs(t, repo.Delete(ctx, res.ID), database.ErrInUse)

	require.NoError(t, db.DB.Delete(bookmark).Error)
	assert.NoError(t, repo.Delete(ctx, res.ID))
	assert.ErrorIs(t, repo.Delete(ctx, res.ID), database.ErrNotFound)
}

func TestRepository_DeleteCascadesStats(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db.DB)
	subject := dbtest.SeedSubject(t, db.DB, "math")
	res := dbtest.SeedResource(t, db.DB, subject, "stats")
	require.NoError(t, db.DB.Create(&entities.ResourceStats{ResourceID: res.ID, ReviewCount: 1}).Error)

	assert.NoError(t, repo.Delete(context.Background(), res.ID))
}

func TestRepository_List(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()
	math := dbtest.SeedSubject(t, db.DB, "math")
	bio := dbtest.SeedSubject(t, db.DB, "biology")

	require.NoError(t, repo.Create(ctx, newResource(math.ID, "Intro Calculus", entities.TypeVideo, entities.DifficultyBeginner)))
	require.NoError(t, repo.Create(ctx, newResource(math.ID, "Advanced Calculus", entities.TypeCourse, entities.DifficultyAdvanced)))
	require.NoError(t, repo.Create(ctx, newResource(bio.ID, "Cells", entities.TypeVideo, entities.DifficultyBeginner)))

	tests := []struct {
		name   string
		filter Filter
		want   int64
	}{
		{"all", Filter{}, 3},
		{"by subject name", Filter{Subject: "MATH"}, 2},
		{"by type", Filter{Type: entities.TypeVideo}, 2},
		{"by difficulty", Filter{Difficulty: entities.DifficultyAdvanced}, 1},
		{"by keyword", Filter{Keyword: "calculus"}, 2},
		{"combined", Filter{Subject: "math", Type: entities.TypeVideo, Keyword: "intro"}, 1},
		{"no match", Filter{Subject: "history"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, total, err := repo.List(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, total)
			assert.Len(t, items, int(tt.want))
		})
	}
}

func TestRepository_ListPaging(t *testing.T) {
	db := dbtest.Open(t)
	repo := NewRepository(db.DB)
	ctx := context.Background()
	subject := dbtest.SeedSubject(t, db.DB, "math")
	for i := 0; i < 12; i++ {
		require.NoError(t, repo.Create(ctx, newResource(subject.ID, fmt.Sprintf("r%02d", i), entities.TypeArticle, entities.DifficultyBeginner)))
	}

	page2, total, err := repo.List(ctx, Filter{Page: 2, Limit: 5})
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	assert.Len(t, page2, 5)

	page3, _, err := repo.List(ctx, Filter{Page: 3, Limit: 5})
	require.NoError(t, err)
	assert.Len(t, page3, 2)
}

func TestFilter_Normalize(t *testing.T) {
	f := Filter{Page: 0, Limit: 1000}
	f.Normalize()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, MaxLimit, f.Limit)

	f = Filter{Limit: -1}
	f.Normalize()
	assert.Equal(t, DefaultLimit, f.Limit)
}
