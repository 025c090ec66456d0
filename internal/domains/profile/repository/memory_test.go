package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"memorial-backend/internal/domains/profile/model"
)

func seedProfile(slug, owner string) *model.Profile {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	return &model.Profile{
		ID:           "prof-" + slug,
		Slug:         slug,
		Name:         "Jane Doe",
		CreatedBy:    owner,
		Family:       []model.FamilyMember{},
		LifePhotos:   []model.LifePhoto{},
		Contributors: []model.Contributor{},
		Comments:     []model.Comment{},
		Stories:      []model.Story{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestMemoryRepositoryCreateAndGet(t *testing.T) {
	repo := NewMemoryProfileRepository()
	ctx := context.Background()

	p := seedProfile("jane-doe", "owner@example.com")
	require.NoError(t, repo.Create(ctx, p))
	assert.Equal(t, int64(1), p.Version)

	got, err := repo.GetBySlug(ctx, "jane-doe")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", got.Name)
	assert.Equal(t, int64(1), got.Version)
}

func TestMemoryRepositoryCreateDuplicateSlug(t *testing.T) {
	repo := NewMemoryProfileRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, seedProfile("jane-doe", "a@example.com")))
	err := repo.Create(ctx, seedProfile("jane-doe", "b@example.com"))
	assert.ErrorIs(t, err, model.ErrSlugTaken)
}

func TestMemoryRepositoryGetMissing(t *testing.T) {
	repo := NewMemoryProfileRepository()

	_, err := repo.GetBySlug(context.Background(), "nope")
	assert.ErrorIs(t, err, model.ErrProfileNotFound)
}

func TestMemoryRepositoryHandsOutCopies(t *testing.T) {
	repo := NewMemoryProfileRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, seedProfile("jane-doe", "owner@example.com")))

	first, err := repo.GetBySlug(ctx, "jane-doe")
	require.NoError(t, err)
	first.Name = "Mutated"

	second, err := repo.GetBySlug(ctx, "jane-doe")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", second.Name, "mutating a returned profile must not affect the store")
}

func TestMemoryRepositoryUpdateBumpsVersion(t *testing.T) {
	repo := NewMemoryProfileRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, seedProfile("jane-doe", "owner@example.com")))

	p, err := repo.GetBySlug(ctx, "jane-doe")
	require.NoError(t, err)
	p.Candles = 5
	require.NoError(t, repo.Update(ctx, p))
	assert.Equal(t, int64(2), p.Version)

	got, err := repo.GetBySlug(ctx, "jane-doe")
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.Candles)
	assert.Equal(t, int64(2), got.Version)
}

func TestMemoryRepositoryUpdateDetectsConflict(t *testing.T) {
	repo := NewMemoryProfileRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, seedProfile("jane-doe", "owner@example.com")))

	// Two readers load the same version; the slower writer must lose.
	a, err := repo.GetBySlug(ctx, "jane-doe")
	require.NoError(t, err)
	b, err := repo.GetBySlug(ctx, "jane-doe")
	require.NoError(t, err)

	a.Candles = 1
	require.NoError(t, repo.Update(ctx, a))

	b.Candles = 99
	assert.ErrorIs(t, repo.Update(ctx, b), model.ErrVersionConflict)

	got, err := repo.GetBySlug(ctx, "jane-doe")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got.Candles)
}

func TestMemoryRepositoryUpdateMissing(t *testing.T) {
	repo := NewMemoryProfileRepository()

	err := repo.Update(context.Background(), seedProfile("nope", "owner@example.com"))
	assert.ErrorIs(t, err, model.ErrProfileNotFound)
}

func TestMemoryRepositoryDelete(t *testing.T) {
	repo := NewMemoryProfileRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, seedProfile("jane-doe", "owner@example.com")))
	require.NoError(t, repo.Delete(ctx, "jane-doe"))

	_, err := repo.GetBySlug(ctx, "jane-doe")
	assert.ErrorIs(t, err, model.ErrProfileNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, "jane-doe"), model.ErrProfileNotFound)
}

func TestMemoryRepositoryDeleteByOwner(t *testing.T) {
	repo := NewMemoryProfileRepository()
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, seedProfile("jane-doe", "owner@example.com")))
	require.NoError(t, repo.Create(ctx, seedProfile("john-doe", "owner@example.com")))
	require.NoError(t, repo.Create(ctx, seedProfile("other", "someone@example.com")))

	deleted, err := repo.DeleteByOwner(ctx, "owner@example.com")
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)

	remaining, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "other", remaining[0].Slug)
}
