package memory_test

import (
	"context"
	"testing"

	"github.com/Leopold1975/signage_control/internal/signage/domain/models"
	repo "github.com/Leopold1975/signage_control/internal/signage/repository/contentrepo"
	"github.com/Leopold1975/signage_control/internal/signage/repository/contentrepo/memory"
	"github.com/stretchr/testify/require"
)

func TestContentMemoryRepo(t *testing.T) {
	ctx := context.Background()
	r := memory.New[models.Slide](memory.SlidesByOrder)

	second, err := r.Create(ctx, models.Slide{Title: "second", Order: 2, IsActive: true})
	require.NoError(t, err)
	require.NotEmpty(t, second.ID)
	require.False(t, second.CreatedAt.IsZero())

	first, err := r.Create(ctx, models.Slide{Title: "first", Order: 1, IsActive: false})
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)

	all, err := r.List(ctx, repo.ListRequest{OnlyActive: false})
	require.NoError(t, err)
	require.Len(t, all, 2)
	require.Equal(t, "first", all[0].Title)

	active, err := r.List(ctx, repo.ListRequest{OnlyActive: true})
	require.NoError(t, err)
	require.Len(t, active, 1)
	require.Equal(t, second.ID, active[0].ID)

	first.Title = "renamed"
	first.ID = "ignored"
	updated, err := r.Update(ctx, all[0].ID, first)
	require.NoError(t, err)
	require.Equal(t, all[0].ID, updated.ID)
	require.Equal(t, "renamed", updated.Title)
	require.Equal(t, all[0].CreatedAt, updated.CreatedAt)

	_, err = r.Update(ctx, "missing", first)
	require.ErrorIs(t, err, repo.ErrNotFound)

	deleted, err := r.Delete(ctx, second.ID)
	require.NoError(t, err)
	require.Equal(t, "second", deleted.Title)

	_, err = r.Get(ctx, second.ID)
	require.ErrorIs(t, err, repo.ErrNotFound)

	n, err := r.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestContentMemoryRepoDoesNotShareFeatures(t *testing.T) {
	ctx := context.Background()
	r := memory.New[models.Slide](nil)

	in := models.Slide{Title: "x", Order: 1, Features: []string{"a", "b"}}
	created, err := r.Create(ctx, in)
	require.NoError(t, err)

	in.Features[0] = "changed"

	got, err := r.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, got.Features)

	got.Features[0] = "changed"

	list, err := r.List(ctx, repo.ListRequest{OnlyActive: false})
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, list[0].Features)

	list[0].Features[1] = "changed"

	got, err = r.Get(ctx, created.ID)
	require.NoError(t, err)
	require.Equal(t, []string{"a", "b"}, got.Features)
}
