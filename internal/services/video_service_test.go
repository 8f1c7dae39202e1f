package services

import (
	"context"
	"testing"

	"github.com/lead-studio/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVideoService_AttachDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pkg := f.savedPackage(t, "u1")

	v, err := f.video.Attach(ctx, pkg.ID, VideoInput{URL: " https://cdn.example/v.mp4 ", DurationSeconds: 30})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/v.mp4", v.URL)
	assert.Equal(t, models.VideoStatusDraft, v.Status)
	assert.Equal(t, models.DefaultVideoAspectRate, v.AspectRatio)
	assert.Equal(t, int64(30), v.DurationSeconds)

	got, err := f.content.Get(ctx, pkg.ID)
	require.NoError(t, err)
	require.Len(t, got.VideoAssets, 1)
	assert.Equal(t, v.ID, got.VideoAssets[0].ID)
}

func TestVideoService_AttachErrors(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pkg := f.savedPackage(t, "u1")

	_, err := f.video.Attach(ctx, pkg.ID, VideoInput{URL: "  "})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.video.Attach(ctx, 999, VideoInput{URL: "https://cdn.example/v.mp4"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestVideoService_UpdateStatusAndRemove(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pkg := f.savedPackage(t, "u1")
	v, err := f.video.Attach(ctx, pkg.ID, VideoInput{URL: "https://cdn.example/v.mp4", AspectRatio: "9:16"})
	require.NoError(t, err)
	assert.Equal(t, "9:16", v.AspectRatio)

	require.NoError(t, f.video.UpdateStatus(ctx, pkg.ID, v.ID, "Published"))
	got, err := f.content.Get(ctx, pkg.ID)
	require.NoError(t, err)
	assert.Equal(t, "Published", got.VideoAssets[0].Status)

	assert.ErrorIs(t, f.video.UpdateStatus(ctx, pkg.ID, v.ID, ""), ErrInvalidInput)
	assert.ErrorIs(t, f.video.UpdateStatus(ctx, pkg.ID+1, v.ID, "Draft"), ErrNotFound)

	require.NoError(t, f.video.Remove(ctx, pkg.ID, v.ID))
	assert.ErrorIs(t, f.video.Remove(ctx, pkg.ID, v.ID), ErrNotFound)

	got, err = f.content.Get(ctx, pkg.ID)
	require.NoError(t, err)
	assert.Empty(t, got.VideoAssets)
}
