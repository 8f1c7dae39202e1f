package services

import (
	"context"
	"strings"

	"github.com/lead-studio/backend/internal/models"
	"go.uber.org/zap"
)

type VideoService struct {
	videos   VideoAssetStore
	packages ContentPackageStore
	log      *zap.Logger
}

func NewVideoService(videos VideoAssetStore, packages ContentPackageStore, log *zap.Logger) *VideoService {
	return &VideoService{videos: videos, packages: packages, log: log}
}

type VideoInput struct {
	URL             string
	Status          string
	DurationSeconds int64
	Prompt          string
	AspectRatio     string
}

// Attach records asset metadata on a package. Status defaults to Draft and
// aspect ratio to 16:9.
func (s *VideoService) Attach(ctx context.Context, packageID int64, in VideoInput) (*models.VideoAsset, error) {
	url := strings.TrimSpace(in.URL)
	if url == "" {
		return nil, invalid("please enter a video URL")
	}
	if in.DurationSeconds < 0 {
		return nil, invalid("duration must not be negative")
	}
	if _, err := s.packages.GetByID(ctx, packageID); err != nil {
		return nil, err
	}

	v := &models.VideoAsset{
		ContentPackageID: packageID,
		URL:              url,
		Status:           strings.TrimSpace(in.Status),
		DurationSeconds:  in.DurationSeconds,
		Prompt:           in.Prompt,
		AspectRatio:      strings.TrimSpace(in.AspectRatio),
	}
	if v.Status == "" {
		v.Status = models.VideoStatusDraft
	}
	if v.AspectRatio == "" {
		v.AspectRatio = models.DefaultVideoAspectRate
	}

	if err := s.videos.Create(ctx, v); err != nil {
		return nil, err
	}
	s.log.Info("video asset attached", zap.Int64("content_package_id", packageID), zap.Int64("video_id", v.ID))
	return v, nil
}

func (s *VideoService) UpdateStatus(ctx context.Context, packageID, videoID int64, status string) error {
	status = strings.TrimSpace(status)
	if status == "" {
		return invalid("status is required")
	}
	return s.videos.UpdateStatus(ctx, packageID, videoID, status)
}

func (s *VideoService) Remove(ctx context.Context, packageID, videoID int64) error {
	if err := s.videos.Delete(ctx, packageID, videoID); err != nil {
		return err
	}
	s.log.Info("video asset removed", zap.Int64("content_package_id", packageID), zap.Int64("video_id", videoID))
	return nil
}
