package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/lead-studio/backend/internal/contentgen"
	"github.com/lead-studio/backend/internal/events"
	"github.com/lead-studio/backend/internal/metrics"
	"github.com/lead-studio/backend/internal/models"
	"github.com/lead-studio/backend/internal/repositories"
	"github.com/lead-studio/backend/internal/tracking"
	"go.uber.org/zap"
)

type ContentService struct {
	packages      ContentPackageStore
	videos        VideoAssetStore
	users         UserStore
	audit         AuditLogger
	publisher     events.Publisher
	publicBaseURL string
	log           *zap.Logger
}

func NewContentService(
	packages ContentPackageStore,
	videos VideoAssetStore,
	users UserStore,
	audit AuditLogger,
	publisher events.Publisher,
	publicBaseURL string,
	log *zap.Logger,
) *ContentService {
	return &ContentService{
		packages:      packages,
		videos:        videos,
		users:         users,
		audit:         audit,
		publisher:     publisher,
		publicBaseURL: publicBaseURL,
		log:           log,
	}
}

// Generate renders a draft without saving it.
func (s *ContentService) Generate(params models.CampaignParameters) (contentgen.GeneratedContent, error) {
	if err := params.Validate(); err != nil {
		return contentgen.GeneratedContent{}, invalid("%s", err.Error())
	}
	metrics.ContentGeneratedTotal.WithLabelValues(string(params.Platform), string(params.Tone)).Inc()
	return contentgen.Generate(params), nil
}

// CopyEdits are operator changes to a generated draft. A nil field keeps
// the generated value.
type CopyEdits struct {
	Caption          *string
	Hashtags         []string
	ShotList         []string
	PostingChecklist []string
}

func (e CopyEdits) apply(c contentgen.GeneratedContent) contentgen.GeneratedContent {
	if e.Caption != nil {
		c.Caption = *e.Caption
	}
	if e.Hashtags != nil {
		c.Hashtags = contentgen.NormalizeHashtags(e.Hashtags)
	}
	if e.ShotList != nil {
		c.ShotList = nonEmpty(e.ShotList)
	}
	if e.PostingChecklist != nil {
		c.PostingChecklist = nonEmpty(e.PostingChecklist)
	}
	return c
}

// Create saves a package for the caller. The copy is regenerated from params
// and then overlaid with edits. The caller must have a saved profile, whose
// name becomes the creator label.
func (s *ContentService) Create(ctx context.Context, principal string, params models.CampaignParameters, edits CopyEdits) (*models.ContentPackage, error) {
	if err := params.Validate(); err != nil {
		return nil, invalid("%s", err.Error())
	}

	profile, err := s.users.GetByPrincipal(ctx, principal)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrProfileRequired
		}
		return nil, err
	}

	content := edits.apply(contentgen.Generate(params))
	pkg := &models.ContentPackage{
		Platform:         params.Platform,
		Objective:        params.Objective,
		VehicleModel:     params.VehicleModel,
		Tone:             params.Tone,
		CallToAction:     params.CallToAction,
		Offer:            params.Offer(),
		Caption:          content.Caption,
		Hashtags:         content.Hashtags,
		ShotList:         content.ShotList,
		PostingChecklist: content.PostingChecklist,
		VideoAssets:      []models.VideoAsset{},
		CreatedBy:        profile.Name,
		CreatorPrincipal: principal,
		CreatedAt:        time.Now().UTC(),
	}

	if err := s.packages.Create(ctx, pkg); err != nil {
		return nil, err
	}
	metrics.ContentPackagesSavedTotal.Inc()

	_ = s.audit.Log(ctx, models.AuditLog{
		ActorPrincipal: &principal,
		ActorType:      "user",
		Action:         "content_package_created",
		EntityType:     AuditEntityContentPackage,
		EntityID:       &pkg.ID,
		Meta:           map[string]any{"platform": pkg.Platform, "model": pkg.VehicleModel},
	})

	_ = s.publisher.Publish(ctx, events.StreamContent, events.New(events.EventContentPackageCreated, map[string]any{
		"content_package_id": pkg.ID,
		"created_by":         pkg.CreatedBy,
		"platform":           string(pkg.Platform),
	}))

	s.log.Info("content package saved",
		zap.Int64("content_package_id", pkg.ID),
		zap.String("platform", string(pkg.Platform)),
		zap.String("model", string(pkg.VehicleModel)),
	)
	return pkg, nil
}

// Get returns the package with its video assets.
func (s *ContentService) Get(ctx context.Context, id int64) (*models.ContentPackage, error) {
	pkg, err := s.packages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	videos, err := s.videos.ListByPackages(ctx, []int64{id})
	if err != nil {
		return nil, err
	}
	pkg.VideoAssets = orEmpty(videos[id])
	return pkg, nil
}

func (s *ContentService) List(ctx context.Context, f repositories.ContentPackageFilter) ([]models.ContentPackage, error) {
	packages, err := s.packages.List(ctx, f)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, len(packages))
	for i := range packages {
		ids[i] = packages[i].ID
	}
	videos, err := s.videos.ListByPackages(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range packages {
		packages[i].VideoAssets = orEmpty(videos[packages[i].ID])
	}
	return packages, nil
}

// UpdateCopy applies edits to a saved package's copy.
func (s *ContentService) UpdateCopy(ctx context.Context, id int64, edits CopyEdits) (*models.ContentPackage, error) {
	pkg, err := s.packages.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	content := edits.apply(contentgen.GeneratedContent{
		Caption:          pkg.Caption,
		Hashtags:         pkg.Hashtags,
		ShotList:         pkg.ShotList,
		PostingChecklist: pkg.PostingChecklist,
	})
	pkg.Caption = content.Caption
	pkg.Hashtags = content.Hashtags
	pkg.ShotList = content.ShotList
	pkg.PostingChecklist = content.PostingChecklist

	if err := s.packages.UpdateCopy(ctx, pkg); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *ContentService) AppendHashtags(ctx context.Context, id int64, tags []string) (*models.ContentPackage, error) {
	tags = contentgen.NormalizeHashtags(tags)
	if len(tags) == 0 {
		return nil, invalid("at least one hashtag is required")
	}
	if err := s.packages.AppendHashtags(ctx, id, tags); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// LandingURL builds the public landing link of an existing package.
func (s *ContentService) LandingURL(ctx context.Context, id int64, p tracking.Params) (string, error) {
	if _, err := s.packages.GetByID(ctx, id); err != nil {
		return "", err
	}
	u, err := tracking.LandingURL(s.publicBaseURL, id, p)
	if err != nil {
		return "", invalid("%s", err.Error())
	}
	return u, nil
}

func nonEmpty(items []string) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it) != "" {
			out = append(out, it)
		}
	}
	return out
}

func orEmpty(v []models.VideoAsset) []models.VideoAsset {
	if v == nil {
		return []models.VideoAsset{}
	}
	return v
}
