package dto

import (
	"github.com/lead-studio/backend/internal/contentgen"
	"github.com/lead-studio/backend/internal/models"
)

type ErrorResponse struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

type SuccessResponse struct {
	OK   bool `json:"ok"`
	Data any  `json:"data,omitempty"`
}

type LandingURLResponse struct {
	URL string `json:"url"`
}

type RoleResponse struct {
	Principal string          `json:"principal"`
	Role      models.UserRole `json:"role"`
}

type Option struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type LeadFormMetaResponse struct {
	VehicleInterests []string `json:"vehicle_interests"`
	Timeframes       []string `json:"timeframes"`
	Statuses         []Option `json:"statuses"`
}

// PublicContentPackage is what an anonymous landing page visitor sees.
type PublicContentPackage struct {
	ID          int64               `json:"id"`
	Platform    models.Platform     `json:"platform"`
	Model       models.VehicleModel `json:"model"`
	ModelName   string              `json:"model_name"`
	Caption     string              `json:"caption"`
	Hashtags    []string            `json:"hashtags"`
	Offer       models.OfferDetails `json:"offer_details"`
	VideoAssets []PublicVideoAsset  `json:"video_assets"`
}

type PublicVideoAsset struct {
	URL         string `json:"url"`
	AspectRatio string `json:"aspect_ratio"`
}

func NewPublicContentPackage(p *models.ContentPackage) PublicContentPackage {
	videos := make([]PublicVideoAsset, 0, len(p.VideoAssets))
	for _, v := range p.VideoAssets {
		videos = append(videos, PublicVideoAsset{URL: v.URL, AspectRatio: v.AspectRatio})
	}
	return PublicContentPackage{
		ID:          p.ID,
		Platform:    p.Platform,
		Model:       p.VehicleModel,
		ModelName:   contentgen.ModelDisplayName(p.VehicleModel),
		Caption:     p.Caption,
		Hashtags:    p.Hashtags,
		Offer:       p.Offer,
		VideoAssets: videos,
	}
}

// LeadCaptured is returned to the public form; it does not echo lead details.
type LeadCaptured struct {
	ID      int64  `json:"id"`
	Message string `json:"message"`
}
