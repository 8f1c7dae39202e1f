package models

import "time"

type OfferDetails struct {
	Price    int64 `json:"price"`
	Discount int64 `json:"discount"`
	Mileage  int64 `json:"mileage"`
}

// ContentPackage is a saved bundle of generated copy tied to one campaign
// configuration.
type ContentPackage struct {
	ID               int64        `json:"id"`
	Platform         Platform     `json:"platform"`
	Objective        Objective    `json:"campaign_objective"`
	VehicleModel     VehicleModel `json:"model"`
	Tone             Tone         `json:"tone"`
	CallToAction     CallToAction `json:"cta"`
	Offer            OfferDetails `json:"offer_details"`
	Caption          string       `json:"caption"`
	Hashtags         []string     `json:"hashtags"`
	ShotList         []string     `json:"shot_list"`
	PostingChecklist []string     `json:"posting_checklist"`
	VideoAssets      []VideoAsset `json:"video_assets"`
	CreatedBy        string       `json:"created_by"`
	CreatorPrincipal string       `json:"-"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

const (
	VideoStatusDraft       = "Draft"
	DefaultVideoAspectRate = "16:9"
)

// VideoAsset status is a free-text label, unrelated to LeadStatus.
type VideoAsset struct {
	ID               int64     `json:"id"`
	ContentPackageID int64     `json:"content_package_id"`
	URL              string    `json:"url"`
	Status           string    `json:"status"`
	DurationSeconds  int64     `json:"duration"`
	Prompt           string    `json:"prompt"`
	AspectRatio      string    `json:"aspect_ratio"`
	CreatedAt        time.Time `json:"created_at"`
}
