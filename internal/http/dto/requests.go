package dto

import (
	"github.com/lead-studio/backend/internal/contentgen"
	"github.com/lead-studio/backend/internal/models"
)

// Content

// CampaignParametersRequest accepts amounts as numbers or numeric strings.
type CampaignParametersRequest struct {
	Platform     string            `json:"platform"`
	Objective    string            `json:"objective"`
	Model        string            `json:"model"`
	Tone         string            `json:"tone"`
	CallToAction string            `json:"cta"`
	Price        contentgen.Amount `json:"price"`
	Discount     contentgen.Amount `json:"discount"`
	Mileage      contentgen.Amount `json:"mileage"`
}

func (r CampaignParametersRequest) Params() models.CampaignParameters {
	return models.CampaignParameters{
		Platform:     models.Platform(r.Platform),
		Objective:    models.Objective(r.Objective),
		VehicleModel: models.VehicleModel(r.Model),
		Tone:         models.Tone(r.Tone),
		CallToAction: models.CallToAction(r.CallToAction),
		Price:        r.Price.Int64(),
		Discount:     r.Discount.Int64(),
		Mileage:      r.Mileage.Int64(),
	}
}

// CreateContentPackageRequest saves a package; copy fields override the
// generated draft when present.
type CreateContentPackageRequest struct {
	CampaignParametersRequest
	Caption          *string  `json:"caption,omitempty"`
	Hashtags         []string `json:"hashtags,omitempty"`
	ShotList         []string `json:"shot_list,omitempty"`
	PostingChecklist []string `json:"posting_checklist,omitempty"`
}

type UpdateContentPackageRequest struct {
	Caption          *string  `json:"caption,omitempty"`
	Hashtags         []string `json:"hashtags,omitempty"`
	ShotList         []string `json:"shot_list,omitempty"`
	PostingChecklist []string `json:"posting_checklist,omitempty"`
}

type AppendHashtagsRequest struct {
	Hashtags []string `json:"hashtags"`
}

// Videos

type AttachVideoRequest struct {
	URL         string            `json:"url"`
	Status      string            `json:"status,omitempty"`
	Duration    contentgen.Amount `json:"duration"`
	Prompt      string            `json:"prompt,omitempty"`
	AspectRatio string            `json:"aspect_ratio,omitempty"`
}

type UpdateVideoStatusRequest struct {
	Status string `json:"status"`
}

// Leads

// CaptureLeadRequest is also posted as a form by the landing page.
type CaptureLeadRequest struct {
	Name            string `json:"name" form:"name"`
	ContactInfo     string `json:"contact_info" form:"contact_info"`
	VehicleInterest string `json:"vehicle_interest" form:"vehicle_interest"`
	Timeframe       string `json:"timeframe" form:"timeframe"`
	Consent         bool   `json:"consent" form:"consent"`
}

type SetLeadStatusRequest struct {
	Status string `json:"status"`
}

type AddLeadNoteRequest struct {
	Note string `json:"note"`
}

// Users

type SaveProfileRequest struct {
	Name string `json:"name"`
}

type AssignRoleRequest struct {
	Principal string `json:"principal"`
	Role      string `json:"role"`
}
