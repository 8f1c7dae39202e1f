package models

import "fmt"

type Platform string

const (
	PlatformFacebook  Platform = "facebook"
	PlatformInstagram Platform = "instagram"
	PlatformTikTok    Platform = "tiktok"
)

var AllPlatforms = []Platform{PlatformFacebook, PlatformInstagram, PlatformTikTok}

type Objective string

const (
	ObjectiveLeadGeneration Objective = "leadGeneration"
	ObjectiveTestDrive      Objective = "testDrive"
	ObjectiveBrandAwareness Objective = "brandAwareness"
)

var AllObjectives = []Objective{ObjectiveLeadGeneration, ObjectiveTestDrive, ObjectiveBrandAwareness}

type VehicleModel string

const (
	ModelF150     VehicleModel = "f150"
	ModelMustang  VehicleModel = "mustang"
	ModelExplorer VehicleModel = "explorer"
)

var AllVehicleModels = []VehicleModel{ModelF150, ModelMustang, ModelExplorer}

type Tone string

const (
	ToneExcited          Tone = "excited"
	ToneTrustedAdvisor   Tone = "trustedAdvisor"
	ToneCommunityFocused Tone = "communityFocused"
)

var AllTones = []Tone{ToneExcited, ToneTrustedAdvisor, ToneCommunityFocused}

type CallToAction string

const (
	CTAScheduleTestDrive CallToAction = "scheduleTestDrive"
	CTAVisitDealership   CallToAction = "visitDealership"
	CTAGetQuote          CallToAction = "getQuote"
)

var AllCallsToAction = []CallToAction{CTAScheduleTestDrive, CTAVisitDealership, CTAGetQuote}

// CampaignParameters is the input of the content template engine.
type CampaignParameters struct {
	Platform     Platform     `json:"platform"`
	Objective    Objective    `json:"objective"`
	VehicleModel VehicleModel `json:"model"`
	Tone         Tone         `json:"tone"`
	CallToAction CallToAction `json:"cta"`
	Price        int64        `json:"price"`
	Discount     int64        `json:"discount"`
	Mileage      int64        `json:"mileage"`
}

// Validate reports the first enum field holding a value outside its set.
func (p CampaignParameters) Validate() error {
	if !contains(AllPlatforms, p.Platform) {
		return fmt.Errorf("invalid platform %q", p.Platform)
	}
	if !contains(AllObjectives, p.Objective) {
		return fmt.Errorf("invalid objective %q", p.Objective)
	}
	if !contains(AllVehicleModels, p.VehicleModel) {
		return fmt.Errorf("invalid model %q", p.VehicleModel)
	}
	if !contains(AllTones, p.Tone) {
		return fmt.Errorf("invalid tone %q", p.Tone)
	}
	if !contains(AllCallsToAction, p.CallToAction) {
		return fmt.Errorf("invalid cta %q", p.CallToAction)
	}
	return nil
}

// Offer returns the pricing part of the parameters.
func (p CampaignParameters) Offer() OfferDetails {
	return OfferDetails{Price: p.Price, Discount: p.Discount, Mileage: p.Mileage}
}

func contains[T comparable](set []T, v T) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
