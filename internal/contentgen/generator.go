// Package contentgen turns campaign parameters into social-media copy.
//
// Generate is a pure function over fixed lookup tables: the same parameters
// always yield byte-identical output. It is safe for concurrent use.
package contentgen

import (
	"strings"

	"github.com/lead-studio/backend/internal/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// GeneratedContent is produced fresh by every Generate call. Callers replace
// a previous draft wholesale instead of patching it.
type GeneratedContent struct {
	Caption          string   `json:"caption"`
	Hashtags         []string `json:"hashtags"`
	ShotList         []string `json:"shot_list"`
	PostingChecklist []string `json:"posting_checklist"`
}

// Generate renders a draft from p. It is total and deterministic.
func Generate(p models.CampaignParameters) GeneratedContent {
	modelName := ModelDisplayName(p.VehicleModel)
	netPrice := p.Price - p.Discount
	isNew := p.Mileage == 0

	caption := toneCaption(p.Tone, modelName, isNew, p.Price, p.Discount, netPrice)
	caption += ctaSentence(p.CallToAction)

	return GeneratedContent{
		Caption:          caption,
		Hashtags:         hashtags(p.Platform, p.Objective, p.VehicleModel),
		ShotList:         shotList(p.VehicleModel, modelName),
		PostingChecklist: postingChecklist(p.Platform),
	}
}

// ModelDisplayName resolves the canonical model name used in copy.
func ModelDisplayName(m models.VehicleModel) string {
	switch m {
	case models.ModelF150:
		return "Ford F-150"
	case models.ModelMustang:
		return "Ford Mustang"
	case models.ModelExplorer:
		return "Ford Explorer"
	}
	return string(m)
}

func toneCaption(tone models.Tone, modelName string, isNew bool, price, discount, netPrice int64) string {
	var b strings.Builder

	switch tone {
	case models.ToneExcited:
		condition := "certified pre-owned"
		if isNew {
			condition = "brand new"
		}
		b.WriteString("🚗 AMAZING DEAL ALERT! 🚗\n\n")
		b.WriteString("Get behind the wheel of a " + condition + " " + modelName + "!\n\n")
		if discount > 0 {
			b.WriteString("💰 Save $" + FormatAmount(discount) + " - Now only $" + FormatAmount(netPrice) + "!\n")
		} else {
			b.WriteString("💰 Starting at $" + FormatAmount(price) + "!\n")
		}
		b.WriteString("\n✨ Don't miss out on this incredible opportunity!\n")

	case models.ToneTrustedAdvisor:
		b.WriteString("Looking for a reliable " + modelName + "?\n\n")
		b.WriteString("We understand that choosing the right vehicle is an important decision. ")
		b.WriteString("Our team is here to help you find the perfect " + modelName + " that fits your lifestyle and budget.\n\n")
		if discount > 0 {
			b.WriteString("Special offer: Save $" + FormatAmount(discount) + " on select models.\n")
		}
		b.WriteString("\nLet's find your perfect match together.")

	default: // communityFocused
		b.WriteString("Your neighbors trust us, and so can you! 🏘️\n\n")
		b.WriteString("Proud to serve our community with quality vehicles like the " + modelName + ".\n\n")
		if discount > 0 {
			b.WriteString("Community special: $" + FormatAmount(discount) + " off - Now $" + FormatAmount(netPrice) + "!\n")
		}
		b.WriteString("\nFamily-owned, community-focused. That's our promise.")
	}

	return b.String()
}

func ctaSentence(cta models.CallToAction) string {
	switch cta {
	case models.CTAScheduleTestDrive:
		return "\n\n📅 Schedule your test drive today!"
	case models.CTAVisitDealership:
		return "\n\n🏢 Visit our dealership today!"
	}
	return "\n\n💬 Get your personalized quote now!"
}

var platformHashtags = map[models.Platform][]string{
	models.PlatformFacebook:  {"#LocalBusiness", "#CommunityFirst", "#FamilyOwned"},
	models.PlatformInstagram: {"#InstaAuto", "#CarGram", "#DreamCar", "#AutoLife"},
	models.PlatformTikTok:    {"#CarTok", "#FordTok", "#CarDeals", "#AutoTok"},
}

var objectiveHashtags = map[models.Objective][]string{
	models.ObjectiveTestDrive:      {"#TestDrive", "#TryBeforeYouBuy"},
	models.ObjectiveLeadGeneration: {"#SpecialOffer", "#LimitedTime"},
	models.ObjectiveBrandAwareness: nil,
}

// hashtags keeps table order and does not de-duplicate.
func hashtags(platform models.Platform, objective models.Objective, model models.VehicleModel) []string {
	tags := []string{"#Ford", "#" + strings.ToUpper(string(model)), "#CarDealer", "#NewCar"}
	tags = append(tags, platformHashtags[platform]...)
	tags = append(tags, objectiveHashtags[objective]...)
	return tags
}

func shotList(model models.VehicleModel, modelName string) []string {
	shots := []string{
		"Exterior 360° view of the " + modelName + " in natural lighting",
		"Close-up of signature Ford grille and headlights",
		"Interior dashboard and infotainment system showcase",
		"Driver's seat perspective showing comfort and space",
		"Trunk/cargo space demonstration",
	}

	switch model {
	case models.ModelF150:
		shots = append(shots, "Towing capacity demonstration or bed utility shot")
	case models.ModelMustang:
		shots = append(shots, "Performance shot - acceleration or handling")
	default:
		shots = append(shots, "Family-friendly features and seating configuration")
	}
	return shots
}

var baseChecklist = []string{
	"Review caption for accuracy and tone",
	"Verify pricing and offer details",
	"Check all hashtags are relevant and spelled correctly",
	"Ensure images/videos are high quality and properly formatted",
	"Tag dealership location and Ford official accounts",
	"Set up tracking parameters for lead attribution",
	"Schedule post for optimal engagement time",
	"Prepare to respond to comments within 1 hour",
}

var platformChecklistItem = map[models.Platform]string{
	models.PlatformInstagram: "Add location tag and story highlight",
	models.PlatformTikTok:    "Add trending audio and effects",
}

func postingChecklist(platform models.Platform) []string {
	items := make([]string, len(baseChecklist), len(baseChecklist)+1)
	copy(items, baseChecklist)
	if item, ok := platformChecklistItem[platform]; ok {
		items = append(items, item)
	}
	return items
}

// FormatAmount renders whole currency units with en-US digit grouping.
func FormatAmount(n int64) string {
	return message.NewPrinter(language.AmericanEnglish).Sprintf("%d", n)
}
