package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"
	"github.com/lead-studio/backend/internal/contentgen"
	"github.com/lead-studio/backend/internal/http/dto"
	"github.com/lead-studio/backend/internal/models"
	"github.com/lead-studio/backend/internal/services"
	"go.uber.org/zap"
)

// PublicHandler serves anonymous landing page visitors.
type PublicHandler struct {
	contentService *services.ContentService
	leadService    *services.LeadService
	log            *zap.Logger
}

func NewPublicHandler(contentService *services.ContentService, leadService *services.LeadService, log *zap.Logger) *PublicHandler {
	return &PublicHandler{contentService: contentService, leadService: leadService, log: log}
}

func (h *PublicHandler) GetContent(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid content package id")
	}

	pkg, err := h.contentService.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.NewPublicContentPackage(pkg)})
}

func (h *PublicHandler) CaptureLead(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid content package id")
	}
	var req dto.CaptureLeadRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	lead, err := h.leadService.Capture(c.UserContext(), services.CaptureInput{
		ContentPackageID: id,
		Name:             req.Name,
		ContactInfo:      req.ContactInfo,
		VehicleInterest:  req.VehicleInterest,
		Timeframe:        req.Timeframe,
		Consent:          req.Consent,
	})
	if err != nil {
		return fail(c, h.log, err)
	}

	if p := trackingParams(c); !p.IsEmpty() {
		h.log.Info("lead attributed",
			zap.Int64("lead_id", lead.ID),
			zap.String("utm_source", p.Source),
			zap.String("utm_campaign", p.Campaign),
			zap.String("ref", p.Ref),
		)
	}

	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: dto.LeadCaptured{
		ID:      lead.ID,
		Message: "Thank you! We'll be in touch soon.",
	}})
}

var landingTemplate = template.Must(template.New("landing").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.ModelName}} | Special Offer</title>
</head>
<body>
<main>
<h1 class="model">{{.ModelName}}</h1>
{{if .Price}}<p class="price">{{.Price}}</p>{{end}}
<pre class="caption">{{.Caption}}</pre>
<ul class="hashtags">{{range .Hashtags}}<li>{{.}}</li>{{end}}</ul>
{{range .Videos}}<video class="video" src="{{.URL}}" controls></video>
{{end}}
<form id="lead-form" method="post" action="{{.Action}}">
<input name="name" placeholder="Your name" required>
<input name="contact_info" placeholder="Email or phone" required>
<select name="vehicle_interest" required>
{{range .VehicleInterests}}<option value="{{.}}">{{.}}</option>
{{end}}</select>
<select name="timeframe" required>
{{range .Timeframes}}<option value="{{.}}">{{.}}</option>
{{end}}</select>
<label><input type="checkbox" name="consent" value="true" required> I agree to be contacted about this offer</label>
<button type="submit">Get My Offer</button>
</form>
</main>
</body>
</html>
`))

type landingPage struct {
	ModelName        string
	Price            string
	Caption          string
	Hashtags         []string
	Videos           []models.VideoAsset
	Action           string
	VehicleInterests []string
	Timeframes       []string
}

// Landing renders the public landing page of a content package. Tracking
// parameters on the page URL are kept on the form action.
func (h *PublicHandler) Landing(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return c.Status(fiber.StatusNotFound).SendString("page not found")
	}

	pkg, err := h.contentService.Get(c.UserContext(), id)
	if errors.Is(err, services.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).SendString("page not found")
	}
	if err != nil {
		h.log.Error("landing page failed", zap.Int64("content_package_id", id), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString("something went wrong")
	}

	action := fmt.Sprintf("/api/v1/public/content/%d/leads", id)
	if qs := string(c.Request().URI().QueryString()); qs != "" {
		action += "?" + qs
	}

	page := landingPage{
		ModelName:        contentgen.ModelDisplayName(pkg.VehicleModel),
		Caption:          pkg.Caption,
		Hashtags:         pkg.Hashtags,
		Videos:           pkg.VideoAssets,
		Action:           action,
		VehicleInterests: models.VehicleInterestOptions,
		Timeframes:       models.TimeframeOptions,
	}
	if pkg.Offer.Price > 0 {
		page.Price = "$" + contentgen.FormatAmount(pkg.Offer.Price-pkg.Offer.Discount)
	}

	var buf bytes.Buffer
	if err := landingTemplate.Execute(&buf, page); err != nil {
		h.log.Error("render landing page", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).SendString("something went wrong")
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}
