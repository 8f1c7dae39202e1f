package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lead-studio/backend/internal/http/dto"
	"github.com/lead-studio/backend/internal/middleware"
	"github.com/lead-studio/backend/internal/models"
	"github.com/lead-studio/backend/internal/repositories"
	"github.com/lead-studio/backend/internal/services"
	"go.uber.org/zap"
)

type ContentHandler struct {
	contentService   *services.ContentService
	analyticsService *services.AnalyticsService
	log              *zap.Logger
}

func NewContentHandler(contentService *services.ContentService, analyticsService *services.AnalyticsService, log *zap.Logger) *ContentHandler {
	return &ContentHandler{contentService: contentService, analyticsService: analyticsService, log: log}
}

// Generate renders a draft without saving it.
func (h *ContentHandler) Generate(c *fiber.Ctx) error {
	var req dto.CampaignParametersRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	content, err := h.contentService.Generate(req.Params())
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: content})
}

func (h *ContentHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateContentPackageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	edits := services.CopyEdits{
		Caption:          req.Caption,
		Hashtags:         req.Hashtags,
		ShotList:         req.ShotList,
		PostingChecklist: req.PostingChecklist,
	}
	pkg, err := h.contentService.Create(c.UserContext(), middleware.GetPrincipal(c), req.Params(), edits)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: pkg})
}

func (h *ContentHandler) List(c *fiber.Ctx) error {
	filter := repositories.ContentPackageFilter{
		Limit:  queryInt(c, "limit", 50),
		Offset: queryInt(c, "offset", 0),
	}
	if v := c.Query("created_by"); v != "" {
		filter.CreatedBy = &v
	}

	packages, err := h.contentService.List(c.UserContext(), filter)
	if err != nil {
		return fail(c, h.log, err)
	}
	if packages == nil {
		packages = []models.ContentPackage{}
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: packages})
}

func (h *ContentHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid content package id")
	}

	pkg, err := h.contentService.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: pkg})
}

func (h *ContentHandler) Update(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid content package id")
	}
	var req dto.UpdateContentPackageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	pkg, err := h.contentService.UpdateCopy(c.UserContext(), id, services.CopyEdits{
		Caption:          req.Caption,
		Hashtags:         req.Hashtags,
		ShotList:         req.ShotList,
		PostingChecklist: req.PostingChecklist,
	})
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: pkg})
}

func (h *ContentHandler) AppendHashtags(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid content package id")
	}
	var req dto.AppendHashtagsRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	pkg, err := h.contentService.AppendHashtags(c.UserContext(), id, req.Hashtags)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: pkg})
}

// LandingURL builds the public link; utm_* and ref query parameters are
// copied onto it.
func (h *ContentHandler) LandingURL(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid content package id")
	}

	u, err := h.contentService.LandingURL(c.UserContext(), id, trackingParams(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.LandingURLResponse{URL: u}})
}

func (h *ContentHandler) Attribution(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid content package id")
	}

	a, err := h.analyticsService.Attribution(c.UserContext(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: a})
}
