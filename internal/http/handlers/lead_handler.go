package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lead-studio/backend/internal/http/dto"
	"github.com/lead-studio/backend/internal/middleware"
	"github.com/lead-studio/backend/internal/models"
	"github.com/lead-studio/backend/internal/services"
	"go.uber.org/zap"
)

// noteTimeLayout matches an en-US locale date-time string.
const noteTimeLayout = "1/2/2006, 3:04:05 PM"

type LeadHandler struct {
	leadService *services.LeadService
	now         func() time.Time
	log         *zap.Logger
}

func NewLeadHandler(leadService *services.LeadService, log *zap.Logger) *LeadHandler {
	return &LeadHandler{leadService: leadService, now: time.Now, log: log}
}

// TimestampedNote prefixes trimmed note text with the local time. Blank
// text yields false.
func TimestampedNote(now time.Time, text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	return fmt.Sprintf("[%s] %s", now.Format(noteTimeLayout), text), true
}

func (h *LeadHandler) List(c *fiber.Ctx) error {
	filter := services.LeadFilter{
		Search: c.Query("search"),
		Status: c.Query("status", "all"),
	}
	if v := c.Query("content_package_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return badRequest(c, "invalid content_package_id")
		}
		filter.ContentPackageID = id
	}

	leads, err := h.leadService.List(c.UserContext(), filter)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: leads})
}

func (h *LeadHandler) Get(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid lead id")
	}

	lead, err := h.leadService.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: lead})
}

func (h *LeadHandler) SetStatus(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid lead id")
	}
	var req dto.SetLeadStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	status, err := models.ParseLeadStatus(req.Status)
	if err != nil {
		return badRequest(c, err.Error())
	}

	lead, err := h.leadService.SetStatus(c.UserContext(), middleware.GetPrincipal(c), id, status)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: lead})
}

func (h *LeadHandler) AddNote(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid lead id")
	}
	var req dto.AddLeadNoteRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	note, ok := TimestampedNote(h.now(), req.Note)
	if !ok {
		return badRequest(c, "note must not be empty")
	}

	lead, err := h.leadService.AppendNote(c.UserContext(), middleware.GetPrincipal(c), id, note)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SuccessResponse{OK: true, Data: lead})
}
