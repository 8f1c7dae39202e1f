package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lead-studio/backend/internal/http/dto"
	"github.com/lead-studio/backend/internal/services"
	"go.uber.org/zap"
)

type DashboardHandler struct {
	analyticsService *services.AnalyticsService
	log              *zap.Logger
}

func NewDashboardHandler(analyticsService *services.AnalyticsService, log *zap.Logger) *DashboardHandler {
	return &DashboardHandler{analyticsService: analyticsService, log: log}
}

func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	d, err := h.analyticsService.Dashboard(c.UserContext())
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: d})
}
