package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lead-studio/backend/internal/http/dto"
	"github.com/lead-studio/backend/internal/models"
)

type MetaHandler struct{}

func NewMetaHandler() *MetaHandler {
	return &MetaHandler{}
}

func leadStatusOptions() []dto.Option {
	out := make([]dto.Option, 0, len(models.AllLeadStatuses))
	for _, s := range models.AllLeadStatuses {
		out = append(out, dto.Option{ID: string(s), Label: s.Label()})
	}
	return out
}

// GetLeadForm lists the choices offered by the landing form and the lead
// pipeline statuses.
func (h *MetaHandler) GetLeadForm(c *fiber.Ctx) error {
	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.LeadFormMetaResponse{
		VehicleInterests: models.VehicleInterestOptions,
		Timeframes:       models.TimeframeOptions,
		Statuses:         leadStatusOptions(),
	}})
}
