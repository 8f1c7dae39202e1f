package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lead-studio/backend/internal/http/dto"
	"github.com/lead-studio/backend/internal/middleware"
	"github.com/lead-studio/backend/internal/services"
	"go.uber.org/zap"
)

type AuditHandler struct {
	auditService *services.AuditService
	log          *zap.Logger
}

func NewAuditHandler(auditService *services.AuditService, log *zap.Logger) *AuditHandler {
	return &AuditHandler{auditService: auditService, log: log}
}

func (h *AuditHandler) History(c *fiber.Ctx) error {
	id, ok := paramID(c, "id")
	if !ok {
		return badRequest(c, "invalid entity id")
	}

	logs, err := h.auditService.History(c.UserContext(), middleware.GetPrincipal(c), c.Params("entityType"), id,
		queryInt(c, "limit", 50), queryInt(c, "offset", 0))
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: logs})
}
