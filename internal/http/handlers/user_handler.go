package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/lead-studio/backend/internal/http/dto"
	"github.com/lead-studio/backend/internal/middleware"
	"github.com/lead-studio/backend/internal/models"
	"github.com/lead-studio/backend/internal/services"
	"go.uber.org/zap"
)

type UserHandler struct {
	userService *services.UserService
	log         *zap.Logger
}

func NewUserHandler(userService *services.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{userService: userService, log: log}
}

// GetProfile returns data null when no profile was saved yet.
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.userService.GetProfile(c.UserContext(), middleware.GetPrincipal(c))
	if err != nil {
		return fail(c, h.log, err)
	}
	if profile == nil {
		return c.JSON(fiber.Map{"ok": true, "data": nil})
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: profile})
}

func (h *UserHandler) SaveProfile(c *fiber.Ctx) error {
	var req dto.SaveProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}

	profile, err := h.userService.SaveProfile(c.UserContext(), middleware.GetPrincipal(c), req.Name)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: profile})
}

func (h *UserHandler) GetRole(c *fiber.Ctx) error {
	principal := middleware.GetPrincipal(c)
	role, err := h.userService.Role(c.UserContext(), principal)
	if err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.RoleResponse{Principal: principal, Role: role}})
}

func (h *UserHandler) AssignRole(c *fiber.Ctx) error {
	var req dto.AssignRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request")
	}
	if req.Principal == "" {
		return badRequest(c, "principal is required")
	}

	role := models.UserRole(req.Role)
	if err := h.userService.AssignRole(c.UserContext(), middleware.GetPrincipal(c), req.Principal, role); err != nil {
		return fail(c, h.log, err)
	}
	return c.JSON(dto.SuccessResponse{OK: true, Data: dto.RoleResponse{Principal: req.Principal, Role: role}})
}
