package middleware

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lead-studio/backend/internal/auth"
	"github.com/lead-studio/backend/internal/config"
	"github.com/lead-studio/backend/internal/models"
	"github.com/lead-studio/backend/internal/rbac"
	"go.uber.org/zap"
)

const (
	CtxPrincipal = "principal"
	CtxRole      = "role"
)

func AuthMiddleware(cfg *config.Config, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization header"})
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenStr == authHeader {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid authorization format"})
		}

		claims, err := auth.ParseJWT(cfg.JWTSecret, cfg.JWTIssuer, tokenStr)
		if err != nil {
			log.Debug("jwt parse error", zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid or expired token"})
		}

		c.Locals(CtxPrincipal, claims.Principal)

		return c.Next()
	}
}

func GetPrincipal(c *fiber.Ctx) string {
	p, _ := c.Locals(CtxPrincipal).(string)
	return p
}

// RoleResolver maps a principal to its current role.
type RoleResolver interface {
	Role(ctx context.Context, principal string) (models.UserRole, error)
}

// RequirePermission looks up the caller role on every request; tokens carry
// no role.
func RequirePermission(roles RoleResolver, permission string, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, err := roles.Role(c.UserContext(), GetPrincipal(c))
		if err != nil {
			log.Error("resolve role", zap.String("principal", GetPrincipal(c)), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal error"})
		}
		if !rbac.HasPermission(role, permission) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "permission denied: " + permission})
		}
		c.Locals(CtxRole, role)
		return c.Next()
	}
}
