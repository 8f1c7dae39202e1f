package middleware

import (
	"context"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lead-studio/backend/internal/auth"
	"github.com/lead-studio/backend/internal/config"
	"github.com/lead-studio/backend/internal/models"
	"github.com/lead-studio/backend/internal/rbac"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type staticRoles map[string]models.UserRole

func (s staticRoles) Role(_ context.Context, principal string) (models.UserRole, error) {
	if principal == "broken" {
		return "", errors.New("db down")
	}
	if r, ok := s[principal]; ok {
		return r, nil
	}
	return models.RoleGuest, nil
}

func newApp(cfg *config.Config) *fiber.App {
	log := zap.NewNop()
	roles := staticRoles{"op": models.RoleUser}

	app := fiber.New()
	app.Use(RequestIDMiddleware())
	app.Use(LoggerMiddleware(log))
	app.Use(AuthMiddleware(cfg, log))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(GetPrincipal(c))
	})
	app.Get("/leads", RequirePermission(roles, rbac.PermManageLeads, log), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func call(t *testing.T, app *fiber.App, path, token string) (int, string, string) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body), resp.Header.Get("X-Request-ID")
}

func TestAuthMiddleware(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s3cret", JWTIssuer: "lead-studio"}
	app := newApp(cfg)

	valid, err := auth.GenerateJWT(cfg.JWTSecret, cfg.JWTIssuer, "op", time.Hour)
	require.NoError(t, err)
	foreign, err := auth.GenerateJWT("other", cfg.JWTIssuer, "op", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"missing header", "", fiber.StatusUnauthorized, "missing authorization header"},
		{"not bearer", "Token " + valid, fiber.StatusUnauthorized, "invalid authorization format"},
		{"bad signature", "Bearer " + foreign, fiber.StatusUnauthorized, "invalid or expired token"},
		{"valid", "Bearer " + valid, fiber.StatusOK, "op"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body, reqID := call(t, app, "/whoami", tt.header)
			assert.Equal(t, tt.wantStatus, status)
			assert.Contains(t, body, tt.wantBody)
			assert.NotEmpty(t, reqID)
		})
	}
}

func TestRequirePermission(t *testing.T) {
	cfg := &config.Config{JWTSecret: "s3cret"}
	app := newApp(cfg)

	bearer := func(principal string) string {
		tok, err := auth.GenerateJWT(cfg.JWTSecret, "", principal, time.Hour)
		require.NoError(t, err)
		return "Bearer " + tok
	}

	status, _, _ := call(t, app, "/leads", bearer("op"))
	assert.Equal(t, fiber.StatusOK, status)

	status, body, _ := call(t, app, "/leads", bearer("guest"))
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Contains(t, body, rbac.PermManageLeads)

	status, _, _ = call(t, app, "/leads", bearer("broken"))
	assert.Equal(t, fiber.StatusInternalServerError, status)
}

func TestRequestIDIsKept(t *testing.T) {
	app := fiber.New()
	app.Use(RequestIDMiddleware())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "req-123")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, "req-123", resp.Header.Get("X-Request-ID"))
}

func TestRequestIDReplacesOversizedHeader(t *testing.T) {
	app := fiber.New()
	app.Use(RequestIDMiddleware())
	app.Get("/", func(c *fiber.Ctx) error { return c.SendString(GetRequestID(c)) })

	req := httptest.NewRequest(fiber.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", strings.Repeat("x", 65))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	got := resp.Header.Get("X-Request-ID")
	assert.Len(t, got, 36)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, got, string(body))
}
