package http

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/lead-studio/backend/internal/config"
	"github.com/lead-studio/backend/internal/http/handlers"
	"github.com/lead-studio/backend/internal/middleware"
	"github.com/lead-studio/backend/internal/rbac"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Handlers struct {
	Content   *handlers.ContentHandler
	Video     *handlers.VideoHandler
	Lead      *handlers.LeadHandler
	User      *handlers.UserHandler
	Dashboard *handlers.DashboardHandler
	Audit     *handlers.AuditHandler
	Public    *handlers.PublicHandler
	Roles     middleware.RoleResolver
	WSHub     *handlers.WSHub
}

// SetupRouter mounts every route. A nil rdb disables public rate limiting.
func SetupRouter(app *fiber.App, cfg *config.Config, log *zap.Logger, rdb *redis.Client, h Handlers) {
	// Global middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSAllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.RequestIDMiddleware())
	app.Use(middleware.LoggerMiddleware(log))
	app.Use(middleware.MetricsMiddleware())

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	public := []fiber.Handler{}
	if rdb != nil {
		public = append(public, middleware.RateLimitMiddleware(rdb, cfg.PublicRateLimit, cfg.PublicRateWindow, log))
	}

	// Landing page (public HTML)
	app.Get("/landing/:id", append(public, h.Public.Landing)...)

	api := app.Group("/api/v1")

	// Meta (public, no auth required)
	metaHandler := handlers.NewMetaHandler()
	api.Get("/meta/lead-form", append(public, metaHandler.GetLeadForm)...)

	// Public landing API
	api.Get("/public/content/:id", append(public, h.Public.GetContent)...)
	api.Post("/public/content/:id/leads", append(public, h.Public.CaptureLead)...)

	// WebSocket, token in the query string. Registered ahead of the bearer
	// header group below.
	if h.WSHub != nil {
		api.Use("/ws", handlers.WSUpgradeMiddleware())
		api.Get("/ws", websocket.New(h.WSHub.HandleWS))
	}

	// Protected endpoints
	protected := api.Group("", middleware.AuthMiddleware(cfg, log))
	can := func(perm string) fiber.Handler { return middleware.RequirePermission(h.Roles, perm, log) }

	// Profile
	protected.Get("/me/profile", h.User.GetProfile)
	protected.Put("/me/profile", h.User.SaveProfile)
	protected.Get("/me/role", h.User.GetRole)

	// Admin
	protected.Put("/admin/roles", can(rbac.PermAssignRoles), h.User.AssignRole)
	protected.Get("/admin/audit/:entityType/:id", can(rbac.PermViewAudit), h.Audit.History)

	// Content packages
	protected.Post("/content/generate", can(rbac.PermGenerateContent), h.Content.Generate)
	protected.Post("/content", can(rbac.PermManageContent), h.Content.Create)
	protected.Get("/content", can(rbac.PermManageContent), h.Content.List)
	protected.Get("/content/:id", can(rbac.PermManageContent), h.Content.Get)
	protected.Put("/content/:id", can(rbac.PermManageContent), h.Content.Update)
	protected.Post("/content/:id/hashtags", can(rbac.PermManageContent), h.Content.AppendHashtags)
	protected.Get("/content/:id/landing-url", can(rbac.PermManageContent), h.Content.LandingURL)
	protected.Get("/content/:id/attribution", can(rbac.PermManageLeads), h.Content.Attribution)

	// Video assets
	protected.Post("/content/:id/videos", can(rbac.PermManageContent), h.Video.Attach)
	protected.Patch("/content/:id/videos/:videoId", can(rbac.PermManageContent), h.Video.UpdateStatus)
	protected.Delete("/content/:id/videos/:videoId", can(rbac.PermManageContent), h.Video.Remove)

	// Leads
	protected.Get("/leads", can(rbac.PermManageLeads), h.Lead.List)
	protected.Get("/leads/:id", can(rbac.PermManageLeads), h.Lead.Get)
	protected.Put("/leads/:id/status", can(rbac.PermManageLeads), h.Lead.SetStatus)
	protected.Post("/leads/:id/notes", can(rbac.PermManageLeads), h.Lead.AddNote)

	// Dashboard
	protected.Get("/dashboard", can(rbac.PermViewDashboard), h.Dashboard.Get)
}
