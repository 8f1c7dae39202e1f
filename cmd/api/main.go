package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/lead-studio/backend/internal/config"
	"github.com/lead-studio/backend/internal/db"
	"github.com/lead-studio/backend/internal/events"
	apphttp "github.com/lead-studio/backend/internal/http"
	"github.com/lead-studio/backend/internal/http/handlers"
	"github.com/lead-studio/backend/internal/repositories"
	"github.com/lead-studio/backend/internal/services"
	"github.com/lead-studio/backend/migrations"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	log, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg.Validate(log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Database
	pool, err := db.NewPostgresPool(ctx, cfg.PostgresDSN, log)
	if err != nil {
		log.Fatal("failed to connect to postgres", zap.Error(err))
	}
	defer pool.Close()

	// Run migrations
	var migrationFS fs.FS = migrations.FS
	if cfg.MigrationsDir != "" {
		migrationFS = os.DirFS(cfg.MigrationsDir)
	}
	if err := db.RunMigrations(ctx, pool, migrationFS, log); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}

	// Redis
	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Repositories
	userRepo := repositories.NewUserRepo(pool)
	contentRepo := repositories.NewContentPackageRepo(pool)
	videoRepo := repositories.NewVideoAssetRepo(pool)
	leadRepo := repositories.NewLeadRepo(pool)
	auditRepo := repositories.NewAuditRepo(pool)

	// Events
	publisher := events.NewRedisPublisher(rdb, log)
	subscriber := events.NewRedisSubscriber(rdb, log)

	// Services
	userService := services.NewUserService(userRepo, auditRepo, cfg, log)
	contentService := services.NewContentService(contentRepo, videoRepo, userRepo, auditRepo, publisher, cfg.PublicBaseURL, log)
	leadService := services.NewLeadService(leadRepo, contentRepo, auditRepo, publisher, log)
	videoService := services.NewVideoService(videoRepo, contentRepo, log)
	analyticsService := services.NewAnalyticsService(contentRepo, leadRepo)
	auditService := services.NewAuditService(auditRepo, userService)

	// Start WS hub
	wsHub := handlers.NewWSHub(cfg, subscriber, userService, log)
	if err := wsHub.Start(ctx); err != nil {
		log.Fatal("failed to start ws hub", zap.Error(err))
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{"error": err.Error()})
		},
	})

	apphttp.SetupRouter(app, cfg, log, rdb, apphttp.Handlers{
		Content:   handlers.NewContentHandler(contentService, analyticsService, log),
		Video:     handlers.NewVideoHandler(videoService, log),
		Lead:      handlers.NewLeadHandler(leadService, log),
		User:      handlers.NewUserHandler(userService, log),
		Dashboard: handlers.NewDashboardHandler(analyticsService, log),
		Audit:     handlers.NewAuditHandler(auditService, log),
		Public:    handlers.NewPublicHandler(contentService, leadService, log),
		Roles:     userService,
		WSHub:     wsHub,
	})

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		cancel()
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.APIPort)
	log.Info("starting API server", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
