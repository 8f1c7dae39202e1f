package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/lead-studio/backend/internal/config"
	"github.com/lead-studio/backend/internal/db"
	"github.com/lead-studio/backend/internal/events"
	"github.com/lead-studio/backend/internal/notify"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Notify bridge: subscribes to lead events on Redis and forwards them to
// NOTIFY_WEBHOOK_URL.

func main() {
	cfg := config.Load()

	log, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.NotifyWebhookURL == "" {
		log.Fatal("NOTIFY_WEBHOOK_URL is required")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb, err := db.NewRedisClient(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	subscriber := events.NewRedisSubscriber(rdb, log)
	forwarder := notify.NewForwarder(cfg.NotifyWebhookURL, cfg.NotifyTimeout, log)

	if err := subscriber.Subscribe(ctx, events.StreamLeads, forwarder.Handle(ctx)); err != nil {
		log.Fatal("failed to subscribe", zap.String("stream", events.StreamLeads), zap.Error(err))
	}
	log.Info("notify-bridge started", zap.String("stream", events.StreamLeads))

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down notify-bridge")
		cancel()
		_ = app.Shutdown()
	}()

	if err := app.Listen(":" + cfg.NotifyBridgePort); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
