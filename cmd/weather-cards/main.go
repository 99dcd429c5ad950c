package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	log "github.com/sirupsen/logrus"

	httpapi "github.com/i474232898/weather-cards/internal/api/http"
	"github.com/i474232898/weather-cards/internal/app"
	"github.com/i474232898/weather-cards/internal/card"
	"github.com/i474232898/weather-cards/internal/config"
	"github.com/i474232898/weather-cards/internal/metrics"
	"github.com/i474232898/weather-cards/internal/scheduler"
	"github.com/i474232898/weather-cards/internal/store"
	"github.com/i474232898/weather-cards/internal/weather/providers"
)

const maxNotices = 50

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	root := cfg.NewLogger()
	entry := log.NewEntry(root).WithField("service", "weather-cards")

	// Saved locations and theme survive restarts when a DB path is set.
	var kv store.KV = store.NewMemoryKV()
	if cfg.DBPath != "" {
		sqliteKV, err := store.NewSQLite(cfg.DBPath, entry)
		if err != nil {
			entry.WithError(err).Fatal("failed to open store")
		}
		kv = sqliteKV
	}
	defer func() {
		if err := kv.Close(); err != nil {
			entry.WithError(err).Warn("failed to close store")
		}
	}()

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	m := metrics.New()
	notices := app.NewNoticeFeed(maxNotices, m, entry)
	theme := app.NewThemeService(kv, entry)

	clock := scheduler.NewClock(cfg.Location(), entry)
	defer clock.Stop()

	orch := app.NewOrchestrator(app.Deps{
		Resolver:           providers.NewGeocodingProvider(httpClient, cfg.GeocodingURL, cfg.GeocodingLanguage, entry),
		Fetcher:            providers.NewOpenMeteoProvider(httpClient, cfg.ForecastURL, entry),
		Renderer:           card.NewRenderer(entry),
		Board:              card.NewBoard(),
		Locations:          store.NewLocationStore(kv, entry),
		Notifier:           notices,
		Locator:            cfg.Locator(),
		Theme:              theme,
		Clock:              clock,
		Metrics:            m,
		GeolocationTimeout: cfg.GeolocationTimeout,
		Logger:             entry,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go orch.Start(ctx)

	// Basic app configuration
	srv := fiber.New(fiber.Config{
		AppName:               "weather-cards",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	// Global middleware
	srv.Use(logger.New(logger.Config{Output: root.Writer()}))
	srv.Use(recover.New())

	// Basic health endpoint
	srv.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "weather-cards",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(srv, httpapi.Handlers{
		Cards:   orch,
		Notices: notices,
		Theme:   theme,
		Clock:   clock,
	})

	go func() {
		entry.WithField("port", cfg.Port).Info("listening")
		if err := srv.Listen(":" + cfg.Port); err != nil {
			entry.WithError(err).Error("fiber server stopped")
		}
	}()

	// Wait for termination signal
	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.ShutdownWithContext(shutdownCtx); err != nil {
		entry.WithError(err).Error("error during shutdown")
	}
}
