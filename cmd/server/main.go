package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"github.com/lostnfound/backend/internal/attachments"
	"github.com/lostnfound/backend/internal/config"
	"github.com/lostnfound/backend/internal/database"
	"github.com/lostnfound/backend/internal/dto"
	"github.com/lostnfound/backend/internal/handlers"
	"github.com/lostnfound/backend/internal/logging"
	"github.com/lostnfound/backend/internal/mailer"
	"github.com/lostnfound/backend/internal/middleware"
	"github.com/lostnfound/backend/internal/routes"
	"github.com/lostnfound/backend/internal/services"
	"github.com/lostnfound/backend/internal/store"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
			// ERROR+ records also go to Sentry.
			slog.SetDefault(slog.New(logging.NewMultiHandler(
				logging.StdoutHandler(),
				logging.NewSentryHandler(),
			)))
		}
	}

	// Database
	db, err := database.Connect(context.Background(), cfg)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}

	// Attachment storage
	attachStore, err := attachments.NewStore(cfg.ImageDir)
	if err != nil {
		slog.Error("attachment directory unavailable", "dir", cfg.ImageDir, "error", err)
		os.Exit(1)
	}

	// Services
	reportService := services.NewReportService(
		store.NewLostReports(db),
		store.NewFoundReports(db),
		attachStore,
		mailer.New(cfg),
		cfg,
	)
	locationService := services.NewLocationService(cfg)

	// Handlers
	lostHandler := handlers.NewLostReportHandler(reportService)
	foundHandler := handlers.NewFoundReportHandler(reportService)
	locationHandler := handlers.NewLocationHandler(locationService)
	healthHandler := handlers.NewHealthHandler(db)

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    32 * 1024 * 1024, // five images per submission
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		return c.Next()
	})

	// Routes
	routes.Setup(app, cfg, lostHandler, foundHandler, locationHandler, healthHandler)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.Disconnect(ctx); err != nil {
		slog.Error("database close error", "error", err)
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(dto.ErrorResponse{
		Error:   true,
		Message: message,
	})
}
