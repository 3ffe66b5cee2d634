package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/lostnfound/backend/internal/config"
	"github.com/lostnfound/backend/internal/handlers"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	lostHandler *handlers.LostReportHandler,
	foundHandler *handlers.FoundReportHandler,
	locationHandler *handlers.LocationHandler,
	healthHandler *handlers.HealthHandler,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	lost := api.Group("/reports/lost")
	lost.Post("", lostHandler.Create)
	lost.Get("", lostHandler.List)
	lost.Get("/:id", lostHandler.GetPublic)
	lost.Get("/:id/manage", lostHandler.GetManaged)
	lost.Put("/:id/manage", lostHandler.UpdateManaged)
	lost.Delete("/:id/manage", lostHandler.DeleteManaged)
	lost.Post("/:id/found", lostHandler.MarkFound)
	lost.Post("/:id/found-detailed", lostHandler.AppendFinderReport)

	found := api.Group("/reports/found")
	found.Post("", foundHandler.Create)
	found.Get("", foundHandler.List)
	found.Get("/:id", foundHandler.Get)

	locations := api.Group("/locations")
	locations.Get("/countries", locationHandler.Countries)
	locations.Get("/states", locationHandler.States)
	locations.Get("/cities", locationHandler.Cities)

	// Uploaded attachments, served read-only by generated filename.
	app.Static("/images", cfg.ImageDir)
}
