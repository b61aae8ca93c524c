package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/gema-assessment-intake/internal/config"
	"github.com/noah-isme/gema-assessment-intake/internal/handler"
	"github.com/noah-isme/gema-assessment-intake/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AssessmentHandler *handler.AssessmentHandler
	// MetricsEnabled exposes the Prometheus scrape endpoint at /metrics.
	MetricsEnabled bool
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))

	if deps.AssessmentHandler != nil {
		deps.AssessmentHandler.Register(api.Group("/assessment"))
	}

	if deps.MetricsEnabled {
		app.Get("/metrics", observability.MetricsHandler())
	}
}
