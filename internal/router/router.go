package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/noah-isme/lms-go-api/internal/config"
	"github.com/noah-isme/lms-go-api/internal/handler"
	"github.com/noah-isme/lms-go-api/internal/observability"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler       *handler.AuthHandler
	CourseHandler     *handler.CourseHandler
	EnrollmentHandler *handler.EnrollmentHandler
	SubmissionHandler *handler.SubmissionHandler
	AuthMiddleware    fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	// Use the provided authentication middleware, or a no-op if nil.
	authMiddleware := deps.AuthMiddleware
	if authMiddleware == nil {
		authMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		app.Post("/auth/login", deps.AuthHandler.Login)
	}

	app.Get("/metrics", observability.MetricsHandler())

	api := app.Group("/api/v1", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	}, authMiddleware)

	api.Get("/health", handler.HealthCheck(cfg))

	if deps.AuthHandler != nil {
		api.Get("/me", deps.AuthHandler.WhoAmI)
	}

	if deps.CourseHandler != nil {
		deps.CourseHandler.Register(api.Group("/courses"))
	}

	// Enrollment and submission routes span several prefixes, so they register
	// against the versioned group directly.
	if deps.EnrollmentHandler != nil {
		deps.EnrollmentHandler.Register(api)
	}

	if deps.SubmissionHandler != nil {
		deps.SubmissionHandler.Register(api)
	}
}
