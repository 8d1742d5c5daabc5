package internal

import (
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/othengine/internal/api"
	"github.com/lk16/othengine/internal/config"
	"github.com/lk16/othengine/internal/middleware"
	"github.com/lk16/othengine/internal/services"
)

const (
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 30 * time.Second // Searches at the maximum depth can take a while
	defaultIdleTimeout  = 5 * time.Second
	defaultBodyLimit    = 64 * 1024
)

// SetupApp creates the Fiber app serving the analysis API. Request logs are written to logOutput.
func SetupApp(cfg *config.Config, services *services.Services, logOutput io.Writer) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:           defaultReadTimeout,
		WriteTimeout:          defaultWriteTimeout,
		IdleTimeout:           defaultIdleTimeout,
		BodyLimit:             defaultBodyLimit,
		ErrorHandler:          errorHandler,
		DisableStartupMessage: true,
	})

	// Add logging middleware
	app.Use(middleware.Logging(logOutput))

	// Setup all routes
	api.SetupRoutes(app, services, cfg.APIToken)

	return app
}

// errorHandler renders every error as a JSON object with an "error" field.
func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		code = fiberErr.Code
	}

	if code >= fiber.StatusInternalServerError {
		slog.Error("Request failed", "path", c.Path(), "error", err)
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
	})
}
