package api

import (
	"os/exec"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lk16/othengine/internal/middleware"
	"github.com/lk16/othengine/internal/services"
)

// Version is determined once at startup.
var Version = VersionResponse{Commit: gitCommit()}

func gitCommit() string {
	output, err := exec.Command("git", "rev-parse", "HEAD").Output()
	if err != nil {
		return "unknown"
	}
	return strings.TrimSpace(string(output))
}

// SetupRoutes sets up the API routes. A non-empty token protects the /api group.
func SetupRoutes(app *fiber.App, services *services.Services, token string) {
	handlers := NewHandlers(services)

	apiGroup := app.Group("/api", middleware.Token(token))

	// Analysis routes
	apiGroup.Post("/moves", handlers.GetMoves)
	apiGroup.Post("/search", handlers.Search)

	// Archive routes
	apiGroup.Get("/games", handlers.ListGames)
	apiGroup.Get("/games/:id", handlers.GetGame)

	app.Get("/version", versionHandler)
}

func versionHandler(c *fiber.Ctx) error {
	return c.JSON(Version)
}
