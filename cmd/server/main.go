package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/lk16/othengine/internal"
	"github.com/lk16/othengine/internal/config"
	"github.com/lk16/othengine/internal/services"
)

func main() {
	config.SetLogLevel()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	svc, err := services.InitServices(context.Background(), cfg)
	if err != nil {
		slog.Error("Failed to initialize services", "error", err)
		os.Exit(1)
	}
	defer svc.Close() //nolint:errcheck

	// Setup app
	app := internal.SetupApp(cfg, svc, os.Stdout)

	// Start server
	address := cfg.ServerHost + ":" + cfg.ServerPort
	slog.Info("Listening", "address", address)

	if err = app.Listen(address); err != nil {
		slog.Error("Server stopped", "error", err)
		os.Exit(1) //nolint:gocritic
	}
}
