package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cktlab/drawdeck/internal/api"
	"github.com/cktlab/drawdeck/internal/config"
	"github.com/cktlab/drawdeck/internal/demo"
	"github.com/cktlab/drawdeck/internal/engine"
	"github.com/cktlab/drawdeck/internal/render"
	"github.com/cktlab/drawdeck/internal/server"
)

func main() {
	configPath := flag.String("config", "drawdeck.yaml", "Path to configuration file")
	flag.Parse()

	// 0. Initialize Logger
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("Failed to load config", "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded config", "config", cfg)

	// 2. Initialize the document engine with the built-in renderer
	eng := engine.New(render.NewDrawIO(), cfg.Engine.HistoryCap)

	// 3. Demo library
	demos := demo.NewLibrary(cfg.Demos.Dir)

	// 4. Initialize Server
	srv := server.New(cfg.Addr(), cfg.Server.Mode)
	api.NewService(eng, demos).RegisterRoutes(srv.Engine)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Signal handler triggers the shutdown sequence below.
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		slog.Info("Signal received, shutting down...")
		cancel()
	}()

	// HTTP server blocks until ctx is cancelled.
	if err := srv.Run(ctx); err != nil {
		slog.Error("Server stopped with error", "error", err)
	}

	slog.Info("Shutdown complete")
}
