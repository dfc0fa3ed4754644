package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"unipile/docs"
	"unipile/internal/config"
	"unipile/internal/server"
	"unipile/internal/unipile"
)

// @title Unipile Gateway API
// @version 1.0
// @description HTTP tool endpoints forwarding to the Unipile messaging and email API.
// @BasePath /
func main() {
	// Load configuration
	cfg := config.Load()

	// Setup logger
	logger := cfg.SetupLogger()

	docs.SwaggerInfo.Version = cfg.Version

	// The gateway is useless without upstream credentials
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	client, err := unipile.NewClient(cfg.UpstreamHost, cfg.UpstreamAPIKey, http.DefaultClient, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create Unipile client")
	}
	logger.Info().Str("upstream_host", cfg.UpstreamHost).Msg("Unipile client configured")

	// Create and initialize server
	srv := server.New(cfg, unipile.NewService(client, logger), logger)
	srv.Initialize()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("Server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("Shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Graceful shutdown failed")
	}
}
