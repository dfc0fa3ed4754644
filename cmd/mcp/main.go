package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"unipile/internal/config"
	"unipile/internal/mcpserver"
	"unipile/internal/unipile"
)

func main() {
	cfg := config.Load()

	// stdout belongs to the MCP protocol
	logger := cfg.NewLogger(os.Stderr)

	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("Invalid configuration")
	}

	client, err := unipile.NewClient(cfg.UpstreamHost, cfg.UpstreamAPIKey, http.DefaultClient, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create Unipile client")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := mcpserver.NewServer(unipile.NewService(client, logger), cfg.Version, logger)
	if err := srv.Run(ctx); err != nil {
		logger.Error().Err(err).Msg("MCP server stopped")
	}
}
