// Package main starts the standalone websocket game server.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"

	"setgame/internal/cmd/setserver"
	"setgame/internal/config"
	"setgame/internal/observability"
)

func main() {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}
	logger := observability.InitLogger("setserver", cfg.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := setserver.Run(ctx, cfg, logger); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
