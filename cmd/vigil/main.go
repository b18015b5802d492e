package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dmitrijs2005/vigilkeeper/internal/client/cli"
	"github.com/dmitrijs2005/vigilkeeper/internal/client/config"
	"github.com/dmitrijs2005/vigilkeeper/internal/logging"
)

func main() {

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadConfig()
	logger := logging.NewTextLogger(os.Stderr, cfg.LogLevel)

	app, err := cli.NewApp(ctx, cfg, logger)
	if err != nil {
		logger.Error(ctx, "startup failed", "error", err)
		os.Exit(1)
	}

	app.Run(ctx)

	if err := app.Close(context.Background()); err != nil {
		logger.Error(ctx, "shutdown failed", "error", err)
	}
}
