package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"devdeck/internal/app"
	"devdeck/internal/config"
)

func main() {
	cfg, err := config.Load()
	logger := app.NewLogger(cfg)
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, cfg, logger); err != nil {
		logger.Fatalf("%v", err)
	}
}
