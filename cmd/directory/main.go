package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/spec-kit/user-directory/internal/config"
	"github.com/spec-kit/user-directory/internal/directory"
	"github.com/spec-kit/user-directory/internal/observability"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// stdout belongs to the console.
	if cfg.Logger.Output == "stdout" {
		cfg.Logger.Output = "stderr"
	}
	logger, err := observability.NewLogger(cfg.Logger, "directory")
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	client := directory.NewClient(cfg.Directory.APIURL, cfg.Directory.Timeout())
	session := directory.NewSession(logger)
	// A failed first load leaves an empty directory; "reload" retries.
	_ = session.Refresh(ctx, client)

	if err := directory.NewConsole(session, client, os.Stdout).Run(ctx, os.Stdin); err != nil && ctx.Err() == nil {
		logger.Error("console stopped", zap.Error(err))
	}
}
