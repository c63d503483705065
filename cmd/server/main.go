package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"govassets/internal/app"
	"govassets/internal/platform/config"
	"govassets/internal/platform/httpserver"
	"govassets/internal/platform/logger"
)

// main wires dependencies, serves the HTTP router and shuts down gracefully.
// Business logic lives in the internal service packages.
func main() {
	cfg, err := config.FromEnv()
	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)
	if err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	treasury, err := config.LoadTreasury(cfg.TreasuryFile)
	if err != nil {
		log.Error("invalid treasury file", "path", cfg.TreasuryFile, "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, treasury, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg config.Config, treasury config.Treasury, log *slog.Logger) error {
	application, err := app.New(ctx, cfg, treasury, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := application.Close(); err != nil {
			log.Error("failed to release resources", "error", err)
		}
	}()

	log.Info("starting govassets", "addr", cfg.Server.Addr, "rpc", cfg.Chain.Endpoint)
	return httpserver.New(cfg.Server, application.Handler(nil), log).Run(ctx)
}
