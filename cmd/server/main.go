package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/reshetovitsme/quote-feed/internal/di"
	"github.com/reshetovitsme/quote-feed/internal/shared/config"
	httpServer "github.com/reshetovitsme/quote-feed/internal/transport/http"
	"github.com/samber/do/v2"
	slogmulti "github.com/samber/slog-multi"
)

func main() {
	// Text to stdout at a level set once config is known, errors also as JSON to stderr
	level := new(slog.LevelVar)
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	jsonHandler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	})

	logger := slog.New(slogmulti.Fanout(textHandler, jsonHandler))
	slog.SetDefault(logger)

	injector, err := di.Setup(logger)
	if err != nil {
		slog.Error("Failed to setup dependency injection", "error", err)
		os.Exit(1)
	}

	if err := run(injector, level); err != nil {
		slog.Error("Application failed", "error", err)
		if err := di.Shutdown(injector); err != nil {
			slog.Error("Error during shutdown", "error", err)
		}
		os.Exit(1)
	}

	if err := di.Shutdown(injector); err != nil {
		slog.Error("Error during shutdown", "error", err)
		os.Exit(1)
	}
	slog.Info("Stopped")
}

func run(injector do.Injector, level *slog.LevelVar) error {
	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		return err
	}
	level.Set(cfg.LogLevel())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := di.Seed(ctx, injector); err != nil {
		return err
	}

	server, err := do.Invoke[*httpServer.Server](injector)
	if err != nil {
		return err
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- server.Start()
	}()

	slog.Info("Application started",
		"port", cfg.HTTPPort,
		"env", cfg.AppEnv,
		"storage", cfg.StorageDriver,
	)
	slog.Info("Press Ctrl+C to stop")

	select {
	case <-ctx.Done():
		slog.Info("Shutting down...")
		return nil
	case err := <-serveErr:
		return err
	}
}
