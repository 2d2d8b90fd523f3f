package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/qepting91/listen-pipeline/internal/config"
	"github.com/qepting91/listen-pipeline/internal/pipeline"
	"github.com/qepting91/listen-pipeline/internal/scheduler"
)

func main() {
	godotenv.Load()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("Invalid configuration", "err", err)
		os.Exit(1)
	}

	p, err := pipeline.FromConfig(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize pipeline", "err", err)
		os.Exit(1)
	}
	logger.Info("Pipeline initialized",
		"mode", cfg.CollectorMode,
		"base_url", cfg.BaseURL,
		"output_dir", cfg.OutputDir,
		"resources", len(cfg.Resources),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	s := scheduler.New(p.FetchAndStore, cfg.TriggerAt, scheduler.LogSink{Logger: logger}, logger)
	if err := s.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Scheduler failed", "err", err)
		os.Exit(1)
	}
	logger.Info("Shutdown signal received")
}
