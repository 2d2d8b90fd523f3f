package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/qepting91/listen-pipeline/internal/config"
	"github.com/qepting91/listen-pipeline/internal/pipeline"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	result := p.FetchAndStore(ctx)
	if !result.OK() {
		logger.Error("Data pipeline failed", "err", result.Err, "artifacts", len(result.Artifacts))
		os.Exit(1)
	}
	logger.Info("Data pipeline executed successfully", "timestamp", result.Timestamp, "artifacts", len(result.Artifacts))
}
