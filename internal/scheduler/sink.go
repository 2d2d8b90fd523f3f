package scheduler

import (
	"log/slog"

	"github.com/qepting91/listen-pipeline/internal/domain"
)

// LogSink reports run results as structured log records
type LogSink struct {
	Logger *slog.Logger
}

func (ls LogSink) Report(result domain.RunResult) {
	logger := ls.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if !result.OK() {
		logger.Error("Error during pipeline execution",
			"err", result.Err,
			"timestamp", result.Timestamp,
			"artifacts", len(result.Artifacts),
			"duration", result.Duration,
		)
		return
	}
	logger.Info("Pipeline run completed successfully",
		"timestamp", result.Timestamp,
		"artifacts", len(result.Artifacts),
		"duration", result.Duration,
	)
}
