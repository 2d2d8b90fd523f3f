package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/qepting91/listen-pipeline/internal/collector"
	"github.com/qepting91/listen-pipeline/internal/config"
	"github.com/qepting91/listen-pipeline/internal/domain"
	"github.com/qepting91/listen-pipeline/internal/storage"
)

// Pipeline runs one fetch-and-persist pass over a fixed resource list.
type Pipeline struct {
	collector domain.Collector
	writer    *storage.WriterService
	resources []domain.Resource
	logger    *slog.Logger
	now       func() time.Time
}

func New(collector domain.Collector, writer *storage.WriterService, resources []domain.Resource, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		collector: collector,
		writer:    writer,
		resources: append([]domain.Resource(nil), resources...),
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock overrides the clock used for the run timestamp
func (p *Pipeline) WithClock(now func() time.Time) *Pipeline {
	p.now = now
	return p
}

// FetchAndStore fetches every resource in order and writes one artifact each.
// The first failure aborts the run; artifacts written before it are kept and
// listed in the result. A panic is reported the same way.
func (p *Pipeline) FetchAndStore(ctx context.Context) (result domain.RunResult) {
	started := p.now()
	result = domain.RunResult{
		Timestamp: started.Format(storage.TimestampLayout),
		StartedAt: started,
	}
	defer func() {
		if r := recover(); r != nil {
			result.Err = fmt.Errorf("pipeline panicked: %v", r)
		}
		result.Duration = p.now().Sub(started)
	}()

	if err := p.writer.EnsureDir(); err != nil {
		result.Err = err
		return result
	}

	for _, resource := range p.resources {
		data, err := p.collector.Fetch(ctx, resource)
		if err != nil {
			result.Err = fmt.Errorf("fetch %s: %w", resource, err)
			return result
		}

		artifact, err := p.writer.Write(resource, result.Timestamp, data)
		if err != nil {
			result.Err = fmt.Errorf("store %s: %w", resource, err)
			return result
		}
		p.logger.Debug("Artifact written", "resource", resource, "path", artifact.Path)
		result.Artifacts = append(result.Artifacts, artifact)
	}

	return result
}

// FromConfig wires the collector and writer described by cfg
func FromConfig(cfg config.Config, logger *slog.Logger) (*Pipeline, error) {
	client, err := collector.NewCollector(cfg)
	if err != nil {
		return nil, err
	}
	writer := &storage.WriterService{Dir: cfg.OutputDir}
	return New(client, writer, cfg.Resources, logger), nil
}
