package collector

import (
	"fmt"

	"github.com/qepting91/listen-pipeline/internal/config"
	"github.com/qepting91/listen-pipeline/internal/domain"
)

// NewCollector selects the correct implementation based on the collector mode
func NewCollector(cfg config.Config) (domain.Collector, error) {
	switch cfg.CollectorMode {
	case "http", "":
		return NewHTTPClient(cfg.BaseURL, cfg.HTTPTimeout, cfg.RequestInterval), nil
	case "mock":
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown COLLECTOR_MODE: %s (use 'http' or 'mock')", cfg.CollectorMode)
	}
}
