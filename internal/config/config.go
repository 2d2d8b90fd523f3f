package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/qepting91/listen-pipeline/internal/domain"
	"github.com/qepting91/listen-pipeline/internal/ingest"
)

const (
	DefaultBaseURL   = "http://localhost:8000"
	DefaultOutputDir = "data_output"
	DefaultTriggerAt = "02:00"
	DefaultTimeout   = 30 * time.Second
)

// TriggerTime is a wall-clock time of day in local time
type TriggerTime struct {
	Hour   int
	Minute int
}

func (t TriggerTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// ParseTrigger accepts "HH:MM" in 24h format
func ParseTrigger(s string) (TriggerTime, error) {
	ts, err := time.Parse("15:04", strings.TrimSpace(s))
	if err != nil {
		return TriggerTime{}, fmt.Errorf("invalid trigger time %q (want HH:MM): %w", s, err)
	}
	return TriggerTime{Hour: ts.Hour(), Minute: ts.Minute()}, nil
}

// Config is built once at startup and passed to the fetcher and the scheduler.
// Treat it as read-only after Load.
type Config struct {
	BaseURL         string
	OutputDir       string
	Resources       []domain.Resource
	TriggerAt       TriggerTime
	HTTPTimeout     time.Duration
	RequestInterval time.Duration
	CollectorMode   string
}

// Default returns the compiled-in configuration
func Default() Config {
	trigger, _ := ParseTrigger(DefaultTriggerAt)
	return Config{
		BaseURL:       DefaultBaseURL,
		OutputDir:     DefaultOutputDir,
		Resources:     domain.DefaultResources(),
		TriggerAt:     trigger,
		HTTPTimeout:   DefaultTimeout,
		CollectorMode: "http",
	}
}

// Load overlays environment variables on the defaults.
// Callers load any .env file beforehand (godotenv.Load).
func Load() (Config, error) {
	return FromLookup(os.LookupEnv)
}

// FromLookup is Load with a pluggable env source
func FromLookup(lookup func(string) (string, bool)) (Config, error) {
	cfg := Default()

	if v, ok := lookup("PIPELINE_BASE_URL"); ok && v != "" {
		cfg.BaseURL = v
	}
	if v, ok := lookup("PIPELINE_OUTPUT_DIR"); ok && v != "" {
		cfg.OutputDir = v
	}
	if v, ok := lookup("PIPELINE_TRIGGER_AT"); ok && v != "" {
		t, err := ParseTrigger(v)
		if err != nil {
			return Config{}, err
		}
		cfg.TriggerAt = t
	}
	if v, ok := lookup("PIPELINE_HTTP_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("PIPELINE_HTTP_TIMEOUT: %w", err)
		}
		cfg.HTTPTimeout = d
	}
	if v, ok := lookup("PIPELINE_REQUEST_INTERVAL"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("PIPELINE_REQUEST_INTERVAL: %w", err)
		}
		cfg.RequestInterval = d
	}
	if v, ok := lookup("PIPELINE_RESOURCES_FILE"); ok && v != "" {
		resources, err := ingest.LoadResources(v)
		if err != nil {
			return Config{}, fmt.Errorf("load resources: %w", err)
		}
		cfg.Resources = resources
	}
	if v, ok := lookup("COLLECTOR_MODE"); ok && v != "" {
		cfg.CollectorMode = v
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	u, err := url.Parse(c.BaseURL)
	if err != nil {
		return fmt.Errorf("invalid base url %q: %w", c.BaseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid base url %q: scheme must be http or https", c.BaseURL)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid base url %q: missing host", c.BaseURL)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output dir must not be empty")
	}
	if len(c.Resources) == 0 {
		return fmt.Errorf("resource list is empty")
	}
	if c.HTTPTimeout < 0 || c.RequestInterval < 0 {
		return fmt.Errorf("durations must not be negative")
	}
	return nil
}
