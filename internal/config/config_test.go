package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/qepting91/listen-pipeline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envFrom(m map[string]string) func(string) (string, bool) {
	return func(k string) (string, bool) {
		v, ok := m[k]
		return v, ok
	}
}

func TestFromLookup_Defaults(t *testing.T) {
	cfg, err := FromLookup(envFrom(nil))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.BaseURL)
	assert.Equal(t, "data_output", cfg.OutputDir)
	assert.Equal(t, []domain.Resource{"tracks", "users", "listen_history"}, cfg.Resources)
	assert.Equal(t, TriggerTime{Hour: 2, Minute: 0}, cfg.TriggerAt)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Zero(t, cfg.RequestInterval)
	assert.Equal(t, "http", cfg.CollectorMode)
}

func TestFromLookup_Overrides(t *testing.T) {
	dir := t.TempDir()
	resources := filepath.Join(dir, "resources.csv")
	require.NoError(t, os.WriteFile(resources, []byte("resource\nusers\ntracks\n"), 0o644))

	cfg, err := FromLookup(envFrom(map[string]string{
		"PIPELINE_BASE_URL":         "https://api.example.com/v1",
		"PIPELINE_OUTPUT_DIR":       dir,
		"PIPELINE_TRIGGER_AT":       "23:45",
		"PIPELINE_HTTP_TIMEOUT":     "5s",
		"PIPELINE_REQUEST_INTERVAL": "250ms",
		"PIPELINE_RESOURCES_FILE":   resources,
		"COLLECTOR_MODE":            "mock",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/v1", cfg.BaseURL)
	assert.Equal(t, dir, cfg.OutputDir)
	assert.Equal(t, TriggerTime{Hour: 23, Minute: 45}, cfg.TriggerAt)
	assert.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, 250*time.Millisecond, cfg.RequestInterval)
	assert.Equal(t, []domain.Resource{"users", "tracks"}, cfg.Resources)
	assert.Equal(t, "mock", cfg.CollectorMode)
}

func TestFromLookup_Invalid(t *testing.T) {
	cases := map[string]map[string]string{
		"trigger":  {"PIPELINE_TRIGGER_AT": "25:00"},
		"timeout":  {"PIPELINE_HTTP_TIMEOUT": "soon"},
		"interval": {"PIPELINE_REQUEST_INTERVAL": "-1s"},
		"scheme":   {"PIPELINE_BASE_URL": "ftp://example.com"},
		"no host":  {"PIPELINE_BASE_URL": "http://"},
		"missing":  {"PIPELINE_RESOURCES_FILE": "/nonexistent/resources.csv"},
	}
	for name, env := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := FromLookup(envFrom(env))
			assert.Error(t, err)
		})
	}
}

func TestParseTrigger(t *testing.T) {
	tt, err := ParseTrigger(" 07:05 ")
	require.NoError(t, err)
	assert.Equal(t, TriggerTime{Hour: 7, Minute: 5}, tt)
	assert.Equal(t, "07:05", tt.String())

	_, err = ParseTrigger("7pm")
	assert.Error(t, err)
}
