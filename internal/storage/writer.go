package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/qepting91/listen-pipeline/internal/domain"
)

// TimestampLayout gives second granularity: YYYYMMDD_HHMMSS
const TimestampLayout = "20060102_150405"

// WriterService persists fetch results as pretty-printed JSON artifacts
type WriterService struct {
	Dir string
}

// EnsureDir creates the output directory if it does not exist
func (w *WriterService) EnsureDir() error {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return fmt.Errorf("create output dir %s: %w", w.Dir, err)
	}
	return nil
}

// ArtifactPath returns {dir}/{resource}_{timestamp}.json
func (w *WriterService) ArtifactPath(resource domain.Resource, timestamp string) string {
	return filepath.Join(w.Dir, fmt.Sprintf("%s_%s.json", resource, timestamp))
}

// Write creates the artifact. Existing files are never overwritten.
func (w *WriterService) Write(resource domain.Resource, timestamp string, data json.RawMessage) (domain.Artifact, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return domain.Artifact{}, fmt.Errorf("indent %s: %w", resource, err)
	}
	buf.WriteByte('\n')

	path := w.ArtifactPath(resource, timestamp)
	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return domain.Artifact{}, fmt.Errorf("create artifact: %w", err)
	}

	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		return domain.Artifact{}, fmt.Errorf("write artifact %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return domain.Artifact{}, fmt.Errorf("close artifact %s: %w", path, err)
	}

	return domain.Artifact{Resource: resource, Timestamp: timestamp, Path: path}, nil
}
