package domain

import (
	"context"
	"encoding/json"
	"time"
)

// Resource names one remote collection fetched each run
type Resource string

const (
	Tracks        Resource = "tracks"
	Users         Resource = "users"
	ListenHistory Resource = "listen_history"
)

// DefaultResources is the fixed fetch order
func DefaultResources() []Resource {
	return []Resource{Tracks, Users, ListenHistory}
}

// Artifact is one output file written for one resource in one run
type Artifact struct {
	Resource  Resource
	Timestamp string
	Path      string
}

// RunResult is the outcome of a single run. Err is nil on success.
type RunResult struct {
	Timestamp string
	StartedAt time.Time
	Duration  time.Duration
	Artifacts []Artifact
	Err       error
}

func (r RunResult) OK() bool { return r.Err == nil }

// Collector defines the interface for data fetching
type Collector interface {
	Fetch(ctx context.Context, resource Resource) (json.RawMessage, error)
}

// Sink receives the result of every scheduled run
type Sink interface {
	Report(result RunResult)
}
