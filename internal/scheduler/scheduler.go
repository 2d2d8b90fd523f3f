package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/qepting91/listen-pipeline/internal/config"
	"github.com/qepting91/listen-pipeline/internal/domain"
)

// maxSleep bounds a single timer so wall-clock jumps (suspend, NTP) are noticed
const maxSleep = time.Hour

// Job performs one run
type Job func(ctx context.Context) domain.RunResult

// Scheduler runs a job once on start and then daily at a fixed local time.
// Runs happen on the caller's goroutine, so at most one is ever in flight.
// A job that panics is reported as a failed run carrying only its start
// time; jobs that need their timestamp and artifacts kept recover themselves
// (see pipeline.FetchAndStore).
type Scheduler struct {
	job    Job
	at     config.TriggerTime
	sink   domain.Sink
	logger *slog.Logger

	now  func() time.Time
	wait func(ctx context.Context, d time.Duration) error
}

func New(job Job, at config.TriggerTime, sink domain.Sink, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		job:    job,
		at:     at,
		sink:   sink,
		logger: logger,
		now:    time.Now,
		wait:   sleepContext,
	}
}

// NextFire returns the first occurrence of at strictly after now, in now's location.
func NextFire(now time.Time, at config.TriggerTime) time.Time {
	y, m, d := now.Date()
	next := time.Date(y, m, d, at.Hour, at.Minute, 0, 0, now.Location())
	if !next.After(now) {
		next = time.Date(y, m, d+1, at.Hour, at.Minute, 0, 0, now.Location())
	}
	return next
}

// Run blocks until ctx is cancelled and returns ctx.Err().
// The trigger is registered before the immediate run, so a trigger that
// passes while that run is still going fires as soon as it returns.
// Failed runs are reported to the sink and never stop the loop.
func (s *Scheduler) Run(ctx context.Context) error {
	next := NextFire(s.now(), s.at)
	s.logger.Info("Scheduler started. Waiting for scheduled runs...", "trigger", s.at.String())

	s.runOnce(ctx)

	for {
		s.logger.Info("Next run scheduled", "at", next.Format(time.RFC3339))

		for {
			if err := ctx.Err(); err != nil {
				s.logger.Info("Scheduler stopped")
				return err
			}
			remaining := next.Sub(s.now())
			if remaining <= 0 {
				break
			}
			if err := s.wait(ctx, min(remaining, maxSleep)); err != nil {
				s.logger.Info("Scheduler stopped")
				return err
			}
		}

		s.runOnce(ctx)

		// Triggers that passed during a run collapse into one
		next = NextFire(next, s.at)
		for !next.After(s.now()) {
			next = NextFire(next, s.at)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) (result domain.RunResult) {
	s.logger.Info("Starting scheduled data pipeline run")
	started := s.now()

	defer func() {
		if r := recover(); r != nil {
			result = domain.RunResult{
				StartedAt: started,
				Duration:  s.now().Sub(started),
				Err:       fmt.Errorf("pipeline panicked: %v", r),
			}
		}
		s.sink.Report(result)
	}()

	return s.job(ctx)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
