// Package refresh reloads the dataset on a fixed interval.
package refresh

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-co-op/gocron/v2"

	"github.com/okian/pitchside/pkg/logger"
)

// Refresher is the operation the job runs.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Job calls Refresh once at start and then every interval. Runs never
// overlap; a run that overruns its slot pushes the next one back.
type Job struct {
	target   Refresher
	interval time.Duration
	logger   logger.Logger

	mu        sync.Mutex
	scheduler gocron.Scheduler
	runs      atomic.Uint64
	failures  atomic.Uint64
}

// New creates a refresh job with configuration options.
func New(target Refresher, opts ...Option) *Job {
	j := &Job{target: target}
	for _, opt := range opts {
		opt(j)
	}
	if j.logger == nil {
		j.logger = logger.NewNop()
	}
	return j
}

// Start runs the first refresh. With a positive interval it also starts
// the scheduler; otherwise the single run completes before Start returns.
// ctx bounds every run.
func (j *Job) Start(ctx context.Context) error {
	if j.interval <= 0 {
		j.run(ctx)
		return nil
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	if j.scheduler != nil {
		return nil
	}

	s, err := gocron.NewScheduler()
	if err != nil {
		return errors.Wrap(err, "create refresh scheduler")
	}
	_, err = s.NewJob(
		gocron.DurationJob(j.interval),
		gocron.NewTask(func() { j.run(ctx) }),
		gocron.WithName("dataset-refresh"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		_ = s.Shutdown()
		return errors.Wrap(err, "schedule dataset refresh")
	}
	s.Start()
	j.scheduler = s

	j.logger.Info(ctx, "dataset refresh scheduled", logger.Duration("interval", j.interval))
	return nil
}

// Stop shuts the scheduler down and waits for a running refresh.
func (j *Job) Stop() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.scheduler == nil {
		return nil
	}
	err := j.scheduler.Shutdown()
	j.scheduler = nil
	if err != nil {
		return errors.Wrap(err, "stop refresh scheduler")
	}
	return nil
}

// Runs returns how many refreshes have completed.
func (j *Job) Runs() uint64 { return j.runs.Load() }

// Failures returns how many refreshes returned an error.
func (j *Job) Failures() uint64 { return j.failures.Load() }

func (j *Job) run(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}
	start := time.Now()
	err := j.target.Refresh(ctx)
	j.runs.Add(1)
	if err != nil {
		j.failures.Add(1)
		j.logger.Warn(ctx, "dataset refresh failed",
			logger.Error(err),
			logger.Duration("took", time.Since(start)),
		)
		return
	}
	j.logger.Debug(ctx, "dataset refreshed", logger.Duration("took", time.Since(start)))
}
