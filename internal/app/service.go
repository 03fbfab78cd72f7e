// Package app assembles dashboard views from the current DataSource snapshot.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/singleflight"

	"github.com/okian/pitchside/internal/adapters/repository"
	"github.com/okian/pitchside/internal/adapters/source"
	"github.com/okian/pitchside/internal/domain/dedupe"
	"github.com/okian/pitchside/internal/domain/flatten"
	"github.com/okian/pitchside/internal/domain/model"
	"github.com/okian/pitchside/pkg/logger"
	"github.com/okian/pitchside/pkg/metrics"
)

const defaultCacheSize = 256

// Service holds the current DataSource snapshot and serves views computed
// from it. It is safe for concurrent use.
type Service struct {
	mu sync.RWMutex

	// Core components
	loader  source.Loader
	tracker dedupe.Tracker
	cache   repository.Store
	flight  singleflight.Group

	// Configuration
	cacheSize     int
	calendarOrder string

	// State
	state       model.SourceState
	version     uint64
	started     bool
	refreshes   uint64
	failures    uint64
	lastRefresh time.Time

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration. Until the first
// Refresh or Publish the service reports ErrLoading.
func New(opts ...Option) *Service {
	s := &Service{
		cacheSize:     defaultCacheSize,
		calendarOrder: CalendarFirstSeen,
		state:         model.SourceState{Loading: true},
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = logger.NewNop()
	}
	if s.tracker == nil {
		s.tracker = dedupe.NewTracker()
	}
	if s.cache == nil {
		s.cache = repository.NewLRUStore(repository.WithCapacity(s.cacheSize))
	}
	return s
}

// Start marks the service as running.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	s.started = true
	s.logger.Info(ctx, "dashboard service started",
		logger.Int("cacheSize", s.cacheSize),
		logger.String("calendarOrder", s.calendarOrder),
	)
	return nil
}

// Stop marks the service as stopped. Views stay readable.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "dashboard service stopped")
}

// Refresh loads a dataset and publishes the outcome. Concurrent calls
// share one load. Until a first snapshot is ready the service reports
// Loading; after that, views keep serving the current snapshot while the
// load is in flight. The load itself is detached from ctx: a caller that
// gives up stops waiting, but the load runs to completion and never
// publishes a failure caused by that caller's cancellation.
func (s *Service) Refresh(ctx context.Context) error {
	if s.loader == nil {
		return ErrNoLoader
	}
	ch := s.flight.DoChan("refresh", func() (any, error) {
		return nil, s.refresh(context.WithoutCancel(ctx))
	})
	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "refresh dataset")
	}
}

func (s *Service) refresh(ctx context.Context) error {
	start := time.Now()
	ds, err := s.loader.Load(ctx)
	latencyMs := float64(time.Since(start).Microseconds()) / 1000

	s.mu.Lock()
	s.refreshes++
	s.lastRefresh = time.Now()
	if err != nil {
		s.failures++
	}
	s.mu.Unlock()

	if err != nil {
		metrics.RecordDatasetLoad(metrics.LoadFailed, latencyMs)
		metrics.RecordErrorLatency("source", "load_failed", latencyMs)
		s.Publish(ctx, model.Failed(err.Error()))
		return errors.Wrap(err, "refresh dataset")
	}

	_, changed := s.Publish(ctx, model.Loaded(ds))
	switch {
	case ds == nil:
		metrics.RecordDatasetLoad(metrics.LoadNoData, latencyMs)
	case !changed:
		metrics.RecordDatasetLoad(metrics.LoadUnchanged, latencyMs)
	default:
		metrics.RecordDatasetLoad(metrics.LoadOK, latencyMs)
	}
	return nil
}

// Publish installs a DataSource snapshot. For a ready snapshot it returns
// the dataset version and whether the version changed; identical content
// keeps its version and its cached views.
func (s *Service) Publish(ctx context.Context, state model.SourceState) (uint64, bool) {
	if !state.Ready() {
		s.mu.Lock()
		s.state = state
		version := s.version
		s.mu.Unlock()

		if state.Err != "" {
			s.logger.Warn(ctx, "data source reported an error", logger.String("error", state.Err))
		}
		return version, false
	}

	version, changed := s.tracker.Observe(ctx, state.Data)

	s.mu.Lock()
	s.state = state
	s.version = version
	s.mu.Unlock()

	if changed {
		purged := s.cache.Purge(ctx, version)
		res := flatten.Flatten(state.Data)
		metrics.UpdateDatasetShape(version, len(res.Players), len(res.Teams), len(res.Matches))
		s.logger.Info(ctx, "dataset published",
			logger.Uint64("version", version),
			logger.Int("players", len(res.Players)),
			logger.Int("teams", len(res.Teams)),
			logger.Int("matches", len(res.Matches)),
			logger.Int("purgedViews", purged),
		)
	}
	return version, changed
}

// State returns the current snapshot.
func (s *Service) State() model.SourceState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Version returns the version of the dataset being served.
func (s *Service) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	state := s.state
	stats := map[string]interface{}{
		"started":   s.started,
		"version":   s.version,
		"loading":   state.Loading,
		"refreshes": s.refreshes,
		"failures":  s.failures,
	}
	if !s.lastRefresh.IsZero() {
		stats["lastRefresh"] = s.lastRefresh.UTC().Format(time.RFC3339)
	}
	s.mu.RUnlock()

	ctx := context.Background()
	if state.Err != "" {
		stats["error"] = state.Err
	}
	if state.Ready() {
		res := flatten.Flatten(state.Data)
		stats["players"] = len(res.Players)
		stats["teams"] = len(res.Teams)
		stats["matches"] = len(res.Matches)
	}
	stats["cachedViews"] = s.cache.Len(ctx)
	return stats
}

// snapshot returns the ready dataset and its version, or the error every
// view reports for the current state.
func (s *Service) snapshot(ctx context.Context, view string) (*model.Dataset, uint64, error) {
	s.mu.RLock()
	state, version := s.state, s.version
	s.mu.RUnlock()

	switch {
	case state.Loading:
		metrics.RecordViewRejected(view, "loading")
		return nil, 0, ErrLoading
	case state.Err != "":
		metrics.RecordViewRejected(view, "source_error")
		return nil, 0, errors.Mark(errors.Newf("%s", state.Err), ErrSource)
	}
	s.logger.Debug(ctx, "serving view", logger.String("view", view), logger.Uint64("version", version))
	return state.Data, version, nil
}
