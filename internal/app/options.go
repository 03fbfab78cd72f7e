package app

import (
	"github.com/okian/pitchside/internal/adapters/repository"
	"github.com/okian/pitchside/internal/adapters/source"
	"github.com/okian/pitchside/internal/domain/dedupe"
	"github.com/okian/pitchside/pkg/logger"
)

// Calendar group orders accepted by WithCalendarOrder.
const (
	CalendarFirstSeen     = "first_seen"
	CalendarChronological = "chronological"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLoader sets the DataSource used by Refresh.
func WithLoader(l source.Loader) Option {
	return func(s *Service) {
		s.loader = l
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCacheSize bounds the number of memoized views.
func WithCacheSize(n int) Option {
	return func(s *Service) {
		s.cacheSize = n
	}
}

// WithStore replaces the view cache. It takes precedence over WithCacheSize.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		s.cache = store
	}
}

// WithTracker replaces the dataset version tracker.
func WithTracker(t dedupe.Tracker) Option {
	return func(s *Service) {
		s.tracker = t
	}
}

// WithCalendarOrder selects how calendar days are ordered. Unknown values
// keep the default, CalendarFirstSeen.
func WithCalendarOrder(order string) Option {
	return func(s *Service) {
		switch order {
		case CalendarFirstSeen, CalendarChronological:
			s.calendarOrder = order
		}
	}
}
