// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and the environment over those defaults.
// - External errors are marked with this package's sentinels.
package config

import "time"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn warning error"`

	// LogFormat selects the log encoder: json or console.
	LogFormat string `koanf:"log_format" validate:"oneof=json console"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr" validate:"required"`

	// DataFile is a JSON dataset on disk. Ignored when DataURL is set.
	DataFile string `koanf:"data_file"`

	// DataURL is fetched with GET on every refresh.
	DataURL string `koanf:"data_url" validate:"omitempty,url"`

	// RefreshIntervalSec is the time between reloads; 0 loads once at startup.
	RefreshIntervalSec int `koanf:"refresh_interval_sec" validate:"gte=0"`

	// FetchTimeoutMS bounds one DataURL fetch.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms" validate:"gt=0"`

	// CacheSize bounds memoized views; 0 means unbounded.
	CacheSize int `koanf:"cache_size" validate:"gte=0"`

	// CalendarOrder orders calendar days: first_seen or chronological.
	CalendarOrder string `koanf:"calendar_order" validate:"oneof=first_seen chronological"`

	// MetricsNamespace prefixes every exported metric.
	MetricsNamespace string `koanf:"metrics_namespace" validate:"required"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:           "info",
		LogFormat:          "json",
		Addr:               ":9080",
		RefreshIntervalSec: 60,
		FetchTimeoutMS:     5000,
		CacheSize:          256,
		CalendarOrder:      "first_seen",
		MetricsNamespace:   "pitchside",
	}
}

// RefreshInterval returns RefreshIntervalSec as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalSec) * time.Second
}

// FetchTimeout returns FetchTimeoutMS as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}
