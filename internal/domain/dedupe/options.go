package dedupe

// Option applies a configuration option to the Tracker.
type Option func(*fingerprintTracker)

// WithStartVersion makes the first observed dataset get version start+1.
func WithStartVersion(start uint64) Option {
	return func(t *fingerprintTracker) {
		t.version = start
	}
}
