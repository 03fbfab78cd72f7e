package refresh

import (
	"time"

	"github.com/okian/pitchside/pkg/logger"
)

// Option applies a configuration option to the Job.
type Option func(*Job)

// WithInterval sets the time between refreshes. Zero or less means a
// single refresh at start.
func WithInterval(d time.Duration) Option {
	return func(j *Job) {
		j.interval = d
	}
}

// WithLogger sets the job's logger.
func WithLogger(l logger.Logger) Option {
	return func(j *Job) {
		if l != nil {
			j.logger = l
		}
	}
}
