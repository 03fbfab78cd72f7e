package source

import (
	"net/http"
	"time"
)

// Option applies a configuration option to the HTTPLoader.
type Option func(*HTTPLoader)

// WithTimeout bounds each fetch, including reading the body.
func WithTimeout(d time.Duration) Option {
	return func(l *HTTPLoader) {
		if d > 0 {
			l.timeout = d
		}
	}
}

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(l *HTTPLoader) {
		if c != nil {
			l.client = c
		}
	}
}

// WithMaxBytes caps the accepted document size.
func WithMaxBytes(n int64) Option {
	return func(l *HTTPLoader) {
		if n > 0 {
			l.maxBytes = n
		}
	}
}
