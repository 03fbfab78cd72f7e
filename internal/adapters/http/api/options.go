package api

import "github.com/okian/pitchside/pkg/logger"

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the logger used for request and refresh logging.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}
