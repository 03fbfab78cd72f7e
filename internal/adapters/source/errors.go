package source

import "github.com/cockroachdb/errors"

// Sentinel kinds for data source errors.
var (
	ErrNoSource       = errors.New("no data source configured")
	ErrUpstreamStatus = errors.New("unexpected upstream status")
	ErrDecode         = errors.New("malformed dataset document")
	ErrTooLarge       = errors.New("dataset document too large")
)
