package roster

import "github.com/cockroachdb/errors"

// Sentinel kinds for roster input errors.
var (
	ErrInvalidSort = errors.New("invalid sort state")
)
