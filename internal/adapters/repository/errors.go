package repository

import "github.com/cockroachdb/errors"

// Sentinel kinds for view cache errors.
var (
	ErrNilValue = errors.New("cannot cache a nil view")
)
