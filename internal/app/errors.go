package app

import "github.com/cockroachdb/errors"

// Sentinel kinds for view requests.
var (
	// ErrLoading means the first dataset has not arrived yet.
	ErrLoading = errors.New("dataset is loading")
	// ErrSource marks errors reported by the data source.
	ErrSource = errors.New("data source error")
	// ErrNoLoader is returned by Refresh when no loader is configured.
	ErrNoLoader = errors.New("no dataset loader configured")
)
