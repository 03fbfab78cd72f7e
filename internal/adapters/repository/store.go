// Package repository holds memoized views keyed by the exact inputs that
// produced them.
package repository

import "context"

// Key is the full input tuple of one view computation. Two requests share
// a cached value only when every field is equal.
type Key struct {
	Version uint64
	View    string
	Team    string
	Role    string
	Query   string
	Sort    string
}

// Store provides read/write access to memoized views. Stored values must be
// treated as immutable by every caller.
type Store interface {
	// Get returns the value cached under key.
	Get(ctx context.Context, key Key) (any, bool)

	// Put caches value under key. Returns ErrNilValue for a nil value.
	Put(ctx context.Context, key Key, value any) error

	// Purge drops every entry whose version differs from keep and returns
	// how many were removed.
	Purge(ctx context.Context, keep uint64) int

	// Len returns the number of cached entries.
	Len(ctx context.Context) int
}
