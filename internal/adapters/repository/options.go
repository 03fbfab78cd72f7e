package repository

// Option applies a configuration option to the LRUStore.
type Option func(*LRUStore)

// WithCapacity bounds the number of cached views. Zero or a negative value
// means unbounded.
func WithCapacity(n int) Option {
	return func(s *LRUStore) {
		s.capacity = n
	}
}
