package repository

import (
	"container/list"
	"context"
	"sync"

	"github.com/okian/pitchside/pkg/metrics"
)

const defaultCapacity = 256

type entry struct {
	key   Key
	value any
}

// LRUStore is an in-memory Store that evicts the least recently used view
// once capacity is reached.
type LRUStore struct {
	mu       sync.Mutex
	items    map[Key]*list.Element
	order    *list.List // front = most recently used
	capacity int
}

// NewLRUStore creates a new view cache with configuration options.
func NewLRUStore(opts ...Option) *LRUStore {
	s := &LRUStore{
		items:    make(map[Key]*list.Element),
		order:    list.New(),
		capacity: defaultCapacity,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the cached value and marks it recently used.
func (s *LRUStore) Get(_ context.Context, key Key) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	el, ok := s.items[key]
	if !ok {
		metrics.RecordCacheMiss(key.View)
		return nil, false
	}
	s.order.MoveToFront(el)
	metrics.RecordCacheHit(key.View)
	return el.Value.(*entry).value, true
}

// Put stores value, replacing any previous value under key.
func (s *LRUStore) Put(_ context.Context, key Key, value any) error {
	if value == nil {
		return ErrNilValue
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if el, ok := s.items[key]; ok {
		el.Value.(*entry).value = value
		s.order.MoveToFront(el)
		return nil
	}
	s.items[key] = s.order.PushFront(&entry{key: key, value: value})
	for s.capacity > 0 && s.order.Len() > s.capacity {
		s.removeElement(s.order.Back())
	}
	metrics.UpdateCacheEntries(s.order.Len())
	return nil
}

// Purge drops every entry not computed from version keep.
func (s *LRUStore) Purge(_ context.Context, keep uint64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for el := s.order.Front(); el != nil; {
		next := el.Next()
		if el.Value.(*entry).key.Version != keep {
			s.removeElement(el)
			removed++
		}
		el = next
	}
	metrics.UpdateCacheEntries(s.order.Len())
	return removed
}

// Len returns the number of cached entries.
func (s *LRUStore) Len(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.order.Len()
}

// must be called with s.mu held.
func (s *LRUStore) removeElement(el *list.Element) {
	s.order.Remove(el)
	delete(s.items, el.Value.(*entry).key)
}
