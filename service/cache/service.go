package cache

import (
	"time"
)

func NewStore() *Store {
	return NewStoreWithClock(time.Now)
}

// NewStoreWithClock lets tests control expiry
func NewStoreWithClock(now func() time.Time) *Store {
	return &Store{
		entries: make(map[string]entry),
		now:     now,
	}
}

// Fetch returns the payload cached under key while it is younger than ttl,
// otherwise it calls fetch and caches the result on success.
// hit reports whether the payload came from the cache. A failed fetch leaves
// any previous entry in place and returns the error.
// Concurrent misses for the same key may each call fetch; the last writer wins.
func Fetch[T any](s *Store, key string, ttl time.Duration, fetch func() (T, error)) (payload T, hit bool, err error) {
	if cached, ok := s.lookup(key, ttl); ok {
		if typed, ok := cached.(T); ok {
			return typed, true, nil
		}
	}

	fresh, err := fetch()
	if err != nil {
		var zero T
		return zero, false, err
	}

	s.store(key, fresh)
	return fresh, false, nil
}

// Invalidate drops the entry for key
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
}

func (s *Store) lookup(key string, ttl time.Duration) (any, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if s.now().Sub(e.fetchedAt) >= ttl {
		return nil, false
	}
	return e.payload, true
}

func (s *Store) store(key string, payload any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = entry{payload: payload, fetchedAt: s.now()}
}
