package cache

import (
	"sync"
	"time"
)

// entry is the last successful payload for one key
type entry struct {
	payload   any
	fetchedAt time.Time
}

// Store is a process-lifetime, single-entry-per-key TTL cache.
// A refresh overwrites the entry only when the fetch succeeds.
type Store struct {
	mu      sync.Mutex
	entries map[string]entry
	now     func() time.Time
}

