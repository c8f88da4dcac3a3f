package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value   []byte
	expires time.Time
}

// Memory is an in-process cache. Entries expire after the TTL; when full,
// the entry closest to expiry is evicted.
type Memory struct {
	mu         sync.Mutex
	entries    map[string]memoryEntry
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// NewMemory returns an empty in-process cache. A zero TTL keeps entries
// until they are evicted.
func NewMemory(ttl time.Duration, maxEntries int) *Memory {
	return &Memory{
		entries:    make(map[string]memoryEntry),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.entries[key]
	if !ok {
		return nil, false, nil
	}
	if m.expired(entry) {
		delete(m.entries, key)
		return nil, false, nil
	}
	return entry.value, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.entries[key]; !exists && m.maxEntries > 0 && len(m.entries) >= m.maxEntries {
		m.evict()
	}

	entry := memoryEntry{value: append([]byte(nil), value...)}
	if m.ttl > 0 {
		entry.expires = m.now().Add(m.ttl)
	}
	m.entries[key] = entry
	return nil
}

// Len reports the number of stored entries, expired ones included.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clear(m.entries)
	return nil
}

func (m *Memory) expired(entry memoryEntry) bool {
	return !entry.expires.IsZero() && !m.now().Before(entry.expires)
}

// evict drops expired entries, or the one expiring soonest if none are.
// Callers hold mu.
func (m *Memory) evict() {
	var (
		oldestKey string
		oldest    time.Time
		found     bool
	)
	for key, entry := range m.entries {
		if m.expired(entry) {
			delete(m.entries, key)
			continue
		}
		if !found || entry.expires.Before(oldest) {
			oldestKey, oldest, found = key, entry.expires, true
		}
	}
	if len(m.entries) >= m.maxEntries && found {
		delete(m.entries, oldestKey)
	}
}
