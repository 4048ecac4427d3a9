package cache

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func (e memoryEntry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// Memory is an in-process Cache
type Memory struct {
	mu          sync.RWMutex
	entries     map[string]map[string]memoryEntry // entity -> params -> entry
	generations map[string]uint64
	now         func() time.Time
}

// NewMemory creates an empty in-process cache
func NewMemory() *Memory {
	return &Memory{
		entries:     make(map[string]map[string]memoryEntry),
		generations: make(map[string]uint64),
		now:         time.Now,
	}
}

func (m *Memory) Get(_ context.Context, key Key) ([]byte, error) {
	m.mu.RLock()
	entry, ok := m.entries[key.Entity][key.Params]
	m.mu.RUnlock()

	if !ok {
		return nil, ErrMiss
	}
	if entry.expired(m.now()) {
		m.mu.Lock()
		// a Set may have replaced the entry since the read lock was released
		if current, ok := m.entries[key.Entity][key.Params]; ok && current.expired(m.now()) {
			delete(m.entries[key.Entity], key.Params)
		}
		m.mu.Unlock()
		return nil, ErrMiss
	}

	out := make([]byte, len(entry.value))
	copy(out, entry.value)
	return out, nil
}

func (m *Memory) Set(_ context.Context, key Key, value []byte, ttl time.Duration) error {
	entry := m.newEntry(value, ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	m.store(key, entry)
	return nil
}

func (m *Memory) Generation(_ context.Context, entity string) (uint64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.generations[entity], nil
}

func (m *Memory) SetIfGeneration(_ context.Context, key Key, gen uint64, value []byte, ttl time.Duration) error {
	entry := m.newEntry(value, ttl)

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.generations[key.Entity] != gen {
		return ErrStale
	}
	m.store(key, entry)
	return nil
}

func (m *Memory) Invalidate(_ context.Context, entities ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range entities {
		delete(m.entries, e)
		m.generations[e]++
	}
	return nil
}

// Len reports the number of live entries
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, params := range m.entries {
		n += len(params)
	}
	return n
}

func (m *Memory) newEntry(value []byte, ttl time.Duration) memoryEntry {
	entry := memoryEntry{value: make([]byte, len(value))}
	copy(entry.value, value)
	if ttl > 0 {
		entry.expiresAt = m.now().Add(ttl)
	}
	return entry
}

// store must be called with mu held
func (m *Memory) store(key Key, entry memoryEntry) {
	params, ok := m.entries[key.Entity]
	if !ok {
		params = make(map[string]memoryEntry)
		m.entries[key.Entity] = params
	}
	params[key.Params] = entry
}
