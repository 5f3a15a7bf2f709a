package kvstore

import (
	"context"
	"sort"
	"sync"
)

// MemoryStore keeps entries in a map. It is safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	data     map[string]string
	used     int64
	capacity int64
}

func NewMemoryStore(capacity int64) *MemoryStore {
	return &MemoryStore{data: make(map[string]string), capacity: capacity}
}

func (m *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(_ context.Context, key string, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	used := m.used
	if old, ok := m.data[key]; ok {
		used -= EntrySize(key, old)
	}
	size := EntrySize(key, value)
	if !fits(m.capacity, used, size) {
		return ErrQuotaExceeded
	}

	m.data[key] = value
	m.used = used + size
	return nil
}

func (m *MemoryStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if old, ok := m.data[key]; ok {
		m.used -= EntrySize(key, old)
		delete(m.data, key)
	}
	return nil
}

func (m *MemoryStore) Has(_ context.Context, key string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.data[key]
	return ok, nil
}

func (m *MemoryStore) Keys(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

func (m *MemoryStore) Usage(_ context.Context) (Usage, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Usage{Used: m.used, Capacity: m.capacity}, nil
}

func (m *MemoryStore) Close() error { return nil }
