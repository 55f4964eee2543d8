package cache

import (
	"context"
	"slices"
	"sync"
)

var _ Backend = (*MemoryBackend)(nil)

// MemoryBackend keeps everything in process. Sets enumerate in insertion
// order.
type MemoryBackend struct {
	mu     sync.RWMutex
	values map[string]string
	sets   map[string][]string
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		values: make(map[string]string),
		sets:   make(map[string][]string),
	}
}

func (m *MemoryBackend) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryBackend) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *MemoryBackend) Del(_ context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
		delete(m.sets, k)
	}
	return nil
}

func (m *MemoryBackend) SAdd(_ context.Context, key string, members ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, member := range members {
		if !slices.Contains(m.sets[key], member) {
			m.sets[key] = append(m.sets[key], member)
		}
	}
	return nil
}

func (m *MemoryBackend) SRem(_ context.Context, key string, members ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	set := slices.DeleteFunc(m.sets[key], func(s string) bool {
		return slices.Contains(members, s)
	})
	if len(set) == 0 {
		delete(m.sets, key)
		return nil
	}
	m.sets[key] = set
	return nil
}

func (m *MemoryBackend) SMembers(_ context.Context, key string) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.sets[key]), nil
}

func (m *MemoryBackend) Ping(context.Context) error {
	return nil
}

func (m *MemoryBackend) Close() error {
	return nil
}
