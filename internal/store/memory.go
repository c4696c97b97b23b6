package store

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// Memory is an in-memory Store. It records how many times each document was
// saved so callers can tell a rewrite from a no-op.
type Memory struct {
	mu    sync.RWMutex
	docs  map[string][]byte
	saves map[string]int
}

// NewMemory returns a Memory seeded with docs.
func NewMemory(docs map[string]string) *Memory {
	m := &Memory{
		docs:  make(map[string][]byte, len(docs)),
		saves: make(map[string]int),
	}
	for name, text := range docs {
		m.docs[name] = []byte(text)
	}
	return m
}

// List implements Store.
func (m *Memory) List(ctx context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	names := make([]string, 0, len(m.docs))
	for name := range m.docs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// Load implements Store.
func (m *Memory) Load(ctx context.Context, name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.docs[name]
	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	return append([]byte(nil), data...), nil
}

// Save implements Store.
func (m *Memory) Save(ctx context.Context, name string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.docs[name] = append([]byte(nil), data...)
	m.saves[name]++
	return nil
}

// Text returns the current content of a document.
func (m *Memory) Text(name string) string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return string(m.docs[name])
}

// Saves returns how many times name was saved.
func (m *Memory) Saves(name string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves[name]
}
