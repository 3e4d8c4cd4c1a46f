package settings

import (
	"context"
	"fmt"
	"sync"

	"github.com/starford/randomnote/internal/apperr"
)

// Memory is an in-process Store.
type Memory struct {
	mu     sync.Mutex
	values map[string]string
}

// NewMemory returns a Memory store seeded with values.
func NewMemory(values map[string]string) *Memory {
	m := &Memory{values: make(map[string]string, len(values))}
	for k, v := range values {
		m.values[k] = v
	}
	return m
}

// Get implements Store.
func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return "", fmt.Errorf("settings: %s: %w", key, apperr.ErrNotFound)
	}
	return v, nil
}

// Set implements Store.
func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

// Close implements io.Closer.
func (m *Memory) Close() error { return nil }
