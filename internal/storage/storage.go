// Package storage persists JSON blobs under string keys. Every store in the
// tracker goes through an Adapter so the backing engine can be swapped
// without touching domain code.
package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Adapter is a minimal key-value store. Get reports ok=false for an absent
// key; that is not an error.
type Adapter interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}

// LoadJSON rehydrates key into dst. It returns false when the key is absent
// or its value cannot be decoded; dst is then left untouched apart from what
// a partial decode may have written, so callers decode into a scratch value.
// Decode failures are logged and swallowed. Only adapter failures are returned.
func LoadJSON(ctx context.Context, a Adapter, log *zap.Logger, key string, dst any) (bool, error) {
	raw, ok, err := a.Get(ctx, key)
	if err != nil {
		return false, fmt.Errorf("storage get %q: %w", key, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		if log != nil {
			log.Warn("discarding unparseable stored value", zap.String("key", key), zap.Error(err))
		}
		return false, nil
	}
	return true, nil
}

// SaveJSON encodes v and writes it under key.
func SaveJSON(ctx context.Context, a Adapter, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage encode %q: %w", key, err)
	}
	if err := a.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("storage set %q: %w", key, err)
	}
	return nil
}

// Memory is an in-process Adapter.
type Memory struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemory returns an empty Memory adapter.
func NewMemory() *Memory {
	return &Memory{data: make(map[string][]byte)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = append([]byte(nil), value...)
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}
