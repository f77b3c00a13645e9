package storage

import (
	"context"
	"maps"
	"sync"
)

// MemoryStore keeps values in a map. Nothing survives a restart.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		values: make(map[string][]byte),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// WithinTx stages writes on a copy of the map and swaps it in when fn succeeds.
func (s *MemoryStore) WithinTx(ctx context.Context, fn func(ctx context.Context, kv KV) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{values: maps.Clone(s.values)}
	if err := fn(ctx, tx); err != nil {
		return err
	}

	s.values = tx.values
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// memoryTx is only used while the parent lock is held.
type memoryTx struct {
	values map[string][]byte
}

func (t *memoryTx) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := t.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

func (t *memoryTx) Set(_ context.Context, key string, value []byte) error {
	t.values[key] = append([]byte(nil), value...)
	return nil
}

func (t *memoryTx) Delete(_ context.Context, key string) error {
	delete(t.values, key)
	return nil
}
