package snapshot

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/tair/storefront/pkg/logger"
)

// memoryStore implements Store with an in-process map, for tests and
// single-node development runs.
type memoryStore struct {
	mu      sync.RWMutex
	records map[string][]byte
	prefix  string
}

func newMemoryStore(prefix string) *memoryStore {
	return &memoryStore{
		records: make(map[string][]byte),
		prefix:  prefix,
	}
}

func (s *memoryStore) Load(ctx context.Context, key string, v any) error {
	s.mu.RLock()
	data, exists := s.records[s.prefix+key]
	s.mu.RUnlock()

	if !exists {
		return ErrNotFound
	}

	if err := json.Unmarshal(data, v); err != nil {
		logger.Warn(ctx).
			Err(err).
			Str("key", key).
			Msg("Discarding corrupt snapshot record")
		return ErrNotFound
	}

	return nil
}

func (s *memoryStore) Save(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.records[s.prefix+key] = data
	s.mu.Unlock()

	return nil
}

func (s *memoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.records, s.prefix+key)
	s.mu.Unlock()

	return nil
}

func (s *memoryStore) Close() error {
	return nil
}
