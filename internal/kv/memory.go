package kv

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// MemoryStore is an in-process Store used for development and tests.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

type memoryEntry struct {
	data      []byte
	revision  int64
	expiresAt time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (s *MemoryStore) live(key string) (memoryEntry, bool) {
	e, ok := s.entries[key]
	if !ok {
		return memoryEntry{}, false
	}
	if !e.expiresAt.IsZero() && !s.now().Before(e.expiresAt) {
		delete(s.entries, key)
		return memoryEntry{}, false
	}
	return e, true
}

// Get decodes the value stored at key into dst.
func (s *MemoryStore) Get(ctx context.Context, key string, dst any) (int64, error) {
	s.mu.Lock()
	e, ok := s.live(key)
	s.mu.Unlock()
	if !ok {
		return 0, ErrNotFound
	}

	if err := json.Unmarshal(e.data, dst); err != nil {
		return 0, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return e.revision, nil
}

// Put stores value at key.
func (s *MemoryStore) Put(ctx context.Context, key string, value any, opts ...PutOption) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}
	o := applyPutOptions(opts)

	s.mu.Lock()
	defer s.mu.Unlock()

	current, exists := s.live(key)
	if o.conditional && current.revision != o.revision {
		return ErrConflict
	}

	next := memoryEntry{data: data, revision: 1}
	if exists {
		next.revision = current.revision + 1
	}
	if o.ttl > 0 {
		next.expiresAt = s.now().Add(o.ttl)
	}
	s.entries[key] = next
	return nil
}

// Delete removes key.
func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
	return nil
}

// Len returns the number of live keys.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for key := range s.entries {
		if _, ok := s.live(key); ok {
			n++
		}
	}
	return n
}
