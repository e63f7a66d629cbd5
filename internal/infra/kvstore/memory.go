package kvstore

import (
	"context"
	"sync"

	"academy-booking/internal/usecase/shared"
)

// Memory keeps entries in process. Drafts do not survive a restart.
type Memory struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{entries: make(map[string][]byte)}
}

func (m *Memory) Scope(deviceID string) shared.KVStore {
	return &memoryScope{m: m, ns: namespace(deviceID)}
}

type memoryScope struct {
	m  *Memory
	ns string
}

func (s *memoryScope) Get(_ context.Context, key string) ([]byte, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	v, ok := s.m.entries[s.ns+key]
	if !ok {
		return nil, shared.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *memoryScope) Set(_ context.Context, key string, value []byte) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	s.m.entries[s.ns+key] = append([]byte(nil), value...)
	return nil
}

func (s *memoryScope) Remove(_ context.Context, key string) error {
	s.m.mu.Lock()
	defer s.m.mu.Unlock()

	delete(s.m.entries, s.ns+key)
	return nil
}
