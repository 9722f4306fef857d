package kvstore

import (
	"context"
	"sync"

	"harborbank/pkg/platform/sentinel"
)

// InMemory keeps values in a map. State is lost on restart.
type InMemory struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemory() *InMemory {
	return &InMemory{values: make(map[string]string)}
}

func (s *InMemory) Get(_ context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	if !ok {
		return "", sentinel.ErrNotFound
	}
	return v, nil
}

func (s *InMemory) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *InMemory) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}
