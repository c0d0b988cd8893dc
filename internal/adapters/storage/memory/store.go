package memory

import (
	"context"
	"sync"
)

// Store is a process-local key-value store. Values are lost on restart.
type Store struct {
	mu    sync.RWMutex
	items map[string]map[string]string
}

func NewStore() *Store {
	return &Store{
		items: make(map[string]map[string]string),
	}
}

func (s *Store) Get(ctx context.Context, namespace, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[namespace][key]
	return v, ok, nil
}

func (s *Store) Set(ctx context.Context, namespace, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ns, ok := s.items[namespace]
	if !ok {
		ns = make(map[string]string)
		s.items[namespace] = ns
	}
	ns[key] = value
	return nil
}

func (s *Store) Close() {}
