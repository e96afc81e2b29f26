package memory

import (
	"context"
	"sync"

	"pawsense/internal/ports/sessionstore"
)

// sessionStore es el fallback en memoria cuando no hay Redis ni SQLite.
type sessionStore struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

func NewSessionStore() sessionstore.Store {
	return &sessionStore{
		data: make(map[string]map[string][]byte),
	}
}

func (s *sessionStore) Put(ctx context.Context, namespace, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ns, ok := s.data[namespace]
	if !ok {
		ns = make(map[string][]byte)
		s.data[namespace] = ns
	}
	ns[key] = append([]byte(nil), value...)
	return nil
}

func (s *sessionStore) Get(ctx context.Context, namespace, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	v, ok := s.data[namespace][key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), v...), true, nil
}

func (s *sessionStore) Delete(ctx context.Context, namespace, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data[namespace], key)
	return nil
}
