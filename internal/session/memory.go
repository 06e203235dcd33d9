package session

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	token     string
	expiresAt time.Time
}

// MemoryStore is an in-memory Store implementation for tests and local
// development.
type MemoryStore struct {
	mu   sync.RWMutex
	m    map[string]entry
	nowF func() time.Time
}

// NewMemoryStore returns a new in-memory refresh record store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		m:    make(map[string]entry),
		nowF: func() time.Time { return time.Now().UTC() },
	}
}

func (s *MemoryStore) Set(ctx context.Context, userID, token string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[Key(userID)] = entry{token: token, expiresAt: s.nowF().Add(ttl)}
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, userID string) (string, bool, error) {
	s.mu.RLock()
	e, ok := s.m[Key(userID)]
	s.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if !e.expiresAt.After(s.nowF()) {
		s.mu.Lock()
		delete(s.m, Key(userID))
		s.mu.Unlock()
		return "", false, nil
	}
	return e.token, true, nil
}

func (s *MemoryStore) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, Key(userID))
	return nil
}
