package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps sessions in process memory. The default for single
// instance deployments; entries past maxAge are evicted lazily.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*Session
	maxAge   time.Duration
}

// NewMemoryStore constructs an in-process session store.
func NewMemoryStore(maxAge time.Duration) *MemoryStore {
	if maxAge <= 0 {
		maxAge = 3 * time.Hour
	}
	return &MemoryStore{
		sessions: make(map[string]*Session),
		maxAge:   maxAge,
	}
}

// Put stores a copy of the session.
func (m *MemoryStore) Put(ctx context.Context, s *Session) error {
	cp := *s
	m.mu.Lock()
	m.sessions[s.ID] = &cp
	m.mu.Unlock()
	return nil
}

// Get returns a copy of the stored session or ErrNotFound.
func (m *MemoryStore) Get(ctx context.Context, id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}
	if time.Since(s.StartedAt) > m.maxAge {
		_ = m.Delete(ctx, id)
		return nil, ErrNotFound
	}
	cp := *s
	return &cp, nil
}

// Delete removes a session; deleting an absent session is not an error.
func (m *MemoryStore) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	delete(m.sessions, id)
	m.mu.Unlock()
	return nil
}
