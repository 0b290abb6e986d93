package repository

import (
	"context"
	"sync"
	"time"

	"github.com/srbeng/srb-site/internal/auth/domain"
)

type memoryEntry struct {
	session domain.Session
	expires time.Time
}

// MemorySessionStore keeps sessions in process memory. Sessions do not survive
// a restart.
type MemorySessionStore struct {
	mu       sync.Mutex
	now      func() time.Time
	sessions map[string]memoryEntry
}

func NewMemorySessionStore(now func() time.Time) *MemorySessionStore {
	if now == nil {
		now = time.Now
	}
	return &MemorySessionStore{now: now, sessions: make(map[string]memoryEntry)}
}

func (m *MemorySessionStore) Save(_ context.Context, token string, s domain.Session, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	e := memoryEntry{session: s}
	if ttl > 0 {
		e.expires = m.now().Add(ttl)
	}
	m.sessions[token] = e
	return nil
}

func (m *MemorySessionStore) expired(e memoryEntry) bool {
	return !e.expires.IsZero() && !m.now().Before(e.expires)
}

func (m *MemorySessionStore) Get(_ context.Context, token string) (domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.sessions[token]
	if !ok {
		return domain.Session{}, domain.ErrSessionNotFound
	}
	if m.expired(e) {
		delete(m.sessions, token)
		return domain.Session{}, domain.ErrSessionNotFound
	}
	return e.session, nil
}

func (m *MemorySessionStore) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	delete(m.sessions, token)
	m.mu.Unlock()
	return nil
}

func (m *MemorySessionStore) List(context.Context) (map[string]domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]domain.Session, len(m.sessions))
	for token, e := range m.sessions {
		if m.expired(e) {
			delete(m.sessions, token)
			continue
		}
		out[token] = e.session
	}
	return out, nil
}

func (m *MemorySessionStore) Close() error {
	m.mu.Lock()
	m.sessions = make(map[string]memoryEntry)
	m.mu.Unlock()
	return nil
}
