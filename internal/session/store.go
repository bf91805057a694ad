// Package session keeps one conversational context per user.
package session

import (
	"context"
	"sync"
	"time"

	"healthbot/internal/domain"
)

// Store holds sessions keyed by user. It does not interpret their content.
type Store interface {
	Get(ctx context.Context, userID domain.UserID) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session) error
	Clear(ctx context.Context, userID domain.UserID) error
}

// MemoryStore is an in-process Store. Sessions do not survive restarts.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[domain.UserID]*domain.Session
	now      func() time.Time
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[domain.UserID]*domain.Session),
		now:      time.Now,
	}
}

// Get returns a copy of the user's session, or a fresh one on first contact
func (m *MemoryStore) Get(_ context.Context, userID domain.UserID) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if s, ok := m.sessions[userID]; ok {
		return s.Clone(), nil
	}
	return domain.NewSession(userID), nil
}

// Save stores a copy of the session
func (m *MemoryStore) Save(_ context.Context, s *domain.Session) error {
	c := s.Clone()
	if c.LastSeen.IsZero() {
		c.LastSeen = m.now()
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.UserID] = c
	return nil
}

// Clear removes the user's session entirely
func (m *MemoryStore) Clear(_ context.Context, userID domain.UserID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
	return nil
}

// Prune removes sessions not seen for longer than idle and returns how many were dropped
func (m *MemoryStore) Prune(idle time.Duration) int {
	cutoff := m.now().Add(-idle)

	m.mu.Lock()
	defer m.mu.Unlock()

	pruned := 0
	for id, s := range m.sessions {
		if s.LastSeen.Before(cutoff) {
			delete(m.sessions, id)
			pruned++
		}
	}
	return pruned
}

// Len returns the number of stored sessions
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}
