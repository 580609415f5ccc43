package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/kberg/flashdeck/internal/logger"
)

// Store holds active sessions keyed by token. Sessions idle past the TTL are
// removed by Sweep; an expired session never persists a summary, which is how
// abandonment discards state.
type Store struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]*Session
	ttl      time.Duration
	log      *logger.Logger
}

// NewStore creates a Store with the given idle TTL.
func NewStore(ttl time.Duration) *Store {
	return &Store{
		sessions: map[uuid.UUID]*Session{},
		ttl:      ttl,
		log:      logger.Default().WithPrefix("session-store"),
	}
}

// Put registers a session under its token.
func (st *Store) Put(s *Session) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sessions[s.Token] = s
}

// Get returns the session for a token, if present.
func (st *Store) Get(token uuid.UUID) (*Session, bool) {
	st.mu.RLock()
	defer st.mu.RUnlock()
	s, ok := st.sessions[token]
	return s, ok
}

// Delete removes a session.
func (st *Store) Delete(token uuid.UUID) {
	st.mu.Lock()
	defer st.mu.Unlock()
	delete(st.sessions, token)
}

// Len returns the number of live sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// Sweep removes sessions idle longer than the TTL and returns how many were
// dropped.
func (st *Store) Sweep() int {
	cutoff := time.Now().Add(-st.ttl)

	st.mu.Lock()
	defer st.mu.Unlock()
	removed := 0
	for token, s := range st.sessions {
		if s.LastActive().Before(cutoff) {
			delete(st.sessions, token)
			removed++
		}
	}
	if removed > 0 {
		st.log.Info("swept %d idle sessions, %d remaining", removed, len(st.sessions))
	}
	return removed
}
