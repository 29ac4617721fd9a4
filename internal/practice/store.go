package practice

import (
	"sync"
	"time"
)

// Scope identifies where a session's shortcuts came from: the synthetic
// "all" pseudo-group spanning the whole catalog, or one named group.
// Best scores are only recorded for named groups.
type Scope struct {
	All     bool
	GroupID int64
	Name    string
}

// Active pairs a running session with its scope.
type Active struct {
	Session   *Session
	Scope     Scope
	StartedAt time.Time
}

// Store holds live practice sessions keyed by the per-browser practice
// cookie. One session per key; starting a new one replaces the old, and
// exiting just drops the entry (nothing is persisted until completion).
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*Active
}

// NewStore creates an empty session store
func NewStore() *Store {
	return &Store{sessions: make(map[string]*Active)}
}

// Get returns the active session for a key, or nil
func (s *Store) Get(key string) *Active {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessions[key]
}

// Put stores (or replaces) the active session for a key
func (s *Store) Put(key string, active *Active) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[key] = active
}

// Delete discards the active session for a key
func (s *Store) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, key)
}

// Sweep drops sessions older than maxAge and returns how many were removed.
// Abandoned sessions are the only thing that would otherwise grow the map.
func (s *Store) Sweep(maxAge time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-maxAge)
	removed := 0
	for key, active := range s.sessions {
		if active.StartedAt.Before(cutoff) {
			delete(s.sessions, key)
			removed++
		}
	}
	return removed
}
