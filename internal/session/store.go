package session

import "sync"

// State is a position within a conversational flow. Concrete states live in
// the flow package; each one carries only the input collected up to that
// point.
type State interface {
	SessionState()
}

// Store keeps at most one active flow per user. Implementations must allow
// concurrent access from different users; two racing messages from the same
// user resolve as last-write-wins.
type Store interface {
	Get(userID int64) (State, bool)
	Set(userID int64, s State)
	Clear(userID int64)
}

// MemoryStore is the process-lifetime Store. A restart drops every in-flight
// conversation; the underlying expense data is unaffected.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[int64]State
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[int64]State)}
}

func (s *MemoryStore) Get(userID int64) (State, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.sessions[userID]
	return st, ok
}

func (s *MemoryStore) Set(userID int64, st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[userID] = st
}

func (s *MemoryStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
