// Package memory provides an in-process session history store.
//
// History lives in a map guarded by a RWMutex and disappears on restart.
// The core only sees the SessionStore port, so swapping this for an external
// cache is an adapter change, not a core change.
package memory

import (
	"context"
	"sync"

	"github.com/campuslabs/ubot/internal/core/domain"
	"github.com/campuslabs/ubot/internal/core/ports/driven"
)

// Ensure Store implements the interface.
var _ driven.SessionStore = (*Store)(nil)

// DefaultMaxTurns is the default user/assistant exchange bound per session.
const DefaultMaxTurns = 4

// Store keeps bounded conversation history per session ID.
type Store struct {
	mu       sync.RWMutex
	sessions map[string][]domain.ConversationTurn
	maxTurns int
}

// NewStore creates a session store keeping at most maxTurns exchanges,
// i.e. 2*maxTurns stored entries, per session.
func NewStore(maxTurns int) *Store {
	if maxTurns <= 0 {
		maxTurns = DefaultMaxTurns
	}
	return &Store{
		sessions: make(map[string][]domain.ConversationTurn),
		maxTurns: maxTurns,
	}
}

// History returns a copy of the stored turns for a session, oldest first.
// Unknown sessions return an empty history.
func (s *Store) History(_ context.Context, sessionID string) ([]domain.ConversationTurn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns := s.sessions[sessionID]
	out := make([]domain.ConversationTurn, len(turns))
	copy(out, turns)
	return out, nil
}

// Append records turns for a session and drops the oldest entries beyond
// the configured bound.
func (s *Store) Append(_ context.Context, sessionID string, turns ...domain.ConversationTurn) error {
	if len(turns) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.sessions[sessionID], turns...)

	limit := 2 * s.maxTurns
	if len(history) > limit {
		history = history[len(history)-limit:]
	}
	s.sessions[sessionID] = history
	return nil
}

// Clear removes a session's history. Unknown sessions are a no-op.
func (s *Store) Clear(_ context.Context, sessionID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sessionID)
}

// Len returns the number of tracked sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
