package driven

import (
	"context"

	"github.com/campuslabs/ubot/internal/core/domain"
)

// SessionStore keeps bounded per-session conversation history. The core
// never assumes the store is in-process or durable; implementations may be
// an in-memory map or an external cache.
type SessionStore interface {
	// History returns the stored turns for a session, oldest first.
	// Unknown sessions return an empty history, not an error.
	History(ctx context.Context, sessionID string) ([]domain.ConversationTurn, error)

	// Append records a user/assistant exchange and truncates the history
	// to the store's configured bound, dropping the oldest entries.
	Append(ctx context.Context, sessionID string, turns ...domain.ConversationTurn) error
}
