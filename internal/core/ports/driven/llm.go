package driven

import (
	"context"

	"github.com/campuslabs/ubot/internal/core/domain"
)

// CompletionService sends a message sequence to a language model and
// returns the generated text.
//
// Implementations may include:
//   - OpenAI (gpt-4o-mini and compatible APIs)
//   - Ollama (local models)
type CompletionService interface {
	// Complete runs a chat completion over the ordered message sequence
	// and returns trimmed answer text. Empty or missing content from the
	// backend is coerced to "", never an error by itself. Unrecognisable
	// payload shapes surface as domain.ErrProviderResponseInvalid;
	// connection failures as domain.ErrProviderUnavailable.
	Complete(ctx context.Context, messages []domain.Message) (string, error)

	// ModelName returns the name of the chat model being used.
	ModelName() string

	// Ping validates the service is reachable by making a lightweight test
	// request.
	Ping(ctx context.Context) error

	// Close releases resources.
	Close() error
}
