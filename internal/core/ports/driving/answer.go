package driving

import (
	"context"

	"github.com/campuslabs/ubot/internal/core/domain"
)

// AnswerService runs the retrieval-augmented pipeline for one question.
type AnswerService interface {
	// GenerateAnswer embeds the query, retrieves the topK most similar
	// chunks, builds the prompt with the supplied history, and returns the
	// generated answer with best-first sources. The caller guarantees a
	// non-empty query; history is already bounded by the session layer.
	// Zero retrieved chunks is a designed degraded path, not a failure.
	GenerateAnswer(ctx context.Context, query string, history []domain.ConversationTurn, topK int) (domain.Answer, error)
}
