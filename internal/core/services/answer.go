package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/campuslabs/ubot/internal/core/domain"
	"github.com/campuslabs/ubot/internal/core/ports/driven"
	"github.com/campuslabs/ubot/internal/core/ports/driving"
	"github.com/campuslabs/ubot/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AnswerService = (*AnswerService)(nil)

// DefaultTopK is the retrieval depth used when the caller passes none.
const DefaultTopK = 5

// AnswerService runs the retrieval-augmented pipeline: embed the question,
// retrieve similar chunks, assemble the prompt, generate the answer.
type AnswerService struct {
	embedder  driven.EmbeddingService
	index     driven.VectorIndex
	completer driven.CompletionService
	builder   *PromptBuilder
}

// NewAnswerService creates an answer service wired to the given backends.
func NewAnswerService(
	embedder driven.EmbeddingService,
	index driven.VectorIndex,
	completer driven.CompletionService,
	prompts driven.PromptStore,
) *AnswerService {
	return &AnswerService{
		embedder:  embedder,
		index:     index,
		completer: completer,
		builder:   NewPromptBuilder(prompts),
	}
}

// GenerateAnswer answers one question against the indexed knowledge base.
// An empty retrieval result is not an error: the pipeline continues in
// degraded mode with an explicit no-context instruction and no sources.
func (s *AnswerService) GenerateAnswer(ctx context.Context, query string, history []domain.ConversationTurn, topK int) (domain.Answer, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.Answer{}, fmt.Errorf("%w: query is empty", domain.ErrInvalidInput)
	}
	if topK <= 0 {
		topK = DefaultTopK
	}

	logger.Section("Answer Generation")
	logger.Debug("Query: %q, topK: %d, history: %d turns", query, topK, len(history))

	embeddings, err := s.embedder.Embed(ctx, []string{query})
	if err != nil {
		return domain.Answer{}, fmt.Errorf("embed query: %w", err)
	}
	if len(embeddings) != 1 {
		return domain.Answer{}, fmt.Errorf("%w: expected 1 query embedding, got %d",
			domain.ErrProviderResponseInvalid, len(embeddings))
	}

	matches, err := s.index.Query(ctx, embeddings[0], topK)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("query index: %w", err)
	}
	logger.Debug("Retrieved %d chunks", len(matches))
	if len(matches) == 0 {
		logger.Info("No context retrieved, answering in degraded mode")
	}

	messages, err := s.builder.Build(query, matches, history)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("build prompt: %w", err)
	}

	text, err := s.completer.Complete(ctx, messages)
	if err != nil {
		return domain.Answer{}, fmt.Errorf("generate completion: %w", err)
	}

	return domain.Answer{
		Text:    text,
		Sources: SourcesFromMatches(matches),
	}, nil
}
