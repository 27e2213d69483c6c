// Package ai provides factory functions for creating AI service adapters.
//
// Provider selection happens exactly once, at startup. The rest of the
// application only ever sees the driven port interfaces.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/campuslabs/ubot/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/campuslabs/ubot/internal/adapters/driven/embedding/openai"
	ollamallm "github.com/campuslabs/ubot/internal/adapters/driven/llm/ollama"
	openaillm "github.com/campuslabs/ubot/internal/adapters/driven/llm/openai"
	"github.com/campuslabs/ubot/internal/core/domain"
	"github.com/campuslabs/ubot/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for service connectivity validation.
const pingTimeout = 5 * time.Second

// CreateAndValidateEmbeddingService creates an embedding service from settings
// and validates connectivity before returning it.
func CreateAndValidateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("embedding service unreachable: %w", err)
	}

	return svc, nil
}

// CreateAndValidateCompletionService creates a completion service from settings
// and validates connectivity before returning it.
func CreateAndValidateCompletionService(settings domain.LLMSettings) (driven.CompletionService, error) {
	svc, err := CreateCompletionService(settings)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("completion service unreachable: %w", err)
	}

	return svc, nil
}

// CreateEmbeddingService creates the appropriate embedding service based on
// settings. Missing credentials and unknown providers fail before any network
// traffic.
func CreateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: embedding provider %q is not configured", domain.ErrConfiguration, settings.Provider)
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return createOllamaEmbedding(settings), nil

	case domain.AIProviderOpenAI:
		return createOpenAIEmbedding(settings)

	default:
		return nil, fmt.Errorf("%w: unsupported embedding provider: %s", domain.ErrConfiguration, settings.Provider)
	}
}

// CreateCompletionService creates the appropriate completion service based on
// settings.
func CreateCompletionService(settings domain.LLMSettings) (driven.CompletionService, error) {
	if !settings.IsConfigured() {
		return nil, fmt.Errorf("%w: completion provider %q is not configured", domain.ErrConfiguration, settings.Provider)
	}

	switch settings.Provider {
	case domain.AIProviderOllama:
		return createOllamaCompletion(settings), nil

	case domain.AIProviderOpenAI:
		return createOpenAICompletion(settings)

	default:
		return nil, fmt.Errorf("%w: unsupported completion provider: %s", domain.ErrConfiguration, settings.Provider)
	}
}

// createOllamaEmbedding creates an Ollama embedding service.
func createOllamaEmbedding(settings domain.EmbeddingSettings) driven.EmbeddingService {
	dimensions := domain.EmbeddingDimensions()[settings.Model]
	if dimensions == 0 {
		dimensions = ollamaembed.DefaultDimensions
	}

	return ollamaembed.NewEmbeddingService(ollamaembed.Config{
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: dimensions,
	})
}

// createOpenAIEmbedding creates an OpenAI embedding service.
func createOpenAIEmbedding(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	dimensions := domain.EmbeddingDimensions()[settings.Model]

	return openaiembed.NewEmbeddingService(openaiembed.Config{
		APIKey:     settings.APIKey,
		BaseURL:    settings.BaseURL,
		Model:      settings.Model,
		Dimensions: dimensions,
	})
}

// createOllamaCompletion creates an Ollama completion service.
func createOllamaCompletion(settings domain.LLMSettings) driven.CompletionService {
	return ollamallm.NewCompletionService(ollamallm.Config{
		BaseURL:     settings.BaseURL,
		Model:       settings.Model,
		Temperature: settings.Temperature,
	})
}

// createOpenAICompletion creates an OpenAI completion service.
func createOpenAICompletion(settings domain.LLMSettings) (driven.CompletionService, error) {
	return openaillm.NewCompletionService(openaillm.Config{
		APIKey:      settings.APIKey,
		BaseURL:     settings.BaseURL,
		Model:       settings.Model,
		Temperature: settings.Temperature,
	})
}
