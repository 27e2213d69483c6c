package services

import (
	"context"
	"fmt"

	"github.com/campuslabs/ubot/internal/core/domain"
)

// --- Mock implementations ---

// mockEmbeddingService implements driven.EmbeddingService for testing.
// Each input text maps to a fixed vector so tests can observe ordering.
type mockEmbeddingService struct {
	vectors  map[string][]float32
	fallback []float32
	embedErr error
	calls    [][]string
}

func (m *mockEmbeddingService) Embed(_ context.Context, texts []string) ([][]float32, error) {
	m.calls = append(m.calls, texts)
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	out := make([][]float32, len(texts))
	for i, text := range texts {
		if v, ok := m.vectors[text]; ok {
			out[i] = v
			continue
		}
		out[i] = m.fallback
	}
	return out, nil
}

func (m *mockEmbeddingService) Dimensions() int              { return 3 }
func (m *mockEmbeddingService) ModelName() string            { return "mock-embed" }
func (m *mockEmbeddingService) Ping(_ context.Context) error { return nil }
func (m *mockEmbeddingService) Close() error                 { return nil }

// mockShortEmbedding returns fewer embeddings than inputs.
type mockShortEmbedding struct{}

func (m *mockShortEmbedding) Embed(_ context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	// Always one embedding, regardless of input size.
	return [][]float32{{1, 0, 0}}, nil
}

func (m *mockShortEmbedding) Dimensions() int              { return 3 }
func (m *mockShortEmbedding) ModelName() string            { return "mock-short" }
func (m *mockShortEmbedding) Ping(_ context.Context) error { return nil }
func (m *mockShortEmbedding) Close() error                 { return nil }

// mockVectorIndex implements driven.VectorIndex for testing.
type mockVectorIndex struct {
	matches  []domain.RetrievedMatch
	queryErr error
	upserts  map[string]string // chunk ID -> content
}

func (m *mockVectorIndex) Upsert(_ context.Context, chunkID string, _ []float32, content string, _ domain.ChunkMetadata) error {
	if m.upserts == nil {
		m.upserts = make(map[string]string)
	}
	m.upserts[chunkID] = content
	return nil
}

func (m *mockVectorIndex) Query(_ context.Context, _ []float32, topK int) ([]domain.RetrievedMatch, error) {
	if m.queryErr != nil {
		return nil, m.queryErr
	}
	if topK > len(m.matches) {
		return m.matches, nil
	}
	return m.matches[:topK], nil
}

func (m *mockVectorIndex) Sample(_ context.Context, limit int) ([]domain.SampleEntry, error) {
	entries := make([]domain.SampleEntry, 0, limit)
	for id := range m.upserts {
		if len(entries) == limit {
			break
		}
		entries = append(entries, domain.SampleEntry{ID: id})
	}
	return entries, nil
}

func (m *mockVectorIndex) Count(_ context.Context) (int, error) {
	return len(m.upserts), nil
}

func (m *mockVectorIndex) Close() error { return nil }

// mockCompletionService implements driven.CompletionService for testing.
type mockCompletionService struct {
	answer      string
	completeErr error
	gotMessages []domain.Message
}

func (m *mockCompletionService) Complete(_ context.Context, messages []domain.Message) (string, error) {
	m.gotMessages = messages
	if m.completeErr != nil {
		return "", m.completeErr
	}
	return m.answer, nil
}

func (m *mockCompletionService) ModelName() string            { return "mock-llm" }
func (m *mockCompletionService) Ping(_ context.Context) error { return nil }
func (m *mockCompletionService) Close() error                 { return nil }

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	prompts map[string]string
}

func newMockPromptStore() *mockPromptStore {
	return &mockPromptStore{prompts: map[string]string{
		"chat_system":    "You are a campus assistant.",
		"no_context":     "No passages were retrieved. Answer from general knowledge only.",
		"final_question": "User question:\n%s\nAnswer following the instructions above.",
	}}
}

func (m *mockPromptStore) Load(name string) (string, error) {
	prompt, ok := m.prompts[name]
	if !ok {
		return "", fmt.Errorf("unknown prompt %q", name)
	}
	return prompt, nil
}

func (m *mockPromptStore) Reload() {}
