package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslabs/ubot/internal/core/domain"
)

func TestCreateEmbeddingService(t *testing.T) {
	t.Run("ollama", func(t *testing.T) {
		svc, err := CreateEmbeddingService(domain.EmbeddingSettings{
			Provider: domain.AIProviderOllama,
			Model:    "nomic-embed-text",
		})
		require.NoError(t, err)
		defer svc.Close()

		assert.Equal(t, "nomic-embed-text", svc.ModelName())
		assert.Equal(t, 768, svc.Dimensions())
	})

	t.Run("openai", func(t *testing.T) {
		svc, err := CreateEmbeddingService(domain.EmbeddingSettings{
			Provider: domain.AIProviderOpenAI,
			Model:    "text-embedding-3-small",
			APIKey:   "test-key",
		})
		require.NoError(t, err)
		defer svc.Close()

		assert.Equal(t, 1536, svc.Dimensions())
	})

	t.Run("openai without api key", func(t *testing.T) {
		_, err := CreateEmbeddingService(domain.EmbeddingSettings{
			Provider: domain.AIProviderOpenAI,
			Model:    "text-embedding-3-small",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := CreateEmbeddingService(domain.EmbeddingSettings{
			Provider: "chroma",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})
}

func TestCreateCompletionService(t *testing.T) {
	t.Run("ollama", func(t *testing.T) {
		svc, err := CreateCompletionService(domain.LLMSettings{
			Provider:    domain.AIProviderOllama,
			Model:       "llama3.1",
			Temperature: 0.2,
		})
		require.NoError(t, err)
		defer svc.Close()

		assert.Equal(t, "llama3.1", svc.ModelName())
	})

	t.Run("openai without api key", func(t *testing.T) {
		_, err := CreateCompletionService(domain.LLMSettings{
			Provider: domain.AIProviderOpenAI,
			Model:    "gpt-4o-mini",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})

	t.Run("unknown provider", func(t *testing.T) {
		_, err := CreateCompletionService(domain.LLMSettings{
			Provider: "bedrock",
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})
}
