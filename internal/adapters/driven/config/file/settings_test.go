package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campuslabs/ubot/internal/core/domain"
)

func TestSettingsStore_Load_DefaultsWhenMissing(t *testing.T) {
	store, err := NewSettingsStore(t.TempDir())
	require.NoError(t, err)

	settings, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, domain.AIProviderOllama, settings.Embedding.Provider)
	assert.Equal(t, "llama3.1", settings.LLM.Model)
	assert.Equal(t, 1000, settings.Ingest.ChunkSize)
	assert.Equal(t, ":8000", settings.Server.Addr)
}

func TestSettingsStore_Load_FromFile(t *testing.T) {
	dir := t.TempDir()
	config := `
[llm]
provider = "ollama"
model = "mistral"
temperature = 0.4

[chat]
top_k = 3
max_history_turns = 2
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(config), 0600))

	store, err := NewSettingsStore(dir)
	require.NoError(t, err)

	settings, err := store.Load()
	require.NoError(t, err)

	assert.Equal(t, "mistral", settings.LLM.Model)
	assert.InDelta(t, 0.4, settings.LLM.Temperature, 1e-9)
	assert.Equal(t, 3, settings.Chat.TopK)

	// Untouched sections keep defaults.
	assert.Equal(t, "nomic-embed-text", settings.Embedding.Model)
}

func TestSettingsStore_Load_Malformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte("not [valid toml"), 0600))

	store, err := NewSettingsStore(dir)
	require.NoError(t, err)

	_, err = store.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestSettingsStore_Load_EnvOverridesKey(t *testing.T) {
	dir := t.TempDir()
	config := `
[embedding]
provider = "openai"
model = "text-embedding-3-small"

[llm]
provider = "openai"
model = "gpt-4o-mini"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(config), 0600))
	t.Setenv("OPENAI_API_KEY", "sk-from-env")

	store, err := NewSettingsStore(dir)
	require.NoError(t, err)

	settings, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", settings.Embedding.APIKey)
	assert.Equal(t, "sk-from-env", settings.LLM.APIKey)
}

func TestSettingsStore_Load_OpenAIWithoutKeyFails(t *testing.T) {
	dir := t.TempDir()
	config := `
[llm]
provider = "openai"
model = "gpt-4o-mini"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(config), 0600))
	t.Setenv("OPENAI_API_KEY", "")

	store, err := NewSettingsStore(dir)
	require.NoError(t, err)

	_, err = store.Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestSettingsStore_SaveRoundtrip(t *testing.T) {
	store, err := NewSettingsStore(t.TempDir())
	require.NoError(t, err)

	settings := domain.DefaultAppSettings()
	settings.Chat.TopK = 7
	settings.Crawl.SeedURLs = []string{"https://example.edu"}
	require.NoError(t, store.Save(settings))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 7, loaded.Chat.TopK)
	assert.Equal(t, []string{"https://example.edu"}, loaded.Crawl.SeedURLs)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*domain.AppSettings)
	}{
		{"bad embedding provider", func(s *domain.AppSettings) { s.Embedding.Provider = "chroma" }},
		{"bad llm provider", func(s *domain.AppSettings) { s.LLM.Provider = "" }},
		{"zero chunk size", func(s *domain.AppSettings) { s.Ingest.ChunkSize = 0 }},
		{"overlap too large", func(s *domain.AppSettings) { s.Ingest.ChunkOverlap = s.Ingest.ChunkSize }},
		{"negative overlap", func(s *domain.AppSettings) { s.Ingest.ChunkOverlap = -1 }},
		{"zero top_k", func(s *domain.AppSettings) { s.Chat.TopK = 0 }},
		{"negative history", func(s *domain.AppSettings) { s.Chat.MaxHistoryTurns = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := domain.DefaultAppSettings()
			tt.mutate(&settings)

			err := Validate(settings)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrConfiguration)
		})
	}

	t.Run("defaults are valid", func(t *testing.T) {
		assert.NoError(t, Validate(domain.DefaultAppSettings()))
	})
}
