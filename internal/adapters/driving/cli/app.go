package cli

import (
	"path/filepath"

	"github.com/campuslabs/ubot/internal/adapters/driven/ai"
	"github.com/campuslabs/ubot/internal/adapters/driven/config/file"
	sessionmem "github.com/campuslabs/ubot/internal/adapters/driven/session/memory"
	"github.com/campuslabs/ubot/internal/adapters/driven/vectorstore/sqlite"
	"github.com/campuslabs/ubot/internal/chunker"
	"github.com/campuslabs/ubot/internal/core/domain"
	"github.com/campuslabs/ubot/internal/core/ports/driven"
	"github.com/campuslabs/ubot/internal/core/services"
)

// app is the assembled service graph shared by the commands.
type app struct {
	settings  domain.AppSettings
	embedder  driven.EmbeddingService
	completer driven.CompletionService
	index     driven.VectorIndex
	sessions  driven.SessionStore
	answers   *services.AnswerService
	ingester  *services.IngestService
}

// loadSettings reads the layered configuration from the config directory.
func loadSettings() (domain.AppSettings, error) {
	store, err := file.NewSettingsStore(configDir)
	if err != nil {
		return domain.AppSettings{}, err
	}
	return store.Load()
}

// newApp builds the service graph from settings and validates provider
// connectivity up front, so misconfiguration fails before the first
// question. Ingest-only commands pass needLLM=false to skip the
// completion provider.
func newApp(needLLM bool) (*app, error) {
	settings, err := loadSettings()
	if err != nil {
		return nil, err
	}

	embedder, err := ai.CreateAndValidateEmbeddingService(settings.Embedding)
	if err != nil {
		return nil, err
	}

	var completer driven.CompletionService
	if needLLM {
		completer, err = ai.CreateAndValidateCompletionService(settings.LLM)
		if err != nil {
			embedder.Close()
			return nil, err
		}
	}

	index, err := sqlite.NewIndex(settings.Index.Dir, settings.Index.Collection)
	if err != nil {
		embedder.Close()
		if completer != nil {
			completer.Close()
		}
		return nil, err
	}

	promptDir := ""
	if configDir != "" {
		promptDir = filepath.Join(configDir, "prompts")
	}
	prompts, err := file.NewPromptStore(promptDir)
	if err != nil {
		embedder.Close()
		if completer != nil {
			completer.Close()
		}
		index.Close()
		return nil, err
	}

	splitter := chunker.New(
		chunker.WithChunkSize(settings.Ingest.ChunkSize),
		chunker.WithOverlap(settings.Ingest.ChunkOverlap),
	)

	return &app{
		settings:  settings,
		embedder:  embedder,
		completer: completer,
		index:     index,
		sessions:  sessionmem.NewStore(settings.Chat.MaxHistoryTurns),
		answers:   services.NewAnswerService(embedder, index, completer, prompts),
		ingester:  services.NewIngestService(embedder, index, splitter, settings.Ingest.BatchSize),
	}, nil
}

// Close releases every held backend connection.
func (a *app) Close() {
	a.embedder.Close()
	if a.completer != nil {
		a.completer.Close()
	}
	a.index.Close()
}
