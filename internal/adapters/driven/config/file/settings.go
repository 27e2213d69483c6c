package file

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/pelletier/go-toml/v2"

	"github.com/campuslabs/ubot/internal/core/domain"
)

// SettingsStore loads and persists application settings as TOML.
// Settings resolve in three layers: built-in defaults, then the config
// file, then environment variables for credentials.
type SettingsStore struct {
	mu       sync.RWMutex
	filePath string
}

// NewSettingsStore creates a TOML-based settings store.
// If configDir is empty, defaults to ~/.ubot/config.toml.
func NewSettingsStore(configDir string) (*SettingsStore, error) {
	if configDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		configDir = filepath.Join(home, ".ubot")
	}

	if err := os.MkdirAll(configDir, 0700); err != nil {
		return nil, err
	}

	return &SettingsStore{
		filePath: filepath.Join(configDir, "config.toml"),
	}, nil
}

// Path returns the config file path.
func (s *SettingsStore) Path() string {
	return s.filePath
}

// Load returns settings resolved from defaults, the config file, and the
// environment. A missing config file is not an error; a malformed one is.
func (s *SettingsStore) Load() (domain.AppSettings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings := domain.DefaultAppSettings()

	data, err := os.ReadFile(s.filePath)
	switch {
	case os.IsNotExist(err):
		// Defaults only.
	case err != nil:
		return settings, fmt.Errorf("read config: %w", err)
	default:
		if err := toml.Unmarshal(data, &settings); err != nil {
			return settings, fmt.Errorf("%w: parse %s: %v", domain.ErrConfiguration, s.filePath, err)
		}
	}

	applyEnv(&settings)

	if err := Validate(settings); err != nil {
		return settings, err
	}
	return settings, nil
}

// Save writes settings to the config file.
func (s *SettingsStore) Save(settings domain.AppSettings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := toml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	// API keys may be present, keep the file private.
	if err := os.WriteFile(s.filePath, data, 0600); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// applyEnv overlays credential and endpoint environment variables.
// Environment wins over the file so keys never need to live on disk.
func applyEnv(settings *domain.AppSettings) {
	if key := os.Getenv("OPENAI_API_KEY"); key != "" {
		settings.Embedding.APIKey = key
		settings.LLM.APIKey = key
	}
	if base := os.Getenv("OLLAMA_BASE_URL"); base != "" {
		settings.Embedding.BaseURL = base
		settings.LLM.BaseURL = base
	}
}

// Validate checks settings for problems that would only surface mid-request
// otherwise. Called on every load so misconfiguration fails at startup.
func Validate(settings domain.AppSettings) error {
	if !settings.Embedding.Provider.IsValid() {
		return fmt.Errorf("%w: unknown embedding provider %q", domain.ErrConfiguration, settings.Embedding.Provider)
	}
	if !settings.LLM.Provider.IsValid() {
		return fmt.Errorf("%w: unknown llm provider %q", domain.ErrConfiguration, settings.LLM.Provider)
	}
	if settings.Embedding.Provider.RequiresAPIKey() && settings.Embedding.APIKey == "" {
		return fmt.Errorf("%w: embedding provider %s requires an API key; set OPENAI_API_KEY",
			domain.ErrConfiguration, settings.Embedding.Provider)
	}
	if settings.LLM.Provider.RequiresAPIKey() && settings.LLM.APIKey == "" {
		return fmt.Errorf("%w: llm provider %s requires an API key; set OPENAI_API_KEY",
			domain.ErrConfiguration, settings.LLM.Provider)
	}
	if settings.Ingest.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk_size must be positive", domain.ErrConfiguration)
	}
	if settings.Ingest.ChunkOverlap < 0 || settings.Ingest.ChunkOverlap >= settings.Ingest.ChunkSize {
		return fmt.Errorf("%w: chunk_overlap must be in [0, chunk_size)", domain.ErrConfiguration)
	}
	if settings.Chat.TopK <= 0 {
		return fmt.Errorf("%w: top_k must be positive", domain.ErrConfiguration)
	}
	if settings.Chat.MaxHistoryTurns < 0 {
		return fmt.Errorf("%w: max_history_turns must not be negative", domain.ErrConfiguration)
	}
	return nil
}
