package domain

const unknownDescription = "Unknown"

// AIProvider identifies a backend family for embeddings or completions.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is a local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is the OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding backend.
	Provider AIProvider `toml:"provider"`

	// Model is the embedding model name.
	Model string `toml:"model"`

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string `toml:"base_url"`

	// APIKey is the API key (for OpenAI).
	APIKey string `toml:"api_key"`
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds completion provider configuration.
type LLMSettings struct {
	// Provider is the completion backend.
	Provider AIProvider `toml:"provider"`

	// Model is the chat model name.
	Model string `toml:"model"`

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string `toml:"base_url"`

	// APIKey is the API key (for OpenAI).
	APIKey string `toml:"api_key"`

	// Temperature controls generation randomness. Kept low by default so
	// answers lean deterministic; a policy choice, never hardcoded per call.
	Temperature float64 `toml:"temperature"`
}

// IsConfigured returns true if the completion provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// IndexSettings holds vector index configuration.
type IndexSettings struct {
	// Dir is the on-disk location of the index.
	Dir string `toml:"dir"`

	// Collection is the named collection identifier. Created on first use.
	Collection string `toml:"collection"`
}

// ServerSettings holds HTTP front door configuration.
type ServerSettings struct {
	// Addr is the listen address.
	Addr string `toml:"addr"`
}

// ChatSettings holds conversation behaviour configuration.
type ChatSettings struct {
	// MaxHistoryTurns bounds per-session history; the session store keeps
	// at most 2 x MaxHistoryTurns entries.
	MaxHistoryTurns int `toml:"max_history_turns"`

	// TopK is the number of chunks retrieved per question.
	TopK int `toml:"top_k"`
}

// IngestSettings holds ingestion configuration.
type IngestSettings struct {
	// DataDir is the directory scanned for .txt and .md content files.
	DataDir string `toml:"data_dir"`

	// ChunkSize is the chunk length in characters.
	ChunkSize int `toml:"chunk_size"`

	// ChunkOverlap is the overlap between consecutive chunks in characters.
	ChunkOverlap int `toml:"chunk_overlap"`

	// BatchSize is the number of chunks embedded per provider call batch.
	BatchSize int `toml:"batch_size"`
}

// CrawlSettings holds site crawler configuration.
type CrawlSettings struct {
	// SeedURLs are the crawl starting points.
	SeedURLs []string `toml:"seed_urls"`

	// AllowedDomains restricts the crawl; a URL is followed only when its
	// host ends with one of these.
	AllowedDomains []string `toml:"allowed_domains"`

	// MaxPages caps the number of pages saved.
	MaxPages int `toml:"max_pages"`

	// MaxDepth caps link-following distance from the seeds.
	MaxDepth int `toml:"max_depth"`

	// RequestsPerSecond throttles fetches.
	RequestsPerSecond float64 `toml:"requests_per_second"`
}

// AppSettings holds all application settings.
type AppSettings struct {
	Embedding EmbeddingSettings `toml:"embedding"`
	LLM       LLMSettings       `toml:"llm"`
	Index     IndexSettings     `toml:"index"`
	Server    ServerSettings    `toml:"server"`
	Chat      ChatSettings      `toml:"chat"`
	Ingest    IngestSettings    `toml:"ingest"`
	Crawl     CrawlSettings     `toml:"crawl"`
}

// DefaultAppSettings returns settings with sensible defaults. Both providers
// default to local Ollama so the bot works without any cloud credential.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Embedding: EmbeddingSettings{
			Provider: AIProviderOllama,
			Model:    "nomic-embed-text",
			BaseURL:  "http://localhost:11434",
		},
		LLM: LLMSettings{
			Provider:    AIProviderOllama,
			Model:       "llama3.1",
			BaseURL:     "http://localhost:11434",
			Temperature: 0.2,
		},
		Index: IndexSettings{
			Collection: "campus_knowledge",
		},
		Server: ServerSettings{
			Addr: ":8000",
		},
		Chat: ChatSettings{
			MaxHistoryTurns: 4,
			TopK:            5,
		},
		Ingest: IngestSettings{
			ChunkSize:    1000,
			ChunkOverlap: 200,
			BatchSize:    64,
		},
		Crawl: CrawlSettings{
			MaxPages:          15,
			MaxDepth:          2,
			RequestsPerSecond: 2,
		},
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// AllLLMProviders returns providers that support chat completions.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "nomic-embed-text",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// DefaultLLMModels returns default models for each completion provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "llama3.1",
		AIProviderOpenAI: "gpt-4o-mini",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}
