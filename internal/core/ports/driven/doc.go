// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
//   - EmbeddingService: turns text into vectors (Ollama or OpenAI backend)
//   - CompletionService: turns a message sequence into answer text
//   - VectorIndex: persistent chunk vector storage and nearest-neighbour search
//   - SessionStore: per-session conversation history
//   - PromptStore: user-customisable prompt templates
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
