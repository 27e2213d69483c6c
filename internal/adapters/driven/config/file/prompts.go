package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/campuslabs/ubot/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads LLM prompts from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to embedded defaults.
//
// The store uses lazy initialisation - files are only created when first accessed,
// not in the constructor. This makes testing easier and avoids unexpected I/O.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts.
// These are used when user files don't exist and as the initial content for new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptChatSystem: `You are Campus Bot, a helpful, friendly assistant for the university. You answer questions for prospective and current students about programs, admissions, housing, campus life, and related topics.

Use ONLY the context passages provided to you plus obvious, generic admissions knowledge. Be as clear and concrete as possible in your answers.

Rules:
- Give a direct, helpful answer. Do not just tell the user to 'check the website' or 'contact support'.
- When the user asks about applying or the process to apply (for example, 'how do I apply', 'what is the process', or 'I want to take admission'), respond with a short, step-by-step list of the main steps in the process based on the context and general admissions flow (review requirements, prepare documents, submit online application, pay fee, track status, etc.).
- Do NOT invent specific numbers that are not in the context (no specific GPA cutoffs, deadlines, fees, or dollar amounts unless they appear in the context).
- Do NOT mention or reference 'Source 1', 'Source 2', file names, or .txt documents in your answer. Just answer as if you know the information.
- Keep your tone supportive and student-friendly. You can use bullet points or numbered lists when describing steps.
- Only if important details are clearly missing, add ONE short line at the very end like: "For the latest official requirements and deadlines, please confirm on the university's official website."`,

	driven.PromptNoContext: `No specific context passages were retrieved for this question. Answer using only obvious, generic admissions knowledge and, if you cannot answer reliably, say you are not sure and add one short line at the very end like: "For the latest official requirements and deadlines, please confirm on the university's official website."`,

	driven.PromptFinalQuestion: `User question:
%s

Answer this question following the instructions above, using the provided context passages and obvious, generic admissions knowledge. Give a direct, student-friendly answer, and only if important details are clearly missing, add one short line at the very end suggesting the user confirm on the university's official website.`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.ubot/prompts/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".ubot", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default files.
// Returns cached value if available, otherwise loads from file.
// Falls back to embedded default if file doesn't exist.
func (s *PromptStore) Load(name string) (string, error) {
	// Ensure directory and defaults exist (lazy init)
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		// Fall back to embedded defaults if init failed
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	// Check cache first (read lock)
	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O)
	prompt, err := s.loadFromFile(name)
	if err != nil {
		// Fall back to embedded default
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Cache the result (write lock)
	// Use double-check pattern to avoid overwriting concurrent loads
	s.mu.Lock()
	if _, ok := s.cache[name]; !ok {
		s.cache[name] = prompt
	} else {
		// Another goroutine loaded it first, use their value
		prompt = s.cache[name]
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	// Create directory
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	// Create default prompt files (only if they don't exist)
	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	// Create README
	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# Campus Bot Prompts

This directory contains customisable prompts used by the answer pipeline.

## Files

- ` + "`chat_system.txt`" + ` - System prompt fixing the bot persona and grounding rules
- ` + "`no_context.txt`" + ` - Instruction used when retrieval finds nothing relevant
- ` + "`final_question.txt`" + ` - Restates the user question after the context passages

## Customisation

Edit any file to customise answer behaviour. Changes take effect on the next
command or after restarting the server.

## Format Placeholders

` + "`final_question.txt`" + ` uses a Go fmt placeholder:
- ` + "`%s`" + ` - The user's question

Ensure customised prompts maintain placeholders in the correct positions.
`
	return os.WriteFile(path, []byte(content), 0600)
}
