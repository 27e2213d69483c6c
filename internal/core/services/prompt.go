package services

import (
	"fmt"
	"strings"

	"github.com/campuslabs/ubot/internal/core/domain"
	"github.com/campuslabs/ubot/internal/core/ports/driven"
)

// untitledSection labels context passages whose metadata carries no title.
const untitledSection = "Untitled section"

// contextIntro opens the context block handed to the model.
const contextIntro = "Here are context passages from university information. Use them when answering the question."

// PromptBuilder assembles the message sequence for one answer generation.
// It is deterministic: the same inputs always produce the same messages.
type PromptBuilder struct {
	prompts driven.PromptStore
}

// NewPromptBuilder creates a prompt builder backed by the given store.
func NewPromptBuilder(prompts driven.PromptStore) *PromptBuilder {
	return &PromptBuilder{prompts: prompts}
}

// Build assembles the full message sequence: system prompt, then the context
// block (or the explicit no-context instruction when retrieval found
// nothing), then prior conversation turns, then the restated user question.
//
// The question appears last so it stays adjacent to generation even after a
// long context block and history.
func (b *PromptBuilder) Build(query string, matches []domain.RetrievedMatch, history []domain.ConversationTurn) ([]domain.Message, error) {
	system, err := b.prompts.Load(driven.PromptChatSystem)
	if err != nil {
		return nil, fmt.Errorf("load system prompt: %w", err)
	}

	messages := make([]domain.Message, 0, len(history)+3)
	messages = append(messages, domain.Message{Role: domain.RoleSystem, Content: system})

	contextText, err := b.contextBlock(matches)
	if err != nil {
		return nil, err
	}
	messages = append(messages, domain.Message{Role: domain.RoleUser, Content: contextText})

	for _, turn := range history {
		messages = append(messages, domain.Message{Role: turn.Role, Content: turn.Content})
	}

	finalTemplate, err := b.prompts.Load(driven.PromptFinalQuestion)
	if err != nil {
		return nil, fmt.Errorf("load final question prompt: %w", err)
	}
	messages = append(messages, domain.Message{
		Role:    domain.RoleUser,
		Content: fmt.Sprintf(finalTemplate, query),
	})

	return messages, nil
}

// contextBlock renders retrieved passages with numbered headers, or the
// no-context instruction when retrieval came back empty.
func (b *PromptBuilder) contextBlock(matches []domain.RetrievedMatch) (string, error) {
	if len(matches) == 0 {
		noContext, err := b.prompts.Load(driven.PromptNoContext)
		if err != nil {
			return "", fmt.Errorf("load no-context prompt: %w", err)
		}
		return noContext, nil
	}

	var sb strings.Builder
	sb.WriteString(contextIntro)

	for i, match := range matches {
		title := match.Metadata.Title
		if title == "" {
			title = untitledSection
		}

		sb.WriteString(fmt.Sprintf("\n\n[Context %d] Title: %s", i+1, title))
		if match.Metadata.URL != "" {
			sb.WriteString(" | URL: " + match.Metadata.URL)
		}
		sb.WriteString("\n")
		sb.WriteString(strings.TrimSpace(match.Content))
		sb.WriteString("\n---")
	}

	return sb.String(), nil
}

// SourcesFromMatches converts retrieved matches to response sources,
// preserving best-first order. Repeated source files are kept as-is; the
// caller sees exactly what retrieval returned.
func SourcesFromMatches(matches []domain.RetrievedMatch) []domain.Source {
	sources := make([]domain.Source, len(matches))
	for i, match := range matches {
		sources[i] = domain.Source{
			SourceFile: match.Metadata.SourceFile,
			Title:      match.Metadata.Title,
			URL:        match.Metadata.URL,
		}
	}
	return sources
}
