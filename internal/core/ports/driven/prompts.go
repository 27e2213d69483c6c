package driven

// PromptStore provides access to prompt templates.
// Implementations may load prompts from files, embed them in the binary,
// or fetch them from a remote configuration service.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	// If the prompt is not found, implementations should return a sensible
	// default or an error, depending on whether the prompt is required.
	Load(name string) (string, error)

	// Reload clears any cached prompts, forcing fresh loads on next access.
	// This is useful when prompts may have been edited on disk.
	Reload()
}

// Well-known prompt names used throughout the application.
// These constants define the contract between prompt consumers and providers.
const (
	// PromptChatSystem is the system prompt fixing the bot persona and
	// grounding rules. No format placeholders.
	PromptChatSystem = "chat_system"

	// PromptNoContext is the instruction used when retrieval returned
	// nothing. No format placeholders.
	PromptNoContext = "no_context"

	// PromptFinalQuestion restates the user question after variable-length
	// context. The template expects a %s placeholder for the question.
	PromptFinalQuestion = "final_question"
)
