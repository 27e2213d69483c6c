package domain

// Message roles understood by the completion providers.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is the unit a completion provider consumes. The prompt builder's
// sole output type.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ConversationTurn is one entry of a session's bounded history. The session
// layer owns the sequence and its truncation; the core only consumes it.
type ConversationTurn struct {
	// Role is RoleUser or RoleAssistant.
	Role string `json:"role"`

	// Content is the turn text.
	Content string `json:"content"`
}
