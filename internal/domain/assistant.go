package domain

import "context"

// Chat message roles.
const (
	RoleSystem = "system"
	RoleUser   = "user"
)

// ChatMessage is one turn of a chat completion prompt.
type ChatMessage struct {
	Role    string
	Content string
}

// Completion is the provider's answer with token accounting.
type Completion struct {
	Text             string
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ChatCompleter generates an answer for a chat prompt.
type ChatCompleter interface {
	Complete(ctx context.Context, messages []ChatMessage) (Completion, error)
}

// Speaker synthesizes speech (mp3) from text.
type Speaker interface {
	Speak(ctx context.Context, text, voice string) ([]byte, error)
}
