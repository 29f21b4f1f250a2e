package adapter

import "context"

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// AIAdapter is the port for the one-shot consultant completion. Chat issues a
// single request and returns the assistant text; on any provider failure or
// empty completion it returns domain.ErrNoAnswer and nothing else happens.
type AIAdapter interface {
	// CountTokens returns prompt tokens for the provided messages,
	// best-effort when exact counting isn't available.
	CountTokens(ctx context.Context, messages []Message) (int, error)

	Chat(ctx context.Context, messages []Message) (string, error)
}
