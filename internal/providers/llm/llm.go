package llm

import "context"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is one blocking completion call. JSONObject asks the provider to
// emit a single JSON object; whether it complies is checked downstream.
type Request struct {
	Messages   []Message
	JSONObject bool
	MaxTokens  int
}

type Provider interface {
	// Complete returns the model's raw text for the given message sequence.
	Complete(ctx context.Context, req Request) (string, error)
	Close() error
}
