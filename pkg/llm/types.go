// Package llm defines the vocabulary shared between the routing core and
// whatever back-end capability actually talks to a model provider.
package llm

import "context"

// Message roles accepted by a back-end.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one turn of a conversation sent to a back-end.
type Message struct {
	Role    string
	Content string
}

// TokenUsage reports token consumption for a single generation.
type TokenUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// ChatResponse is what a back-end capability returns for one generation.
type ChatResponse struct {
	ID           string
	Content      string
	Model        string
	Usage        TokenUsage
	FinishReason string
	CreatedAt    int64 // unix seconds
	LatencyMs    int64
}

// Backend is the abstract generative-model capability the core consumes.
// It does not know or care whether this is a remote API call, a local
// model, or a test double.
type Backend interface {
	Generate(ctx context.Context, messages []Message, model string, temperature float64, maxTokens int) (ChatResponse, error)
}
