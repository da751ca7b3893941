package llmclient

// generateRequest is the wire shape sent to the back-end capability's
// Generate RPC.
type generateRequest struct {
	Messages    []wireMessage `json:"messages"`
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
}

type wireMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// generateResponse is the wire shape returned by the Generate RPC on
// success. Failures arrive as gRPC status errors, mapped by translateError.
type generateResponse struct {
	ID           string    `json:"id"`
	Content      string    `json:"content"`
	Model        string    `json:"model"`
	Usage        wireUsage `json:"usage"`
	FinishReason string    `json:"finish_reason"`
	CreatedAt    int64     `json:"created_at"`
	LatencyMs    int64     `json:"latency_ms"`
}

type wireUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

// errorResponse is a wire shape for a structured back-end failure. Client
// does not decode it: Generate classifies failures from the gRPC status code
// alone.
type errorResponse struct {
	Code       string `json:"code"`
	Message    string `json:"message"`
	Model      string `json:"model"`
	RetryAfter int64  `json:"retry_after_seconds,omitempty"`
}
