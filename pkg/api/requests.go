package api

// ChatCompletionRequest is the HTTP request body for POST /v1/chat/completions.
type ChatCompletionRequest struct {
	Messages    []MessageDTO `json:"messages"`
	Temperature float64      `json:"temperature,omitempty"`
	MaxTokens   int          `json:"max_tokens,omitempty"`
	// ForceComplex bypasses routing and escalation, sending the request
	// straight to the complex back-end.
	ForceComplex bool `json:"force_complex,omitempty"`
}

// MessageDTO is the wire representation of a single conversation message.
type MessageDTO struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
