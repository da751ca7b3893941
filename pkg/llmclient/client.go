// Package llmclient implements the llm.Backend interface over gRPC, talking
// to a generative-model capability running as a sidecar or local service.
package llmclient

import (
	"context"
	"fmt"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/connectivity"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/status"

	"github.com/opsmith/llm-gateway/pkg/llm"
)

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

// generateMethod is the fully qualified gRPC method path for the backend's
// single streaming-free Generate RPC.
const generateMethod = "/gateway.llm.v1.Backend/Generate"

// Client implements llm.Backend by calling a gRPC backend service. It uses
// insecure (plaintext) transport, matching a sidecar deployment on
// localhost or within the same pod network; a cross-network deployment
// should upgrade this to TLS credentials.
type Client struct {
	conn    *grpc.ClientConn
	timeout time.Duration
}

// NewClient dials addr and returns a ready-to-use Client. Dialing with
// grpc.NewClient is lazy: the connection is established on first RPC.
func NewClient(addr string, timeout time.Duration) (*Client, error) {
	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to create backend client for %s: %w", addr, err)
	}
	return &Client{conn: conn, timeout: timeout}, nil
}

// Close releases the underlying gRPC connection.
func (c *Client) Close() error {
	return c.conn.Close()
}

// Ping reports whether the connection to the back-end is usable, without
// invoking Generate. It nudges an idle connection to reconnect and waits
// briefly for a non-failure transport state.
func (c *Client) Ping(ctx context.Context) error {
	state := c.conn.GetState()
	if state == connectivity.Ready || state == connectivity.Idle {
		return nil
	}
	c.conn.Connect()
	if !c.conn.WaitForStateChange(ctx, state) {
		return ctx.Err()
	}
	if c.conn.GetState() == connectivity.TransientFailure {
		return fmt.Errorf("backend connection in transient failure")
	}
	return nil
}

// Generate implements llm.Backend.
func (c *Client) Generate(ctx context.Context, messages []llm.Message, model string, temperature float64, maxTokens int) (llm.ChatResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req := &generateRequest{
		Messages:    toWireMessages(messages),
		Model:       model,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}

	var resp generateResponse
	err := c.conn.Invoke(ctx, generateMethod, req, &resp, grpc.CallContentSubtype(jsonCodecName))
	if err != nil {
		return llm.ChatResponse{}, translateError(err, model)
	}

	return llm.ChatResponse{
		ID:      resp.ID,
		Content: resp.Content,
		Model:   resp.Model,
		Usage: llm.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
		FinishReason: resp.FinishReason,
		CreatedAt:    resp.CreatedAt,
		LatencyMs:    resp.LatencyMs,
	}, nil
}

func toWireMessages(messages []llm.Message) []wireMessage {
	out := make([]wireMessage, len(messages))
	for i, m := range messages {
		out[i] = wireMessage{Role: m.Role, Content: m.Content}
	}
	return out
}

// translateError maps a gRPC status error to the llm.BackendError taxonomy
// using the status code the backend chose to report the failure with.
func translateError(err error, model string) error {
	st, ok := status.FromError(err)
	if !ok {
		return &llm.OtherError{Message: err.Error(), Model: model}
	}

	switch st.Code() {
	case codes.DeadlineExceeded:
		return &llm.TimeoutError{Model: model, Timeout: 0}
	case codes.ResourceExhausted:
		return &llm.RateLimitError{Model: model}
	case codes.PermissionDenied, codes.Unauthenticated:
		return &llm.AuthenticationError{Message: st.Message()}
	case codes.InvalidArgument:
		return &llm.InvalidRequestError{Message: st.Message(), Model: model}
	case codes.NotFound:
		return &llm.ModelNotFoundError{Model: model}
	case codes.FailedPrecondition:
		return &llm.ContentFilterError{Model: model, Reason: st.Message()}
	default:
		return &llm.OtherError{Message: st.Message(), Model: model}
	}
}
