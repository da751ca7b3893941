package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	echo "github.com/labstack/echo/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsmith/llm-gateway/pkg/complexity"
	"github.com/opsmith/llm-gateway/pkg/escalation"
	"github.com/opsmith/llm-gateway/pkg/llm"
	"github.com/opsmith/llm-gateway/pkg/metrics"
	"github.com/opsmith/llm-gateway/pkg/metricsstore"
	"github.com/opsmith/llm-gateway/pkg/quality"
	"github.com/opsmith/llm-gateway/pkg/routing"
)

// scriptedBackend returns canned responses in order for llm.Backend.
type scriptedBackend struct {
	responses []string
	err       error
}

func (b *scriptedBackend) Generate(_ context.Context, _ []llm.Message, model string, _ float64, _ int) (llm.ChatResponse, error) {
	if b.err != nil {
		return llm.ChatResponse{}, b.err
	}
	content := b.responses[0]
	if len(b.responses) > 1 {
		b.responses = b.responses[1:]
	}
	return llm.ChatResponse{
		ID:      "resp-1",
		Content: content,
		Model:   model,
		Usage:   llm.TokenUsage{PromptTokens: 10, CompletionTokens: 20, TotalTokens: 30},
	}, nil
}

// fakeSink is an in-memory metricsSink for handler tests.
type fakeSink struct {
	records []metrics.RequestRecord
	healthy bool
}

func (f *fakeSink) Insert(_ context.Context, rec metrics.RequestRecord) error {
	f.records = append(f.records, rec)
	return nil
}

func (f *fakeSink) Health(_ context.Context) (*metricsstore.HealthStatus, error) {
	if !f.healthy {
		return nil, errors.New("not reachable")
	}
	return &metricsstore.HealthStatus{Status: "healthy"}, nil
}

func newTestServer(backend llm.Backend, sink *fakeSink) *Server {
	analyzer := complexity.NewAnalyzer(complexity.DefaultCategoryWeights())
	engine := routing.NewEngine(analyzer, "fast-model", "complex-model", nil, 30, 70)
	checker := quality.NewChecker(50, 60)
	controller := escalation.NewController(backend, checker, "complex-model", 2, nil)

	rates := metrics.CostRates{FlashInputPer1M: 0.075, FlashOutputPer1M: 0.30, ComplexInputPer1M: 1.25, ComplexOutputPer1M: 5.00}
	s := NewServer(engine, controller, sink, "complex-model", rates)
	s.now = func() time.Time { return time.Unix(0, 0) }
	return s
}

func postChatCompletion(t *testing.T, s *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/completions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := s.chatCompletionHandler(c)
	require.NoError(t, err)
	return rec
}

func TestChatCompletionHandler_Success(t *testing.T) {
	backend := &scriptedBackend{responses: []string{"The answer is 4."}}
	sink := &fakeSink{healthy: true}
	s := newTestServer(backend, sink)

	rec := postChatCompletion(t, s, `{"messages":[{"role":"user","content":"what is 2+2?"}]}`)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ChatCompletionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "The answer is 4.", resp.Content)
	assert.False(t, resp.WasEscalated)
	require.Len(t, sink.records, 1)
	assert.Equal(t, resp.RequestID, sink.records[0].RequestID)
}

func TestChatCompletionHandler_RejectsEmptyMessages(t *testing.T) {
	s := newTestServer(&scriptedBackend{}, &fakeSink{healthy: true})

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/completions", strings.NewReader(`{"messages":[]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := s.chatCompletionHandler(c)
	require.Error(t, err)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestChatCompletionHandler_BackendErrorMapsToGatewayError(t *testing.T) {
	backend := &scriptedBackend{err: &llm.RateLimitError{Model: "fast-model"}}
	sink := &fakeSink{healthy: true}
	s := newTestServer(backend, sink)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/chat/completions", strings.NewReader(`{"messages":[{"role":"user","content":"hi"}]}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := s.chatCompletionHandler(c)
	require.Error(t, err)

	var httpErr *echo.HTTPError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusTooManyRequests, httpErr.Code)

	// The failed request is still recorded for audit purposes.
	require.Len(t, sink.records, 1)
	assert.True(t, sink.records[0].ErrorOccurred)
}

func TestChatCompletionHandler_ForceComplexBypassesEscalation(t *testing.T) {
	backend := &scriptedBackend{responses: []string{"a thorough answer"}}
	sink := &fakeSink{healthy: true}
	s := newTestServer(backend, sink)

	rec := postChatCompletion(t, s, `{"messages":[{"role":"user","content":"explain quantum tunneling"}],"force_complex":true}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	var resp ChatCompletionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "complex-model", resp.Model)
}
