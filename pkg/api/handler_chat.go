package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	echo "github.com/labstack/echo/v5"

	"github.com/opsmith/llm-gateway/pkg/escalation"
	"github.com/opsmith/llm-gateway/pkg/llm"
	"github.com/opsmith/llm-gateway/pkg/metrics"
	"github.com/opsmith/llm-gateway/pkg/quality"
	"github.com/opsmith/llm-gateway/pkg/routing"
)

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 2048
)

// newMetricsRequestID mints a 12-hex-char request identifier for metrics
// records, distinct in length from the 8-hex-char IDs escalation chains use
// for their own request namespace.
func newMetricsRequestID() string {
	raw := strings.ReplaceAll(uuid.New().String(), "-", "")
	return "req-" + raw[:12]
}

// chatCompletionHandler handles POST /v1/chat/completions.
func (s *Server) chatCompletionHandler(c *echo.Context) error {
	var req ChatCompletionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if len(req.Messages) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "messages must not be empty")
	}

	temperature := req.Temperature
	if temperature == 0 {
		temperature = defaultTemperature
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}

	messages := make([]llm.Message, len(req.Messages))
	for i, m := range req.Messages {
		messages[i] = llm.Message{Role: m.Role, Content: m.Content}
	}
	prompt := messages[len(messages)-1].Content

	requestID := newMetricsRequestID()
	createdAt := s.now().UTC()

	analysis, decision := s.engine.RouteWithAnalysis(prompt)

	var (
		response llm.ChatResponse
		chain    *escalation.Chain
		genErr   error
	)

	if req.ForceComplex {
		// The routed choice is not used; record the complex model as the decision.
		decision = routing.AlwaysComplexStrategy{}.Decide(analysis, decision.SelectedModel, s.complexModel)
		response, genErr = s.controller.HandleDirect(c.Request().Context(), messages, s.complexModel, temperature, maxTokens)
	} else {
		var ch escalation.Chain
		response, ch, genErr = s.controller.HandleWithEscalation(c.Request().Context(), messages, decision.SelectedModel, analysis.Score, temperature, maxTokens)
		chain = &ch
	}

	completedAt := s.now().UTC()

	// Surface the last step's quality score in the metrics record. The
	// checker's full assessment lives inside the escalation controller and
	// isn't otherwise returned, so only the score is reconstructed here.
	var lastAssessment *quality.Assessment
	if chain != nil && len(chain.Steps) > 0 {
		lastAssessment = &quality.Assessment{Score: chain.Steps[len(chain.Steps)-1].QualityScore}
	}

	params := metrics.BuildParams{
		RequestID:   requestID,
		CreatedAt:   createdAt,
		CompletedAt: completedAt,
		Prompt:      prompt,
		Analysis:    analysis,
		Decision:    decision,
		Response:    response,
		Assessment:  lastAssessment,
		Chain:       chain,
		Err:         genErr,
		Rates:       s.costRates,
	}

	if genErr != nil {
		s.recordMetrics(c.Request().Context(), metrics.BuildRecord(params))
		return mapBackendError(genErr)
	}

	record := metrics.BuildRecord(params)
	s.recordMetrics(c.Request().Context(), record)

	resp := ChatCompletionResponse{
		RequestID:        requestID,
		Content:          response.Content,
		Model:            response.Model,
		WasEscalated:     record.WasEscalated,
		QualityScore:     record.QualityScore,
		ComplexityScore:  analysis.Score,
		TotalLatencyMs:   record.TotalLatencyMs,
		EstimatedCostUSD: record.EstimatedCostUSD,
		Usage: UsageDTO{
			PromptTokens:     response.Usage.PromptTokens,
			CompletionTokens: response.Usage.CompletionTokens,
			TotalTokens:      response.Usage.TotalTokens,
		},
	}

	return c.JSON(http.StatusOK, resp)
}

// recordMetrics persists a metrics record. A metrics-store failure is
// observed and logged at warning level, never turned into an error
// response — the caller already has (or has been denied) its completion
// independent of whether the audit trail made it to storage.
func (s *Server) recordMetrics(ctx context.Context, record metrics.RequestRecord) {
	insertCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := s.store.Insert(insertCtx, record); err != nil {
		slog.Warn("failed to persist request metrics", "request_id", record.RequestID, "error", err)
	}
}
