package metrics

import (
	"strings"
	"time"

	"github.com/opsmith/llm-gateway/pkg/complexity"
	"github.com/opsmith/llm-gateway/pkg/escalation"
	"github.com/opsmith/llm-gateway/pkg/llm"
	"github.com/opsmith/llm-gateway/pkg/quality"
	"github.com/opsmith/llm-gateway/pkg/routing"
)

const previewLen = 500

// CostRates are the per-1M-token USD rates used by CalculateCost. Rates are
// configuration-supplied (pkg/config.CostConfig); the formula that applies
// them is fixed.
type CostRates struct {
	FlashInputPer1M    float64
	FlashOutputPer1M   float64
	ComplexInputPer1M  float64
	ComplexOutputPer1M float64
}

// BuildParams is every input BuildRecord needs to assemble a RequestRecord.
// Assessment and Chain are optional: both are nil when a request was sent
// straight to the complex model with no quality check, and Decision then
// names the model that served it.
type BuildParams struct {
	RequestID   string
	CreatedAt   time.Time
	CompletedAt time.Time

	Prompt     string
	Analysis   complexity.Analysis
	Decision   routing.Decision
	Response   llm.ChatResponse
	Assessment *quality.Assessment
	Chain      *escalation.Chain
	Err        error

	Rates CostRates
}

// BuildRecord assembles an immutable RequestRecord from the outputs of one
// gateway request. It is a pure function of its inputs: no I/O, no clock,
// no ID generation — callers supply RequestID/CreatedAt/CompletedAt.
func BuildRecord(p BuildParams) RequestRecord {
	wasEscalated := p.Chain != nil && p.Chain.TotalAttempts > 1
	escalationDepth := 0
	finalModel := p.Decision.SelectedModel
	totalLatency := p.Response.LatencyMs
	if p.Chain != nil {
		escalationDepth = p.Chain.TotalAttempts - 1
		finalModel = p.Chain.FinalModel
		totalLatency = p.Chain.TotalLatencyMs
	}

	initialTier := TierComplex
	if isFlashModel(p.Decision.SelectedModel) {
		initialTier = TierFast
	}

	signals := make([]string, len(p.Analysis.Signals))
	for i, s := range p.Analysis.Signals {
		signals[i] = string(s.Kind)
	}

	var qualityScore *int
	var escalationReason string
	if p.Assessment != nil {
		score := p.Assessment.Score
		qualityScore = &score
		if p.Assessment.ShouldEscalate {
			escalationReason = p.Assessment.EscalationReason
		}
	}

	errOccurred := p.Err != nil
	var errMessage string
	if errOccurred {
		errMessage = p.Err.Error()
	}

	return RequestRecord{
		RequestID:   p.RequestID,
		CreatedAt:   p.CreatedAt,
		CompletedAt: p.CompletedAt,

		PromptPreview: truncate(p.Prompt, previewLen),
		PromptLength:  len(p.Prompt),

		ComplexityScore:      p.Analysis.Score,
		ComplexityConfidence: p.Analysis.Confidence,
		DetectedSignals:      signals,

		InitialModel:     p.Decision.SelectedModel,
		InitialTier:      initialTier,
		FinalModel:       finalModel,
		RoutingReasoning: p.Decision.Reasoning,

		QualityScore:     qualityScore,
		WasEscalated:     wasEscalated,
		EscalationDepth:  escalationDepth,
		EscalationReason: escalationReason,

		LatencyMs:      p.Response.LatencyMs,
		TotalLatencyMs: totalLatency,

		PromptTokens:     p.Response.Usage.PromptTokens,
		CompletionTokens: p.Response.Usage.CompletionTokens,
		TotalTokens:      p.Response.Usage.TotalTokens,

		EstimatedCostUSD: CalculateCost(p.Rates, finalModel, p.Response.Usage.PromptTokens, p.Response.Usage.CompletionTokens),

		ResponsePreview: truncate(p.Response.Content, previewLen),
		FinishReason:    p.Response.FinishReason,

		ErrorOccurred: errOccurred,
		ErrorMessage:  errMessage,
	}
}

// isFlashModel classifies a model name as the cheap "flash" tier: it must
// mention "flash" and must not be a "thinking" variant, which is priced and
// capable like the complex tier despite the flash name.
func isFlashModel(model string) bool {
	lower := strings.ToLower(model)
	return strings.Contains(lower, "flash") && !strings.Contains(lower, "thinking")
}

// CalculateCost estimates USD cost from token usage using rates's flash-tier
// rates when model is a flash model, its complex-tier rates otherwise.
func CalculateCost(rates CostRates, model string, promptTokens, completionTokens int) float64 {
	inputRate, outputRate := rates.ComplexInputPer1M, rates.ComplexOutputPer1M
	if isFlashModel(model) {
		inputRate, outputRate = rates.FlashInputPer1M, rates.FlashOutputPer1M
	}
	inputCost := (float64(promptTokens) / 1_000_000) * inputRate
	outputCost := (float64(completionTokens) / 1_000_000) * outputRate
	return inputCost + outputCost
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
