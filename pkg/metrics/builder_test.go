package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/opsmith/llm-gateway/pkg/complexity"
	"github.com/opsmith/llm-gateway/pkg/escalation"
	"github.com/opsmith/llm-gateway/pkg/llm"
	"github.com/opsmith/llm-gateway/pkg/quality"
	"github.com/opsmith/llm-gateway/pkg/routing"
)

// testRates mirrors the reference configuration's default cost table.
var testRates = CostRates{
	FlashInputPer1M:    0.075,
	FlashOutputPer1M:   0.30,
	ComplexInputPer1M:  1.25,
	ComplexOutputPer1M: 5.00,
}

func TestBuildRecord_NoEscalationNoQuality(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	response := llm.ChatResponse{
		Content:   "The answer is 42.",
		Model:     "gemini-2.0-flash",
		LatencyMs: 120,
		Usage:     llm.TokenUsage{PromptTokens: 1000, CompletionTokens: 200, TotalTokens: 1200},
	}
	decision := routing.Decision{SelectedModel: "gemini-2.0-flash", Reasoning: "Low complexity"}
	analysis := complexity.Analysis{Score: 10, Confidence: 0.8}

	rec := BuildRecord(BuildParams{
		RequestID:   "req-abc123",
		CreatedAt:   now,
		CompletedAt: now,
		Prompt:      "what is the answer?",
		Analysis:    analysis,
		Decision:    decision,
		Response:    response,
		Rates:       testRates,
	})

	assert.Equal(t, "req-abc123", rec.RequestID)
	assert.False(t, rec.WasEscalated)
	assert.Nil(t, rec.QualityScore)
	assert.Equal(t, TierFast, rec.InitialTier)
	assert.Equal(t, "gemini-2.0-flash", rec.FinalModel)
	assert.Equal(t, int64(120), rec.TotalLatencyMs)
	assert.False(t, rec.ErrorOccurred)
	assert.InDelta(t, 0.000135, rec.EstimatedCostUSD, 1e-9)
}

func TestBuildRecord_WithEscalationAndQuality(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	response := llm.ChatResponse{
		Content:   "A thorough answer.",
		Model:     "gemini-2.0-pro",
		LatencyMs: 80,
		Usage:     llm.TokenUsage{PromptTokens: 2000, CompletionTokens: 500},
	}
	decision := routing.Decision{SelectedModel: "gemini-2.0-flash", Reasoning: "Medium complexity"}
	assessment := &quality.Assessment{Score: 40, ShouldEscalate: true, EscalationReason: "Quality score 40 below threshold (70)"}
	chain := &escalation.Chain{
		TotalAttempts:  2,
		FinalModel:     "gemini-2.0-pro",
		TotalLatencyMs: 200,
	}

	rec := BuildRecord(BuildParams{
		RequestID:   "req-def456",
		CreatedAt:   now,
		CompletedAt: now,
		Prompt:      "explain this deeply",
		Decision:    decision,
		Response:    response,
		Assessment:  assessment,
		Chain:       chain,
	})

	require.NotNil(t, rec.QualityScore)
	assert.Equal(t, 40, *rec.QualityScore)
	assert.True(t, rec.WasEscalated)
	assert.Equal(t, 1, rec.EscalationDepth)
	assert.Equal(t, "gemini-2.0-pro", rec.FinalModel)
	assert.Equal(t, int64(200), rec.TotalLatencyMs)
	assert.NotEmpty(t, rec.EscalationReason)
}

func TestBuildRecord_ErrorRecorded(t *testing.T) {
	now := time.Now()
	rec := BuildRecord(BuildParams{
		RequestID:   "req-err",
		CreatedAt:   now,
		CompletedAt: now,
		Decision:    routing.Decision{SelectedModel: "gemini-2.0-flash"},
		Err:         errors.New("backend unavailable"),
	})

	assert.True(t, rec.ErrorOccurred)
	assert.Equal(t, "backend unavailable", rec.ErrorMessage)
}

func TestCalculateCost_FlashVsComplexRates(t *testing.T) {
	flash := CalculateCost(testRates, "gemini-2.0-flash", 1_000_000, 1_000_000)
	assert.InDelta(t, 0.375, flash, 1e-9)

	thinking := CalculateCost(testRates, "gemini-2.0-flash-thinking-exp", 1_000_000, 1_000_000)
	assert.InDelta(t, 6.25, thinking, 1e-9)

	complexModel := CalculateCost(testRates, "gemini-2.0-pro", 1_000_000, 1_000_000)
	assert.InDelta(t, 6.25, complexModel, 1e-9)
}

func TestCalculateCost_UsesSuppliedRatesNotHardcodedOnes(t *testing.T) {
	rates := CostRates{FlashInputPer1M: 1, FlashOutputPer1M: 2, ComplexInputPer1M: 3, ComplexOutputPer1M: 4}

	flash := CalculateCost(rates, "gemini-2.0-flash", 1_000_000, 1_000_000)
	assert.InDelta(t, 3.0, flash, 1e-9)

	complexModel := CalculateCost(rates, "gemini-2.0-pro", 1_000_000, 1_000_000)
	assert.InDelta(t, 7.0, complexModel, 1e-9)
}
