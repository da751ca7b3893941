package metricsstore

import (
	"context"
	"fmt"

	"github.com/opsmith/llm-gateway/pkg/metrics"
)

// Insert persists one RequestRecord. request_id is unique, so a retried
// insert for the same request is a no-op rather than an error.
func (s *Store) Insert(ctx context.Context, rec metrics.RequestRecord) error {
	// A nil slice would be sent as NULL into the NOT NULL detected_signals column.
	signals := rec.DetectedSignals
	if signals == nil {
		signals = []string{}
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO request_metrics (
			request_id, created_at, completed_at,
			prompt_preview, prompt_length,
			complexity_score, complexity_confidence, detected_signals,
			initial_model, initial_tier, final_model, routing_reasoning,
			quality_score, was_escalated, escalation_depth, escalation_reason,
			latency_ms, total_latency_ms,
			prompt_tokens, completion_tokens, total_tokens,
			estimated_cost_usd,
			response_preview, finish_reason,
			error_occurred, error_message
		) VALUES (
			$1, $2, $3,
			$4, $5,
			$6, $7, $8,
			$9, $10, $11, $12,
			$13, $14, $15, $16,
			$17, $18,
			$19, $20, $21,
			$22,
			$23, $24,
			$25, $26
		)
		ON CONFLICT (request_id) DO NOTHING`,
		rec.RequestID, rec.CreatedAt, rec.CompletedAt,
		rec.PromptPreview, rec.PromptLength,
		rec.ComplexityScore, rec.ComplexityConfidence, signals,
		rec.InitialModel, string(rec.InitialTier), rec.FinalModel, rec.RoutingReasoning,
		rec.QualityScore, rec.WasEscalated, rec.EscalationDepth, rec.EscalationReason,
		rec.LatencyMs, rec.TotalLatencyMs,
		rec.PromptTokens, rec.CompletionTokens, rec.TotalTokens,
		rec.EstimatedCostUSD,
		rec.ResponsePreview, rec.FinishReason,
		rec.ErrorOccurred, rec.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to insert request metrics: %w", err)
	}
	return nil
}

// GetByRequestID fetches a single stored record, or (zero value, false) if
// no row matches.
func (s *Store) GetByRequestID(ctx context.Context, requestID string) (metrics.RequestRecord, bool, error) {
	var rec metrics.RequestRecord
	var initialTier string

	row := s.pool.QueryRow(ctx, `
		SELECT request_id, created_at, completed_at,
			prompt_preview, prompt_length,
			complexity_score, complexity_confidence, detected_signals,
			initial_model, initial_tier, final_model, routing_reasoning,
			quality_score, was_escalated, escalation_depth, escalation_reason,
			latency_ms, total_latency_ms,
			prompt_tokens, completion_tokens, total_tokens,
			estimated_cost_usd,
			response_preview, finish_reason,
			error_occurred, error_message
		FROM request_metrics WHERE request_id = $1`, requestID)

	err := row.Scan(
		&rec.RequestID, &rec.CreatedAt, &rec.CompletedAt,
		&rec.PromptPreview, &rec.PromptLength,
		&rec.ComplexityScore, &rec.ComplexityConfidence, &rec.DetectedSignals,
		&rec.InitialModel, &initialTier, &rec.FinalModel, &rec.RoutingReasoning,
		&rec.QualityScore, &rec.WasEscalated, &rec.EscalationDepth, &rec.EscalationReason,
		&rec.LatencyMs, &rec.TotalLatencyMs,
		&rec.PromptTokens, &rec.CompletionTokens, &rec.TotalTokens,
		&rec.EstimatedCostUSD,
		&rec.ResponsePreview, &rec.FinishReason,
		&rec.ErrorOccurred, &rec.ErrorMessage,
	)
	if err != nil {
		if isNoRows(err) {
			return metrics.RequestRecord{}, false, nil
		}
		return metrics.RequestRecord{}, false, fmt.Errorf("failed to query request metrics: %w", err)
	}
	rec.InitialTier = metrics.ModelTier(initialTier)
	return rec, true, nil
}
