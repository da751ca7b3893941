package routing

import (
	"fmt"
	"time"

	"github.com/opsmith/llm-gateway/pkg/complexity"
)

// clockNow is overridden in tests for deterministic timestamps.
var clockNow = time.Now

// ThresholdStrategy is the recommended default: routes purely on the
// complexity score against two fixed bounds.
type ThresholdStrategy struct {
	LowThreshold  int
	HighThreshold int
}

// NewThresholdStrategy builds a ThresholdStrategy with the given bounds.
func NewThresholdStrategy(low, high int) *ThresholdStrategy {
	return &ThresholdStrategy{LowThreshold: low, HighThreshold: high}
}

func (s *ThresholdStrategy) Decide(analysis complexity.Analysis, fastModel, complexModel string) Decision {
	score := analysis.Score
	now := clockNow().UTC()

	switch {
	case score >= s.HighThreshold:
		return Decision{
			SelectedModel:        complexModel,
			Tier:                 TierComplex,
			ComplexityScore:      score,
			Confidence:           analysis.Confidence,
			Reasoning:            fmt.Sprintf("High complexity (%d) exceeds threshold (%d)", score, s.HighThreshold),
			RequiresQualityCheck: false,
			Timestamp:            now,
		}
	case score < s.LowThreshold:
		return Decision{
			SelectedModel:        fastModel,
			Tier:                 TierFast,
			ComplexityScore:      score,
			Confidence:           analysis.Confidence,
			Reasoning:            fmt.Sprintf("Low complexity (%d) below threshold (%d)", score, s.LowThreshold),
			RequiresQualityCheck: false,
			Timestamp:            now,
		}
	default:
		return Decision{
			SelectedModel:        fastModel,
			Tier:                 TierFast,
			ComplexityScore:      score,
			Confidence:           analysis.Confidence,
			Reasoning:            fmt.Sprintf("Medium complexity (%d) - using fast model with quality check", score),
			RequiresQualityCheck: true,
			Timestamp:            now,
		}
	}
}

// ConfidenceAwareStrategy falls back to ThresholdStrategy except in the
// borderline band, where low analysis confidence pushes the decision to the
// complex model as a conservative default.
type ConfidenceAwareStrategy struct {
	LowThreshold        int
	HighThreshold       int
	ConfidenceThreshold float64
	fallback            *ThresholdStrategy
}

// NewConfidenceAwareStrategy builds a ConfidenceAwareStrategy.
func NewConfidenceAwareStrategy(low, high int, confThreshold float64) *ConfidenceAwareStrategy {
	return &ConfidenceAwareStrategy{
		LowThreshold:        low,
		HighThreshold:       high,
		ConfidenceThreshold: confThreshold,
		fallback:            NewThresholdStrategy(low, high),
	}
}

func (s *ConfidenceAwareStrategy) Decide(analysis complexity.Analysis, fastModel, complexModel string) Decision {
	if analysis.Confidence < s.ConfidenceThreshold &&
		analysis.Score >= s.LowThreshold && analysis.Score < s.HighThreshold {
		return Decision{
			SelectedModel:   complexModel,
			Tier:            TierComplex,
			ComplexityScore: analysis.Score,
			Confidence:      analysis.Confidence,
			Reasoning: fmt.Sprintf(
				"Low confidence (%.2f) with borderline score (%d) - defaulting to complex model",
				analysis.Confidence, analysis.Score,
			),
			RequiresQualityCheck: false,
			Timestamp:            clockNow().UTC(),
		}
	}
	return s.fallback.Decide(analysis, fastModel, complexModel)
}

// AlwaysFastStrategy always selects the fast model, still flagging the
// response for a quality check since no complexity-based filtering occurs.
type AlwaysFastStrategy struct{}

func (AlwaysFastStrategy) Decide(analysis complexity.Analysis, fastModel, complexModel string) Decision {
	return Decision{
		SelectedModel:        fastModel,
		Tier:                 TierFast,
		ComplexityScore:      analysis.Score,
		Confidence:           analysis.Confidence,
		Reasoning:            "Strategy: always use fast model (with quality check)",
		RequiresQualityCheck: true,
		Timestamp:            clockNow().UTC(),
	}
}

// AlwaysComplexStrategy always selects the complex model.
type AlwaysComplexStrategy struct{}

func (AlwaysComplexStrategy) Decide(analysis complexity.Analysis, fastModel, complexModel string) Decision {
	return Decision{
		SelectedModel:        complexModel,
		Tier:                 TierComplex,
		ComplexityScore:      analysis.Score,
		Confidence:           analysis.Confidence,
		Reasoning:            "Strategy: always use complex model",
		RequiresQualityCheck: false,
		Timestamp:            clockNow().UTC(),
	}
}
