package escalation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/opsmith/llm-gateway/pkg/llm"
	"github.com/opsmith/llm-gateway/pkg/quality"
)

const previewLen = 200

// clockNow is overridden in tests for deterministic timestamps.
var clockNow = time.Now

// Controller drives the escalation state machine: it generates a response,
// checks its quality, and retries against a more capable model when the
// quality checker recommends it, up to a bounded depth.
type Controller struct {
	backend      llm.Backend
	checker      *quality.Checker
	combination  CombinationStrategy
	complexModel string
	maxDepth     int
}

// NewController builds a Controller. If combination is nil, UseLatestStrategy
// is used. maxDepth is clamped to [1, 5].
func NewController(backend llm.Backend, checker *quality.Checker, complexModel string, maxDepth int, combination CombinationStrategy) *Controller {
	if combination == nil {
		combination = UseLatestStrategy{}
	}
	if maxDepth < 1 {
		maxDepth = 1
	}
	if maxDepth > 5 {
		maxDepth = 5
	}
	return &Controller{
		backend:      backend,
		checker:      checker,
		combination:  combination,
		complexModel: complexModel,
		maxDepth:     maxDepth,
	}
}

func preview(s string) string {
	if len(s) > previewLen {
		return s[:previewLen] + "..."
	}
	return s
}

// HandleWithEscalation runs the bounded escalation loop described above and
// returns the final response together with the full Chain record.
func (c *Controller) HandleWithEscalation(
	ctx context.Context,
	messages []llm.Message,
	initialModel string,
	complexityScore int,
	temperature float64,
	maxTokens int,
) (llm.ChatResponse, Chain, error) {
	requestID := fmt.Sprintf("req-%s", uuid.New().String()[:8])

	var promptPreview string
	if len(messages) > 0 {
		promptPreview = preview(messages[len(messages)-1].Content)
	}

	var steps []Step
	var totalLatency int64
	var finalResponse llm.ChatResponse
	haveFinal := false
	loopPrevented := false
	currentModel := initialModel

	for attempt := 0; attempt <= c.maxDepth; attempt++ {
		response, err := c.backend.Generate(ctx, messages, currentModel, temperature, maxTokens)
		if err != nil {
			return llm.ChatResponse{}, Chain{}, err
		}

		totalLatency += response.LatencyMs
		finalResponse = response
		haveFinal = true

		assessment := c.checker.Check(response.Content, complexityScore)
		shouldEscalate := assessment.ShouldEscalate && attempt < c.maxDepth && currentModel != c.complexModel

		steps = append(steps, Step{
			ModelUsed:       currentModel,
			ResponsePreview: preview(response.Content),
			QualityScore:    assessment.Score,
			Escalated:       shouldEscalate,
			LatencyMs:       response.LatencyMs,
			Timestamp:       clockNow().UTC(),
		})

		if !assessment.ShouldEscalate {
			break
		}
		if attempt >= c.maxDepth {
			loopPrevented = true
			break
		}
		if currentModel == c.complexModel {
			break
		}
		currentModel = c.complexModel
	}

	finalContent := ""
	if haveFinal {
		finalContent = finalResponse.Content
	}

	chain := Chain{
		RequestID:               requestID,
		OriginalPromptPreview:   promptPreview,
		Steps:                   steps,
		FinalModel:              currentModel,
		FinalResponse:           finalContent,
		TotalAttempts:           len(steps),
		TotalLatencyMs:          totalLatency,
		EscalationPreventedLoop: loopPrevented,
	}

	return finalResponse, chain, nil
}

// Combine builds a CombinedResponse from a Chain's step previews using the
// controller's configured CombinationStrategy.
func (c *Controller) Combine(chain Chain) CombinedResponse {
	responses := make([]string, len(chain.Steps))
	models := make([]string, len(chain.Steps))
	for i, step := range chain.Steps {
		responses[i] = step.ResponsePreview
		models[i] = step.ModelUsed
	}
	return c.combination.Combine(responses, models)
}

// HandleDirect bypasses escalation entirely and generates against model
// as-is — used when the caller already knows it wants the complex model.
func (c *Controller) HandleDirect(ctx context.Context, messages []llm.Message, model string, temperature float64, maxTokens int) (llm.ChatResponse, error) {
	return c.backend.Generate(ctx, messages, model, temperature, maxTokens)
}
