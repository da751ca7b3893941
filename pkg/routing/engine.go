package routing

import "github.com/opsmith/llm-gateway/pkg/complexity"

// Engine is the single entry point binding an analyzer, model names, and a
// swappable strategy. It holds no state beyond the current strategy; every
// operation is pure with respect to the prompt.
type Engine struct {
	analyzer     *complexity.Analyzer
	strategy     Strategy
	fastModel    string
	complexModel string
}

// NewEngine builds a routing Engine. If strategy is nil, a ThresholdStrategy
// built from lowThreshold/highThreshold is used.
func NewEngine(analyzer *complexity.Analyzer, fastModel, complexModel string, strategy Strategy, lowThreshold, highThreshold int) *Engine {
	if strategy == nil {
		strategy = NewThresholdStrategy(lowThreshold, highThreshold)
	}
	return &Engine{
		analyzer:     analyzer,
		strategy:     strategy,
		fastModel:    fastModel,
		complexModel: complexModel,
	}
}

// Analyze runs the complexity analyzer without making a routing decision.
func (e *Engine) Analyze(prompt string) complexity.Analysis {
	return e.analyzer.Analyze(prompt)
}

// Route analyzes the prompt and applies the current strategy.
func (e *Engine) Route(prompt string) Decision {
	analysis := e.analyzer.Analyze(prompt)
	return e.strategy.Decide(analysis, e.fastModel, e.complexModel)
}

// RouteWithAnalysis returns both the analysis and the routing decision, for
// callers that need both for logging or display.
func (e *Engine) RouteWithAnalysis(prompt string) (complexity.Analysis, Decision) {
	analysis := e.analyzer.Analyze(prompt)
	decision := e.strategy.Decide(analysis, e.fastModel, e.complexModel)
	return analysis, decision
}

// SetStrategy swaps the routing strategy at runtime.
func (e *Engine) SetStrategy(strategy Strategy) {
	e.strategy = strategy
}
