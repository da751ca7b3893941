package routing

import (
	"time"

	"github.com/opsmith/llm-gateway/pkg/complexity"
)

// Tier classifies a model by cost and capability.
type Tier string

const (
	TierFast    Tier = "fast"
	TierComplex Tier = "complex"
)

// Decision is the output of a routing strategy.
type Decision struct {
	SelectedModel         string
	Tier                  Tier
	ComplexityScore       int
	Confidence            float64
	Reasoning             string
	RequiresQualityCheck  bool
	Timestamp             time.Time
}

// Strategy maps a complexity analysis to a routing decision. Implementations
// are value objects swapped at construction or via Engine.SetStrategy.
type Strategy interface {
	Decide(analysis complexity.Analysis, fastModel, complexModel string) Decision
}
