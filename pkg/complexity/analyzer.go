package complexity

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Analyzer turns raw prompt text into a ComplexityAnalysis. It is pure and
// stateless beyond its configured category weights, safe to share across
// concurrent requests.
type Analyzer struct {
	weights CategoryWeights
}

// NewAnalyzer builds an Analyzer with the given category weights. Pass
// DefaultCategoryWeights() for the reference configuration.
func NewAnalyzer(weights CategoryWeights) *Analyzer {
	return &Analyzer{weights: weights}
}

// Analyze classifies prompt complexity. An empty or whitespace-only prompt
// short-circuits to the zero-signal result without running any detector.
func (a *Analyzer) Analyze(prompt string) Analysis {
	if strings.TrimSpace(prompt) == "" {
		return Analysis{
			Score:        0,
			Confidence:   1.0,
			Level:        LevelLow,
			Signals:      []DetectedSignal{},
			PromptLength: 0,
			Reasoning:    "Empty prompt",
		}
	}

	keywordSignals := deduplicateSignals(detectReasoningKeywords(prompt))
	codeSignals := deduplicateSignals(detectCodeBlocks(prompt))
	mathSignals := deduplicateSignals(detectMathExpressions(prompt))
	multipartSignals := deduplicateSignals(detectMultipart(prompt))
	lengthSignal := calculateLengthSignal(prompt)

	allSignals := make([]DetectedSignal, 0, len(keywordSignals)+len(codeSignals)+len(mathSignals)+len(multipartSignals)+1)
	allSignals = append(allSignals, keywordSignals...)
	allSignals = append(allSignals, codeSignals...)
	allSignals = append(allSignals, mathSignals...)
	allSignals = append(allSignals, multipartSignals...)
	allSignals = append(allSignals, lengthSignal)

	score := a.calculateScore(keywordSignals, codeSignals, mathSignals, multipartSignals, lengthSignal)
	confidence := calculateConfidence(allSignals, score)
	reasoning := generateReasoning(keywordSignals, codeSignals, mathSignals, multipartSignals, lengthSignal, score)

	return Analysis{
		Score:        score,
		Confidence:   confidence,
		Level:        levelFor(score),
		Signals:      allSignals,
		PromptLength: len(prompt),
		Reasoning:    reasoning,
	}
}

// aggregateWithDiminishingReturns sorts signal weights descending, caps at
// the top 5, and sums them with a 0.7^n geometric decay, clamped to 1.0.
func aggregateWithDiminishingReturns(signals []DetectedSignal) float64 {
	if len(signals) == 0 {
		return 0
	}

	weights := make([]float64, len(signals))
	for i, s := range signals {
		weights[i] = s.Weight
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(weights)))

	if len(weights) > 5 {
		weights = weights[:5]
	}

	total := 0.0
	decay := 1.0
	for _, w := range weights {
		total += w * decay
		decay *= 0.7
	}
	return math.Min(1.0, total)
}

func (a *Analyzer) calculateScore(keyword, code, math_, multipart []DetectedSignal, length DetectedSignal) int {
	keywordScore := aggregateWithDiminishingReturns(keyword) * a.weights.Keyword
	codeScore := aggregateWithDiminishingReturns(code) * a.weights.Code
	mathScore := aggregateWithDiminishingReturns(math_) * a.weights.Math
	multipartScore := aggregateWithDiminishingReturns(multipart) * a.weights.Multipart
	lengthScore := length.Weight * a.weights.Length

	total := keywordScore + codeScore + mathScore + multipartScore + lengthScore
	return int(math.Min(100, total*100))
}

func calculateConfidence(signals []DetectedSignal, score int) float64 {
	if len(signals) == 0 {
		return 0.5
	}

	sum := 0.0
	for _, s := range signals {
		sum += s.Weight
	}
	avgWeight := sum / float64(len(signals))

	countFactor := math.Min(1.0, float64(len(signals))/5)
	extremity := math.Abs(float64(score)-50) / 50

	confidence := avgWeight*0.4 + countFactor*0.3 + extremity*0.3
	return math.Round(confidence*100) / 100
}

func generateReasoning(keyword, code, math_, multipart []DetectedSignal, length DetectedSignal, score int) string {
	var reasons []string

	if len(keyword) > 0 {
		n := len(keyword)
		if n > 3 {
			n = 3
		}
		values := make([]string, n)
		for i := 0; i < n; i++ {
			values[i] = keyword[i].Value
		}
		reasons = append(reasons, fmt.Sprintf("Contains reasoning keywords: %s", strings.Join(values, ", ")))
	}

	if len(code) > 0 {
		reasons = append(reasons, fmt.Sprintf("Contains %d code block(s)", len(code)))
	}

	if len(math_) > 0 {
		reasons = append(reasons, "Contains mathematical expressions")
	}

	if len(multipart) > 0 {
		reasons = append(reasons, "Contains multi-part question structure")
	}

	reasons = append(reasons, fmt.Sprintf("Prompt length: %s", length.Value))

	return fmt.Sprintf("Score %d/100. %s", score, strings.Join(reasons, "; "))
}
