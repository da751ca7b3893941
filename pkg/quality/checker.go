package quality

import (
	"fmt"
	"math"
	"strings"
)

// Checker assesses LLM response quality and recommends escalation.
//
// It examines several independent signals: uncertainty phrasing, incomplete
// responses, failed-reasoning language, refusals, response length relative
// to prompt complexity, and repetition. Checker holds only its configured
// thresholds and is safe for concurrent use.
type Checker struct {
	minResponseLength int
	qualityThreshold  int
}

// NewChecker builds a Checker. minResponseLength defaults to 50 when zero.
func NewChecker(minResponseLength, qualityThreshold int) *Checker {
	if minResponseLength <= 0 {
		minResponseLength = 50
	}
	return &Checker{minResponseLength: minResponseLength, qualityThreshold: qualityThreshold}
}

// Check runs every detector against responseText and produces an
// Assessment, recommending escalation when the resulting score falls below
// the configured threshold.
func (c *Checker) Check(responseText string, promptComplexity int) Assessment {
	if strings.TrimSpace(responseText) == "" {
		return Assessment{
			Score: 0,
			Issues: []Issue{{
				Kind:        IssueTooShort,
				Description: "Response is empty",
				Severity:    1.0,
				Evidence:    "(empty response)",
			}},
			ShouldEscalate:   true,
			EscalationReason: "Empty response received",
			Confidence:       1.0,
		}
	}

	var issues []Issue
	issues = append(issues, detectUncertainty(responseText)...)
	issues = append(issues, detectIncomplete(responseText)...)
	issues = append(issues, detectFailedReasoning(responseText)...)
	issues = append(issues, detectRefusal(responseText)...)
	issues = append(issues, detectTooShort(responseText, c.minResponseLength, promptComplexity)...)
	issues = append(issues, detectRepetition(responseText)...)

	score := calculateScore(issues)
	shouldEscalate := score < c.qualityThreshold

	var reason string
	if shouldEscalate {
		if len(issues) > 0 {
			main := issues[0]
			for _, iss := range issues[1:] {
				if iss.Severity > main.Severity {
					main = iss
				}
			}
			reason = fmt.Sprintf("Quality score %d below threshold (%d). Main issue: %s",
				score, c.qualityThreshold, main.Description)
		} else {
			reason = fmt.Sprintf("Quality score %d below threshold (%d)", score, c.qualityThreshold)
		}
	}

	return Assessment{
		Score:            score,
		Issues:           issues,
		ShouldEscalate:   shouldEscalate,
		EscalationReason: reason,
		Confidence:       calculateConfidence(issues, responseText),
	}
}

// calculateScore reduces 100 by up to 25 points per issue, weighted by
// severity, floored at 0.
func calculateScore(issues []Issue) int {
	if len(issues) == 0 {
		return 100
	}
	var penalty float64
	for _, iss := range issues {
		penalty += iss.Severity * 25
	}
	score := int(100 - penalty)
	if score < 0 {
		return 0
	}
	return score
}

// calculateConfidence blends how much text was available to judge against
// how clear the detected issues (or their absence) are.
func calculateConfidence(issues []Issue, responseText string) float64 {
	lengthFactor := math.Min(1.0, float64(len(responseText))/500)

	var issueClarity float64
	if len(issues) > 0 {
		var total float64
		for _, iss := range issues {
			total += iss.Severity
		}
		issueClarity = total / float64(len(issues))
	} else {
		issueClarity = 0.7
	}

	confidence := lengthFactor*0.4 + issueClarity*0.6
	return math.Round(math.Min(1.0, confidence)*100) / 100
}
