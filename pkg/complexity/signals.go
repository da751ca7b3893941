package complexity

import (
	"fmt"
	"strings"
)

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

// detectReasoningKeywords scans text for literal, case-insensitive keyword
// matches drawn from the three reasoning tiers.
func detectReasoningKeywords(text string) []DetectedSignal {
	var signals []DetectedSignal
	lower := strings.ToLower(text)

	for _, tier := range reasoningTierOrder {
		weight := keywordWeights[tier]
		for _, keyword := range reasoningKeywords[tier] {
			start := 0
			for {
				idx := strings.Index(lower[start:], keyword)
				if idx < 0 {
					break
				}
				pos := start + idx
				signals = append(signals, DetectedSignal{
					Kind:     SignalReasoningKeyword,
					Value:    keyword,
					Weight:   weight,
					Position: pos,
				})
				start = pos + len(keyword)
			}
		}
	}
	return signals
}

// detectCodeBlocks scans text against the code-pattern catalogue.
func detectCodeBlocks(text string) []DetectedSignal {
	var signals []DetectedSignal
	for _, re := range codePatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			matched := text[loc[0]:loc[1]]
			signals = append(signals, DetectedSignal{
				Kind:     SignalCodeBlock,
				Value:    truncate(matched, 50),
				Weight:   codeSignalWeight,
				Position: loc[0],
			})
		}
	}
	return signals
}

// detectMathExpressions scans text against the math-pattern catalogue.
func detectMathExpressions(text string) []DetectedSignal {
	var signals []DetectedSignal
	for _, re := range mathPatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			matched := text[loc[0]:loc[1]]
			signals = append(signals, DetectedSignal{
				Kind:     SignalMathExpression,
				Value:    truncate(matched, 30),
				Weight:   mathSignalWeight,
				Position: loc[0],
			})
		}
	}
	return signals
}

// detectMultipart scans text against the multipart-question catalogue.
func detectMultipart(text string) []DetectedSignal {
	var signals []DetectedSignal
	for _, re := range multipartPatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			matched := strings.TrimSpace(text[loc[0]:loc[1]])
			signals = append(signals, DetectedSignal{
				Kind:     SignalMultipart,
				Value:    truncate(matched, 30),
				Weight:   multipartSignalWeight,
				Position: loc[0],
			})
		}
	}
	return signals
}

// calculateLengthSignal produces the single length-derived signal.
func calculateLengthSignal(text string) DetectedSignal {
	length := len(text)

	var weight float64
	switch {
	case length < lengthThresholds.VeryShort:
		weight = 0.1
	case length < lengthThresholds.Short:
		weight = 0.2
	case length < lengthThresholds.Medium:
		weight = 0.4
	case length < lengthThresholds.Long:
		weight = 0.6
	case length < lengthThresholds.VeryLong:
		weight = 0.8
	default:
		weight = 0.8 + float64(length-lengthThresholds.VeryLong)/10000
		if weight > 0.9 {
			weight = 0.9
		}
	}

	return DetectedSignal{
		Kind:     SignalLength,
		Value:    fmt.Sprintf("%d characters", length),
		Weight:   weight,
		Position: -1,
	}
}

// deduplicateSignals keeps, per (kind, lowercase value) key, the
// highest-weight occurrence, preserving first-seen key order.
func deduplicateSignals(signals []DetectedSignal) []DetectedSignal {
	type key struct {
		kind  SignalKind
		value string
	}

	seen := make(map[key]DetectedSignal, len(signals))
	order := make([]key, 0, len(signals))

	for _, s := range signals {
		k := key{kind: s.Kind, value: strings.ToLower(s.Value)}
		existing, ok := seen[k]
		if !ok {
			order = append(order, k)
			seen[k] = s
			continue
		}
		if s.Weight > existing.Weight {
			seen[k] = s
		}
	}

	out := make([]DetectedSignal, 0, len(order))
	for _, k := range order {
		out = append(out, seen[k])
	}
	return out
}
