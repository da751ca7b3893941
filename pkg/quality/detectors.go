package quality

import (
	"fmt"
	"math"
	"strings"
)

func truncateEvidence(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// detectUncertainty counts every uncertainty-phrase match across the whole
// response; more matches raise severity up to a 0.8 cap.
func detectUncertainty(text string) []Issue {
	lower := strings.ToLower(text)
	var matches []string

	for _, re := range uncertaintyPatterns {
		for _, m := range re.FindAllString(lower, -1) {
			matches = append(matches, m)
		}
	}
	for _, exc := range uncertaintyLookaheadExclusions {
		for _, loc := range exc.base.FindAllStringIndex(lower, -1) {
			end := loc[1]
			if end+len(exc.exclude) <= len(lower) && lower[end:end+len(exc.exclude)] == exc.exclude {
				continue
			}
			matches = append(matches, lower[loc[0]:loc[1]])
		}
	}

	if len(matches) == 0 {
		return nil
	}
	severity := math.Min(0.8, 0.2*float64(len(matches)))
	return []Issue{{
		Kind:        IssueUncertainty,
		Description: fmt.Sprintf("Found %d uncertainty phrase(s)", len(matches)),
		Severity:    severity,
		Evidence:    truncateEvidence(matches[0], 50),
	}}
}

// detectIncomplete flags a response that looks cut off mid-thought. Only the
// first matching pattern produces an issue.
func detectIncomplete(text string) []Issue {
	for _, re := range incompletePatterns {
		if re.MatchString(text) {
			evidence := strings.TrimSpace(text)
			if len(text) > 100 {
				evidence = strings.TrimSpace(text[len(text)-100:])
			}
			return []Issue{{
				Kind:        IssueIncomplete,
				Description: "Response appears to be incomplete",
				Severity:    0.7,
				Evidence:    evidence,
			}}
		}
	}
	return nil
}

// detectFailedReasoning flags the model explicitly saying it couldn't help.
func detectFailedReasoning(text string) []Issue {
	lower := strings.ToLower(text)
	for _, re := range failedReasoningPatterns {
		if loc := re.FindStringIndex(lower); loc != nil {
			return []Issue{{
				Kind:        IssueFailedReasoning,
				Description: "Response indicates inability to complete task",
				Severity:    0.9,
				Evidence:    truncateEvidence(lower[loc[0]:loc[1]], 50),
			}}
		}
	}
	return nil
}

// detectRefusal flags an outright refusal to engage with the request.
func detectRefusal(text string) []Issue {
	lower := strings.ToLower(text)
	for _, re := range refusalPatterns {
		if loc := re.FindStringIndex(lower); loc != nil {
			return []Issue{{
				Kind:        IssueRefusal,
				Description: "Model refused to answer the request",
				Severity:    1.0,
				Evidence:    truncateEvidence(lower[loc[0]:loc[1]], 50),
			}}
		}
	}
	return nil
}

// detectTooShort flags a response shorter than minLength plus an allowance
// scaled by the prompt's complexity score.
func detectTooShort(text string, minLength, promptComplexity int) []Issue {
	trimmed := strings.TrimSpace(text)
	expectedMin := minLength + promptComplexity*2

	if len(trimmed) >= expectedMin {
		return nil
	}
	severity := math.Max(0.3, 1.0-float64(len(trimmed))/float64(expectedMin))
	severity = math.Min(0.7, severity)

	evidence := "(empty)"
	if trimmed != "" {
		evidence = truncateEvidence(trimmed, 100)
	}
	return []Issue{{
		Kind:        IssueTooShort,
		Description: fmt.Sprintf("Response is only %d characters (expected >%d)", len(trimmed), expectedMin),
		Severity:    severity,
		Evidence:    evidence,
	}}
}

// detectRepetition flags a response that repeats whole sentences or
// contains a repeated 3-word phrase later in the text.
func detectRepetition(text string) []Issue {
	var issues []Issue

	sentences := splitSentences(text)
	if len(sentences) >= 3 {
		unique := make(map[string]struct{}, len(sentences))
		for _, s := range sentences {
			unique[s] = struct{}{}
		}
		repetitionRatio := 1 - float64(len(unique))/float64(len(sentences))
		if repetitionRatio > 0.3 {
			issues = append(issues, Issue{
				Kind:        IssueRepetition,
				Description: fmt.Sprintf("High repetition ratio: %.0f%%", repetitionRatio*100),
				Severity:    math.Min(0.8, repetitionRatio),
				Evidence:    "",
			})
		}
	}

	words := strings.Fields(strings.ToLower(text))
	if len(words) > 10 {
		for i := 0; i <= len(words)-7; i++ {
			phrase := strings.Join(words[i:i+3], " ")
			rest := strings.Join(words[i+3:], " ")
			if strings.Contains(rest, phrase) {
				hasRepetition := false
				for _, iss := range issues {
					if iss.Kind == IssueRepetition {
						hasRepetition = true
						break
					}
				}
				if !hasRepetition {
					issues = append(issues, Issue{
						Kind:        IssueRepetition,
						Description: "Contains repeated phrases",
						Severity:    0.5,
						Evidence:    phrase,
					})
				}
				break
			}
		}
	}

	return issues
}

// splitSentences mirrors a split on runs of .!? followed by trimming and
// filtering to sentences with more than 10 characters, lowercased.
func splitSentences(text string) []string {
	isSep := func(r rune) bool { return r == '.' || r == '!' || r == '?' }
	raw := strings.FieldsFunc(text, isSep)

	sentences := make([]string, 0, len(raw))
	for _, s := range raw {
		trimmed := strings.ToLower(strings.TrimSpace(s))
		if len(trimmed) > 10 {
			sentences = append(sentences, trimmed)
		}
	}
	return sentences
}
