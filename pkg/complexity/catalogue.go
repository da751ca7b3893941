package complexity

import "regexp"

// reasoningKeywords is organized by tier, highest-impact first. Matching is
// case-insensitive and literal (not regex) against each keyword.
var reasoningKeywords = map[string][]string{
	"high": {
		"analyze", "analyse", "compare", "contrast", "evaluate", "assess",
		"design", "architect", "debug", "troubleshoot", "optimize", "refactor",
		"prove", "derive", "step by step", "step-by-step", "explain why",
		"reasoning", "trade-off", "tradeoff", "pros and cons",
		"advantages and disadvantages", "critically", "in-depth", "comprehensive",
	},
	"medium": {
		"explain", "describe", "summarize", "how does", "how do", "what if",
		"implement", "create", "build", "develop", "solve", "calculate",
		"compute", "determine", "figure out", "work through", "walk through",
		"help me understand", "elaborate", "clarify",
	},
	"low": {
		"what is", "what are", "define", "list", "name", "when", "where",
		"who", "translate", "convert", "format", "give me", "tell me",
		"show me",
	},
}

// keywordWeights gives the per-tier weight used in scoring.
var keywordWeights = map[string]float64{
	"high":   0.9,
	"medium": 0.6,
	"low":    0.3,
}

// reasoningTierOrder fixes iteration order so positions and dedup ties are
// deterministic across runs.
var reasoningTierOrder = []string{"high", "medium", "low"}

const codeSignalWeight = 0.7

// codePatterns carries the same (?i)(?s:.) / multiline semantics as the
// original's re.IGNORECASE | re.MULTILINE scan.
var codePatterns = mustCompileAll([]string{
	"(?is)```.*?```",                // fenced code blocks
	"(?im)`[^`]+`",                  // inline code
	`(?im)def\s+\w+\s*\(`,           // python function
	`(?im)function\s+\w+\s*\(`,      // javascript function
	`(?im)class\s+\w+[\s:{]`,        // class definitions
	`(?im)import\s+[\w.]+`,          // import statements
	`(?im)from\s+[\w.]+\s+import`,   // from imports
	`(?im)const\s+\w+\s*=`,          // javascript const
	`(?im)let\s+\w+\s*=`,            // javascript let
	`(?im)var\s+\w+\s*=`,            // javascript var
	`(?im)public\s+(?:static\s+)?(?:void|int|string|bool)`, // c#/java methods
	`(?im)async\s+(?:def|function)`, // async functions
	`(?im)=>\s*\{`,                  // arrow functions
	`(?im)SELECT\s+.+\s+FROM`,       // SQL queries
	`(?im)CREATE\s+TABLE`,           // SQL DDL
})

const mathSignalWeight = 0.8

var mathPatterns = mustCompileAll([]string{
	"(?is)\\$\\$.*?\\$\\$", // LaTeX display math
	`(?i)\$[^$]+\$`,         // LaTeX inline math
	`(?i)\\frac\{`,          // LaTeX fractions
	`(?i)\\sum`,             // LaTeX summation
	`(?i)\\int`,             // LaTeX integral
	`(?i)\d+\s*[+\-*/^]\s*\d+`, // arithmetic
	`(?i)\d+\s*[=<>]\s*\d+`,    // comparisons
	`(?i)[∫∑∏√∞≤≥≠±×÷]`,        // math symbols
	`(?i)\b(?:integral|derivative|matrix|vector|equation|formula)\b`,
	`(?i)\b(?:polynomial|factorial|logarithm|exponential|trigonometric)\b`,
	`(?i)\b(?:probability|statistics|regression|correlation)\b`,
})

const multipartSignalWeight = 0.5

var multipartPatterns = mustCompileAll([]string{
	`(?im)^\s*\d+[.)]\s+`,  // numbered lists
	`(?im)^\s*[a-z][.)]\s+`, // lettered lists
	`(?im)^\s*[-*•]\s+`,     // bullet points
	`(?im)\b(?:first|firstly|second|secondly|third|thirdly|finally)\b`,
	`(?im)\b(?:additionally|moreover|furthermore|also)\b`,
	`(?im)\b(?:and also|as well as|in addition|on top of that)\b`,
	`(?im)\?\s*\n.*?\?`,                // multiple questions across lines
	`(?im)\?\s+(?:And|Also|What|How|Why|Can)`, // multiple questions in sequence
})

// lengthThresholds maps named buckets to a character-count ceiling.
var lengthThresholds = struct {
	VeryShort, Short, Medium, Long, VeryLong int
}{VeryShort: 50, Short: 100, Medium: 500, Long: 1000, VeryLong: 2000}

// CategoryWeights are the default per-category multipliers applied after
// diminishing-returns aggregation. They sum to 1.0 and are overridable via
// configuration (§6 "Analyzer signal weights").
type CategoryWeights struct {
	Keyword   float64
	Code      float64
	Math      float64
	Multipart float64
	Length    float64
}

// DefaultCategoryWeights mirrors the reference weighting.
func DefaultCategoryWeights() CategoryWeights {
	return CategoryWeights{
		Keyword:   0.35,
		Code:      0.25,
		Math:      0.20,
		Multipart: 0.10,
		Length:    0.10,
	}
}

func mustCompileAll(patterns []string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			// A malformed catalogue entry is dropped, never fatal — mirrors
			// the detector's own tolerance for bad patterns at match time.
			continue
		}
		compiled = append(compiled, re)
	}
	return compiled
}
