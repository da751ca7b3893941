package escalation

import (
	"strconv"
	"strings"
)

const previewTruncateLen = 500

// CombinationStrategy decides how to present responses gathered across an
// escalation Chain as a single result.
type CombinationStrategy interface {
	Combine(responses, models []string) CombinedResponse
}

// UseLatestStrategy returns the most recent response unmodified. This is
// the recommended default: escalation only happens because earlier
// responses were insufficient, so the final attempt is the one to show.
type UseLatestStrategy struct{}

func (UseLatestStrategy) Combine(responses, models []string) CombinedResponse {
	return CombinedResponse{
		PrimaryResponse:     responses[len(responses)-1],
		ModelsUsed:          models,
		CombinationStrategy: "use_latest",
	}
}

// MergeWithContextStrategy returns the latest response but keeps earlier
// attempts, truncated, as supporting context — useful for showing users or
// operators how the answer evolved through escalation.
type MergeWithContextStrategy struct{}

func (MergeWithContextStrategy) Combine(responses, models []string) CombinedResponse {
	if len(responses) == 1 {
		return CombinedResponse{
			PrimaryResponse:     responses[0],
			ModelsUsed:          models,
			CombinationStrategy: "single_response",
		}
	}

	parts := make([]string, 0, len(responses)-1)
	for i := 0; i < len(responses)-1; i++ {
		preview := responses[i]
		if len(preview) > previewTruncateLen {
			preview = preview[:previewTruncateLen] + "..."
		}
		parts = append(parts, "[Attempt "+strconv.Itoa(i+1)+" from "+models[i]+"]:\n"+preview)
	}

	return CombinedResponse{
		PrimaryResponse:     responses[len(responses)-1],
		SupportingContext:   strings.Join(parts, "\n\n"),
		ModelsUsed:          models,
		CombinationStrategy: "merge_with_context",
	}
}

// UseBestQualityStrategy returns the latest response, exactly as
// UseLatestStrategy does, labelled "use_best_quality". Combine receives no
// per-response quality scores, so no selection by quality takes place.
type UseBestQualityStrategy struct{}

func (UseBestQualityStrategy) Combine(responses, models []string) CombinedResponse {
	return CombinedResponse{
		PrimaryResponse:     responses[len(responses)-1],
		ModelsUsed:          models,
		CombinationStrategy: "use_best_quality",
	}
}
