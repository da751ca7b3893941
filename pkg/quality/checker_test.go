package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecker_EmptyResponse(t *testing.T) {
	c := NewChecker(50, 70)
	a := c.Check("   ", 40)

	require.True(t, a.ShouldEscalate)
	assert.Equal(t, 0, a.Score)
	assert.Equal(t, "Empty response received", a.EscalationReason)
	assert.Equal(t, 1.0, a.Confidence)
	require.Len(t, a.Issues, 1)
	assert.Equal(t, IssueTooShort, a.Issues[0].Kind)
}

func TestChecker_CleanResponseScoresHigh(t *testing.T) {
	c := NewChecker(50, 70)
	response := `The capital of France is Paris. It has been the capital since 987 CE
	and is home to roughly two million residents within the city proper. The Seine
	river runs through the center of the city, dividing it into the Left Bank and
	Right Bank, each with a distinct character and history.`

	a := c.Check(response, 20)
	assert.Equal(t, 100, a.Score)
	assert.False(t, a.ShouldEscalate)
	assert.Empty(t, a.Issues)
}

func TestChecker_UncertaintyLanguageEscalates(t *testing.T) {
	c := NewChecker(50, 90)
	a := c.Check("I'm not sure, but it might be 42. Perhaps it could be something else too.", 30)

	require.True(t, a.ShouldEscalate)
	require.NotEmpty(t, a.Issues)
	assert.Equal(t, IssueUncertainty, a.Issues[0].Kind)
	assert.Contains(t, a.EscalationReason, "Quality score")
}

func TestChecker_IThinkThatIsNotUncertainty(t *testing.T) {
	c := NewChecker(50, 70)
	a := c.Check("I think that the answer is 42, based on the documented evidence provided above.", 10)

	for _, iss := range a.Issues {
		assert.NotEqual(t, IssueUncertainty, iss.Kind, "lookahead exclusion should suppress this match")
	}
}

func TestChecker_RefusalIsHighestSeverity(t *testing.T) {
	c := NewChecker(50, 70)
	a := c.Check("I have to decline to answer that request.", 10)

	require.NotEmpty(t, a.Issues)
	var found bool
	for _, iss := range a.Issues {
		if iss.Kind == IssueRefusal {
			found = true
			assert.Equal(t, 1.0, iss.Severity)
		}
	}
	assert.True(t, found)
}

func TestChecker_TooShortScalesWithComplexity(t *testing.T) {
	c := NewChecker(50, 70)
	short := "Yes."

	lowComplexity := c.Check(short, 0)
	highComplexity := c.Check(short, 90)

	require.NotEmpty(t, lowComplexity.Issues)
	require.NotEmpty(t, highComplexity.Issues)
	assert.GreaterOrEqual(t, highComplexity.Issues[0].Severity, lowComplexity.Issues[0].Severity)
}

func TestChecker_RepetitionDetected(t *testing.T) {
	c := NewChecker(50, 70)
	response := "The system is working correctly. The system is working correctly. " +
		"The system is working correctly. Nothing else to report here today."

	a := c.Check(response, 10)

	var found bool
	for _, iss := range a.Issues {
		if iss.Kind == IssueRepetition {
			found = true
		}
	}
	assert.True(t, found)
}

func TestCalculateScore_ClampsAtZero(t *testing.T) {
	issues := []Issue{
		{Severity: 1.0}, {Severity: 1.0}, {Severity: 1.0}, {Severity: 1.0}, {Severity: 1.0},
	}
	assert.Equal(t, 0, calculateScore(issues))
}

func TestCalculateScore_NoIssuesIsPerfect(t *testing.T) {
	assert.Equal(t, 100, calculateScore(nil))
}
