package quality

// IssueKind is the closed set of response quality defects.
type IssueKind string

const (
	IssueUncertainty    IssueKind = "uncertainty"
	IssueIncomplete     IssueKind = "incomplete"
	IssueFailedReasoning IssueKind = "failed-reasoning"
	IssueRefusal        IssueKind = "refusal"
	IssueTooShort       IssueKind = "too-short"
	IssueRepetition     IssueKind = "repetition"
)

// Issue is one detected defect in a response.
type Issue struct {
	Kind        IssueKind
	Description string
	Severity    float64
	Evidence    string // empty when the detector has no snippet to show
}

// Assessment is the output of the quality checker.
type Assessment struct {
	Score            int
	Issues           []Issue
	ShouldEscalate   bool
	EscalationReason string // empty unless ShouldEscalate
	Confidence       float64
}
