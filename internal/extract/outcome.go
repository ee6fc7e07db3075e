package extract

// OutcomeKind tags the result of an AI extraction attempt.
type OutcomeKind int

const (
	// OutcomeSucceeded carries usable fields.
	OutcomeSucceeded OutcomeKind = iota
	// OutcomeUnavailable means no model client is configured.
	OutcomeUnavailable
	// OutcomeFailed means the call or response parse failed.
	OutcomeFailed
)

// Outcome is the tagged result of the AI path. Callers pattern-match on
// Kind to decide whether to fall back to the deterministic extractors;
// the failure never propagates as an error.
type Outcome struct {
	Kind   OutcomeKind
	Fields Fields
	Reason string
}
