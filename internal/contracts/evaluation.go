package contracts

import "strings"

// Evaluation is the scored form of one game. Producing an Evaluation cannot
// fail: signal faults degrade the score and are listed in Failures, they never
// abort the game or the batch.
type Evaluation struct {
	Game Game `json:"game"`

	// Merged sub-scores keyed by score key. Two enabled signals emitting the
	// same key is rejected at registry build time; within one signal the last
	// write wins.
	Scores map[string]Score `json:"scores"`

	// Display tags, deduplicated. Order is not significant.
	Tags []string `json:"tags"`

	// Aggregate is the weighted sum of all contributing scores under the
	// active horizon's weighting profile.
	Aggregate float64 `json:"aggregate"`

	// Failures holds one entry per faulted signal ("signal: reason").
	Failures []string `json:"failures,omitempty"`
}

// Degraded reports whether at least one signal faulted for this game.
func (e *Evaluation) Degraded() bool {
	return len(e.Failures) > 0
}

// FailureSummary joins the per-signal fault reasons for display.
func (e *Evaluation) FailureSummary() string {
	return strings.Join(e.Failures, "; ")
}
