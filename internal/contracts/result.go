package contracts

import (
	"fmt"
	"time"
)

// Score is one named sub-score emitted by a signal. Contributes marks whether
// the value participates in the weighted aggregate; bookkeeping entries
// (raw counts, ratios kept for display) set it to false.
type Score struct {
	Key         string  `json:"key"`
	Value       float64 `json:"value"`
	Contributes bool    `json:"contributes"`
}

// Contributor builds a score entry that participates in the aggregate.
func Contributor(key string, value float64) Score {
	return Score{Key: key, Value: value, Contributes: true}
}

// Detail builds a display-only score entry excluded from the aggregate.
func Detail(key string, value float64) Score {
	return Score{Key: key, Value: value, Contributes: false}
}

// Result is what one signal reports for one game in one run. The zero value
// means the signal opted out; an opted-out signal must leave the game's
// aggregate and tags untouched.
type Result struct {
	Scores []Score  `json:"scores,omitempty"`
	Tags   []string `json:"tags,omitempty"`
}

// Empty reports whether the signal had nothing to say.
func (r Result) Empty() bool {
	return len(r.Scores) == 0 && len(r.Tags) == 0
}

// SignalOutcome records how one signal invocation ended: a result, an empty
// opt-out, or a fault. Faults are data, not control flow; the evaluator
// records them and moves on.
type SignalOutcome struct {
	Signal  string
	Result  Result
	Err     error
	Elapsed time.Duration
}

// Failed reports whether the invocation faulted.
func (o SignalOutcome) Failed() bool {
	return o.Err != nil
}

// FailureReason returns a short human-readable fault description.
func (o SignalOutcome) FailureReason() string {
	if o.Err == nil {
		return ""
	}
	return fmt.Sprintf("%s: %v", o.Signal, o.Err)
}
