package contracts

import "time"

// RankedGame is one selected game in the final digest.
type RankedGame struct {
	Rank  int      `json:"rank"` // 1-based
	Game  Game     `json:"game"`
	Score float64  `json:"score"`
	Tags  []string `json:"tags,omitempty"`
}

// DegradedGame names a game whose evaluation lost one or more signals.
type DegradedGame struct {
	Name    string `json:"name"`
	Summary string `json:"summary"`
}

// Digest is the ranked result set handed to the notifier. An empty Games
// slice is a valid outcome ("nothing interesting right now") and distinct
// from a failed run, which never produces a Digest at all.
type Digest struct {
	Horizon     Horizon       `json:"horizon"`
	GeneratedAt time.Time     `json:"generated_at"`
	Candidates  int           `json:"candidates"` // evaluated, before selection
	Games       []RankedGame  `json:"games"`
	Degraded    []DegradedGame `json:"degraded,omitempty"`
}
