package scoring

import (
	"sort"

	"github.com/gameradar/radar/internal/contracts"
)

// Rank orders evaluations by aggregate score, best first, and selects the
// ones worth reporting: at or above minScore, capped at maxGames when the
// cap is positive. The sort is stable, so equal scores keep candidate
// listing order. An empty selection is a normal outcome.
func Rank(evals []contracts.Evaluation, minScore float64, maxGames int) []contracts.RankedGame {
	ordered := make([]contracts.Evaluation, len(evals))
	copy(ordered, evals)

	sort.SliceStable(ordered, func(a, b int) bool {
		return ordered[a].Aggregate > ordered[b].Aggregate
	})

	var ranked []contracts.RankedGame
	for _, ev := range ordered {
		if ev.Aggregate < minScore {
			continue
		}
		if maxGames > 0 && len(ranked) >= maxGames {
			break
		}
		ranked = append(ranked, contracts.RankedGame{
			Rank:  len(ranked) + 1,
			Game:  ev.Game,
			Score: ev.Aggregate,
			Tags:  ev.Tags,
		})
	}
	return ranked
}

// Degraded lists the games whose evaluation lost one or more signals, in
// candidate order, for the digest footer.
func Degraded(evals []contracts.Evaluation) []contracts.DegradedGame {
	var out []contracts.DegradedGame
	for _, ev := range evals {
		if !ev.Degraded() {
			continue
		}
		out = append(out, contracts.DegradedGame{
			Name:    ev.Game.Name,
			Summary: ev.FailureSummary(),
		})
	}
	return out
}
