package signals

import (
	"context"

	"github.com/gameradar/radar/internal/contracts"
)

// Drops rewards games running a Drops campaign: viewers show up for the
// loot, which lifts smaller channels too.
type Drops struct{}

func (Drops) Name() string { return "drops" }

func (Drops) Keys() []string { return []string{"drops_score"} }

func (Drops) Evaluate(_ context.Context, game *contracts.Game, sc *Context) (contracts.Result, error) {
	if !game.DropsEnabled {
		return contracts.Result{}, nil
	}

	weight := sc.Profile.Scores.Drops
	if weight <= 0 {
		return contracts.Result{}, nil
	}

	return contracts.Result{
		Scores: []contracts.Score{contracts.Contributor("drops_score", weight)},
		Tags:   []string{"drops enabled"},
	}, nil
}
