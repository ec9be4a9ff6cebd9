package signals

import (
	"context"
	"fmt"
	"time"

	"github.com/gameradar/radar/internal/contracts"
)

const (
	buzzWindow = time.Hour
	// Mention counts are scaled against this saturation point: at or above
	// it the signal emits its full weight.
	buzzSaturation = 100.0
)

// SocialBuzz scores games by their mention volume over the trailing hour.
type SocialBuzz struct{}

func (SocialBuzz) Name() string { return "social_buzz" }

func (SocialBuzz) Keys() []string { return []string{"social_buzz_score"} }

func (SocialBuzz) Evaluate(ctx context.Context, game *contracts.Game, sc *Context) (contracts.Result, error) {
	weight := sc.Profile.Scores.SocialBuzz
	if weight <= 0 {
		return contracts.Result{}, nil
	}
	if sc.Social == nil || !sc.Social.Configured() {
		return contracts.Result{}, nil
	}

	since := sc.Clock().Add(-buzzWindow)
	count, err := sc.Social.RecentMentionCount(ctx, game.Name, since)
	if err != nil {
		return contracts.Result{}, err
	}

	ratio := float64(count) / buzzSaturation
	if ratio > 1 {
		ratio = 1
	}

	value := weight * ratio
	if value <= 0 {
		return contracts.Result{}, nil
	}

	return contracts.Result{
		Scores: []contracts.Score{contracts.Contributor("social_buzz_score", value)},
		Tags:   []string{fmt.Sprintf("buzzing (%d mentions/h)", count)},
	}, nil
}
