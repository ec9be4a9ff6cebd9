package signals

import (
	"context"

	"github.com/gameradar/radar/internal/contracts"
)

const (
	streamSample = 100

	// A blue ocean: plenty of audience, few channels the operator would
	// actually compete with.
	blueOceanMinViewers   = 1000
	blueOceanMaxChannels  = 5
	competitorBandLowMul  = 0.5
	competitorBandHighMul = 5.0
)

// Competition sizes the field of channels comparable to the operator's own
// and scores accordingly: a bonus when the field is sparse and the audience
// large, a penalty when the category is saturated.
type Competition struct{}

func (Competition) Name() string { return "competition" }

func (Competition) Keys() []string { return []string{"competition_score"} }

func (Competition) Evaluate(ctx context.Context, game *contracts.Game, sc *Context) (contracts.Result, error) {
	if game.TwitchID == "" {
		return contracts.Result{}, nil
	}

	avg := sc.Profile.Channel.AvgViewers
	lo := avg * competitorBandLowMul
	hi := avg * competitorBandHighMul

	streams, err := sc.Twitch.GetStreams(ctx, game.TwitchID, streamSample)
	if err != nil {
		return contracts.Result{}, err
	}

	competitors := 0
	for _, s := range streams {
		v := float64(s.ViewerCount)
		if v >= lo && v <= hi {
			competitors++
		}
	}

	var value float64
	var tags []string

	if game.ViewerCount >= blueOceanMinViewers && competitors <= blueOceanMaxChannels {
		if bonus := sc.Profile.Scores.BlueOceanBonus; bonus > 0 {
			value += bonus
			tags = append(tags, "blue ocean")
		}
	}

	rule := sc.Profile.Penalties.Competitor
	if rule.Enabled() && float64(competitors) > rule.Threshold {
		value -= rule.Weight
		tags = append(tags, "crowded field")
	}

	if value == 0 {
		return contracts.Result{}, nil
	}

	return contracts.Result{
		Scores: []contracts.Score{contracts.Contributor("competition_score", value)},
		Tags:   tags,
	}, nil
}
