package signals

import (
	"context"
	"fmt"

	"github.com/gameradar/radar/internal/contracts"
)

const (
	trendsWindowDays = 7
	// Interest below this baseline is noise: a jump from 1 to 3 is not a
	// spike worth reporting.
	trendsNoiseFloor = 5.0
	trendsSpikeRatio = 2.0
)

// TrendsSpike scores games whose daily search interest over the last two
// days runs well ahead of the trailing baseline.
type TrendsSpike struct{}

func (TrendsSpike) Name() string { return "trends_spike" }

func (TrendsSpike) Keys() []string { return []string{"trends_spike_score"} }

func (TrendsSpike) Evaluate(ctx context.Context, game *contracts.Game, sc *Context) (contracts.Result, error) {
	weight := sc.Profile.Scores.TrendsSpike
	if weight <= 0 {
		return contracts.Result{}, nil
	}

	series, err := sc.Trends.DailyInterest(ctx, game.Name, trendsWindowDays)
	if err != nil {
		return contracts.Result{}, err
	}
	if len(series) < 3 {
		return contracts.Result{}, nil
	}

	baseline := mean(series[:len(series)-2])
	recent := mean(series[len(series)-2:])

	if baseline < trendsNoiseFloor {
		return contracts.Result{}, nil
	}
	if recent <= baseline*trendsSpikeRatio {
		return contracts.Result{}, nil
	}

	ratio := recent / baseline
	// 2x baseline scores the full weight, larger spikes proportionally more.
	value := weight * (ratio / trendsSpikeRatio)

	return contracts.Result{
		Scores: []contracts.Score{contracts.Contributor("trends_spike_score", value)},
		Tags:   []string{fmt.Sprintf("search spike %.1fx", ratio)},
	}, nil
}

func mean(vs []float64) float64 {
	if len(vs) == 0 {
		return 0
	}
	var sum float64
	for _, v := range vs {
		sum += v
	}
	return sum / float64(len(vs))
}
