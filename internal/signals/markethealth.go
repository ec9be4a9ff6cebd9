package signals

import (
	"context"
	"fmt"

	"github.com/gameradar/radar/internal/contracts"
)

// Viewers-per-channel contributions are capped so one outlier category
// cannot drown every other signal.
const vpcCap = 50.0

// MarketHealth reads the audience structure of a category: how many viewers
// each channel draws on average, and whether the top channel monopolizes
// them.
type MarketHealth struct{}

func (MarketHealth) Name() string { return "market_health" }

func (MarketHealth) Keys() []string {
	return []string{"viewers_per_ch_score", "top_share_penalty"}
}

func (MarketHealth) Evaluate(ctx context.Context, game *contracts.Game, sc *Context) (contracts.Result, error) {
	vpcWeight := sc.Profile.Scores.ViewersPerCh
	topRule := sc.Profile.Penalties.TopShare
	if vpcWeight <= 0 && !topRule.Enabled() {
		return contracts.Result{}, nil
	}

	streams, err := sc.Twitch.GetStreams(ctx, game.TwitchID, streamSample)
	if err != nil {
		return contracts.Result{}, err
	}
	if len(streams) == 0 {
		return contracts.Result{}, nil
	}

	total := 0
	top := 0
	for _, s := range streams {
		total += s.ViewerCount
		if s.ViewerCount > top {
			top = s.ViewerCount
		}
	}

	var res contracts.Result

	if vpcWeight > 0 {
		vpc := float64(total) / float64(len(streams))
		value := vpc * vpcWeight
		if value > vpcCap {
			value = vpcCap
		}
		res.Scores = append(res.Scores, contracts.Contributor("viewers_per_ch_score", value))
		res.Tags = append(res.Tags, fmt.Sprintf("%.1f viewers/ch", vpc))
	}

	if topRule.Enabled() && total > 0 {
		share := float64(top) / float64(total)
		if share > topRule.Threshold {
			res.Scores = append(res.Scores, contracts.Contributor("top_share_penalty", -topRule.Weight))
			res.Tags = append(res.Tags, fmt.Sprintf("top-heavy (%.0f%%)", share*100))
		}
	}

	if len(res.Scores) == 0 {
		return contracts.Result{}, nil
	}
	return res, nil
}
