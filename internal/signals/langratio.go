package signals

import (
	"context"
	"fmt"

	"github.com/gameradar/radar/internal/contracts"
)

// LangRatio penalizes categories where almost nobody streams in the
// operator's home language: a viewer base that cannot find same-language
// channels rarely converts.
type LangRatio struct{}

func (LangRatio) Name() string { return "lang_ratio" }

func (LangRatio) Keys() []string { return []string{"lang_ratio_penalty"} }

func (LangRatio) Evaluate(ctx context.Context, game *contracts.Game, sc *Context) (contracts.Result, error) {
	rule := sc.Profile.Penalties.LangRatio
	if !rule.Enabled() || sc.Language == "" {
		return contracts.Result{}, nil
	}

	streams, err := sc.Twitch.GetStreams(ctx, game.TwitchID, streamSample)
	if err != nil {
		return contracts.Result{}, err
	}
	if len(streams) == 0 {
		return contracts.Result{}, nil
	}

	home := 0
	for _, s := range streams {
		if s.Language == sc.Language {
			home++
		}
	}

	ratio := float64(home) / float64(len(streams))
	if ratio >= rule.Threshold {
		return contracts.Result{}, nil
	}

	return contracts.Result{
		Scores: []contracts.Score{contracts.Contributor("lang_ratio_penalty", -rule.Weight)},
		Tags:   []string{fmt.Sprintf("%s ratio %.0f%%", sc.Language, ratio*100)},
	}, nil
}
