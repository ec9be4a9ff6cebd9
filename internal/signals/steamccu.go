package signals

import (
	"context"
	"fmt"

	"github.com/gameradar/radar/internal/contracts"
)

const defaultCCUThreshold = 10000

// SteamCCU scores games whose current Steam player count clears the
// profile's threshold. A game without a resolved app id opts out.
type SteamCCU struct{}

func (SteamCCU) Name() string { return "steam_ccu" }

func (SteamCCU) Keys() []string {
	return []string{"steam_ccu_score", "steam_ccu_players"}
}

func (SteamCCU) Evaluate(ctx context.Context, game *contracts.Game, sc *Context) (contracts.Result, error) {
	if !game.HasSteamApp() {
		return contracts.Result{}, nil
	}

	weight := sc.Profile.Scores.SteamCCU
	if weight <= 0 {
		return contracts.Result{}, nil
	}

	count, err := sc.Steam.PlayerCount(ctx, game.SteamAppID)
	if err != nil {
		return contracts.Result{}, err
	}

	threshold := sc.Profile.Scores.SteamCCUThreshold
	if threshold <= 0 {
		threshold = defaultCCUThreshold
	}
	if count <= threshold {
		return contracts.Result{}, nil
	}

	return contracts.Result{
		Scores: []contracts.Score{
			contracts.Contributor("steam_ccu_score", weight),
			contracts.Detail("steam_ccu_players", float64(count)),
		},
		Tags: []string{fmt.Sprintf("Steam %dk CCU", count/1000)},
	}, nil
}
