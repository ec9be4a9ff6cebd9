package signals

import (
	"context"
	"strings"

	"github.com/gameradar/radar/internal/contracts"
)

// updateKeywords mark news items that hint at an imminent content drop.
var updateKeywords = []string{
	"update", "patch", "dlc", "new season", "expansion",
	"アップデート", "パッチ",
}

const newsLookback = 5

// SteamNews scores games whose recent official news mentions an update,
// patch, or expansion. A game without a resolved app id opts out.
type SteamNews struct{}

func (SteamNews) Name() string { return "steam_news" }

func (SteamNews) Keys() []string { return []string{"steam_news_score"} }

func (SteamNews) Evaluate(ctx context.Context, game *contracts.Game, sc *Context) (contracts.Result, error) {
	if !game.HasSteamApp() {
		return contracts.Result{}, nil
	}

	weight := sc.Profile.Scores.SteamNews
	if weight <= 0 {
		return contracts.Result{}, nil
	}

	items, err := sc.Steam.RecentNews(ctx, game.SteamAppID, newsLookback)
	if err != nil {
		return contracts.Result{}, err
	}

	for _, item := range items {
		if mentionsUpdate(item.Title) || mentionsUpdate(item.Contents) {
			return contracts.Result{
				Scores: []contracts.Score{contracts.Contributor("steam_news_score", weight)},
				Tags:   []string{"update incoming"},
			}, nil
		}
	}

	return contracts.Result{}, nil
}

func mentionsUpdate(text string) bool {
	text = strings.ToLower(text)
	for _, kw := range updateKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}
