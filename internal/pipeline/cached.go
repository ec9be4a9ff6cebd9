package pipeline

import (
	"context"
	"fmt"

	"github.com/gameradar/radar/internal/external/steam"
	"github.com/gameradar/radar/internal/external/twitch"
	"github.com/gameradar/radar/internal/signals"
	"github.com/gameradar/radar/pkg/redis"
)

// The cached adapters sit between the signals and the live clients when Redis
// is available. Scans for different horizons often run minutes apart and ask
// the same questions, so short TTLs absorb most of the duplicate calls.

type cachedTwitch struct {
	api   signals.TwitchAPI
	cache *redis.Cache
}

func (c *cachedTwitch) GetStreams(ctx context.Context, gameID string, first int) ([]twitch.Stream, error) {
	key := fmt.Sprintf("%s:%d", redis.StreamsKey(gameID), first)
	var streams []twitch.Stream
	if hit, err := c.cache.Get(ctx, key, &streams); err == nil && hit {
		return streams, nil
	}
	streams, err := c.api.GetStreams(ctx, gameID, first)
	if err != nil {
		return nil, err
	}
	_ = c.cache.Set(ctx, key, streams, redis.TTLStreams)
	return streams, nil
}

type cachedSteam struct {
	api   signals.SteamAPI
	cache *redis.Cache
}

func (c *cachedSteam) PlayerCount(ctx context.Context, appID int) (int, error) {
	key := redis.PlayerCountKey(appID)
	var count int
	if hit, err := c.cache.Get(ctx, key, &count); err == nil && hit {
		return count, nil
	}
	count, err := c.api.PlayerCount(ctx, appID)
	if err != nil {
		return 0, err
	}
	_ = c.cache.Set(ctx, key, count, redis.TTLPlayerCount)
	return count, nil
}

func (c *cachedSteam) RecentNews(ctx context.Context, appID int, count int) ([]steam.NewsItem, error) {
	key := fmt.Sprintf("%s:%d", redis.NewsKey(appID), count)
	var items []steam.NewsItem
	if hit, err := c.cache.Get(ctx, key, &items); err == nil && hit {
		return items, nil
	}
	items, err := c.api.RecentNews(ctx, appID, count)
	if err != nil {
		return nil, err
	}
	_ = c.cache.Set(ctx, key, items, redis.TTLNews)
	return items, nil
}

type cachedTrends struct {
	api   signals.TrendsAPI
	cache *redis.Cache
}

func (c *cachedTrends) DailyInterest(ctx context.Context, term string, days int) ([]float64, error) {
	key := fmt.Sprintf("%s:%dd", redis.TrendsKey(term), days)
	var series []float64
	if hit, err := c.cache.Get(ctx, key, &series); err == nil && hit {
		return series, nil
	}
	series, err := c.api.DailyInterest(ctx, term, days)
	if err != nil {
		return nil, err
	}
	_ = c.cache.Set(ctx, key, series, redis.TTLTrends)
	return series, nil
}
