package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Cache provides typed caching for upstream responses. Player counts and
// trend curves barely move within one scan interval, so caching them saves
// most of the upstream budget when several horizons run close together.
type Cache struct {
	client *Client
	prefix string
}

// NewCache creates a new cache helper.
func NewCache(client *Client, prefix string) *Cache {
	return &Cache{
		client: client,
		prefix: prefix,
	}
}

// Get retrieves a cached value. A miss (or disabled Redis) returns false, nil.
func (c *Cache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !c.client.Enabled() {
		return false, nil
	}

	fullKey := fmt.Sprintf("%s:cache:%s", c.prefix, key)
	data, err := c.client.Redis().Get(ctx, fullKey).Bytes()
	if err != nil {
		// Key not found is not an error
		return false, nil
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("cache unmarshal failed: %w", err)
	}

	return true, nil
}

// Set stores a value in cache with TTL.
func (c *Cache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !c.client.Enabled() {
		return nil
	}

	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("cache marshal failed: %w", err)
	}

	fullKey := fmt.Sprintf("%s:cache:%s", c.prefix, key)
	return c.client.Redis().Set(ctx, fullKey, data, ttl).Err()
}

// Delete removes a cached value.
func (c *Cache) Delete(ctx context.Context, key string) error {
	if !c.client.Enabled() {
		return nil
	}

	fullKey := fmt.Sprintf("%s:cache:%s", c.prefix, key)
	return c.client.Redis().Del(ctx, fullKey).Err()
}

// Predefined TTLs
const (
	TTLPlayerCount = 10 * time.Minute // Steam concurrent players
	TTLStreams     = 5 * time.Minute  // Twitch stream listings
	TTLTrends      = 1 * time.Hour    // search-interest curves
	TTLNews        = 6 * time.Hour    // Steam news items
)

// Common cache key generators

func PlayerCountKey(appID int) string {
	return fmt.Sprintf("steam:ccu:%d", appID)
}

func StreamsKey(gameID string) string {
	return fmt.Sprintf("twitch:streams:%s", gameID)
}

func TrendsKey(term string) string {
	return fmt.Sprintf("trends:%s", term)
}

func NewsKey(appID int) string {
	return fmt.Sprintf("steam:news:%d", appID)
}
