package social

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/gameradar/radar/pkg/config"
	"github.com/gameradar/radar/pkg/httputil"
	"github.com/gameradar/radar/pkg/logger"
)

// Client reads recent-mention counts from the X API v2 counts endpoint.
// The free tier allows very few requests, hence the slow limiter.
type Client struct {
	cfg     config.SocialConfig
	http    *httputil.Client
	log     *logger.Logger
	limiter *rate.Limiter
}

func NewClient(cfg *config.Config, hc *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		cfg:     cfg.Social,
		http:    hc,
		log:     log.WithField("client", "social"),
		limiter: rate.NewLimiter(rate.Limit(1), 2),
	}
}

// Configured reports whether a bearer token is present. Without one the
// social signal opts out rather than burning requests on guaranteed 401s.
func (c *Client) Configured() bool {
	return c.cfg.BearerToken != ""
}

type countsResponse struct {
	Meta struct {
		TotalTweetCount int `json:"total_tweet_count"`
	} `json:"meta"`
}

// RecentMentionCount returns the number of posts mentioning the term since
// the given time. Retweets are excluded from the query.
func (c *Client) RecentMentionCount(ctx context.Context, term string, since time.Time) (int, error) {
	if !c.Configured() {
		return 0, fmt.Errorf("social: bearer token not configured")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	params := url.Values{
		"query":      {fmt.Sprintf("%q -is:retweet", term)},
		"start_time": {since.UTC().Format(time.RFC3339)},
	}
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/tweets/counts/recent?" + params.Encode()

	headers := map[string]string{"Authorization": "Bearer " + c.cfg.BearerToken}
	resp, err := c.http.GetWithHeaders(ctx, endpoint, headers)
	if err != nil {
		return 0, fmt.Errorf("social counts %q: %w", term, err)
	}

	var out countsResponse
	if err := httputil.DecodeJSON(resp, &out); err != nil {
		return 0, fmt.Errorf("social counts %q: %w", term, err)
	}
	return out.Meta.TotalTweetCount, nil
}
