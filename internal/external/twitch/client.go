package twitch

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/gameradar/radar/pkg/config"
	"github.com/gameradar/radar/pkg/httputil"
	"github.com/gameradar/radar/pkg/logger"
)

// Helix allows 800 requests per minute per app token. We stay well under it.
const requestsPerSecond = 10

// Client talks to the Twitch Helix API with an app access token obtained via
// the client-credentials grant. The token is cached and refreshed shortly
// before expiry.
type Client struct {
	cfg     config.TwitchConfig
	http    *httputil.Client
	log     *logger.Logger
	limiter *rate.Limiter

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

func NewClient(cfg *config.Config, hc *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		cfg:     cfg.Twitch,
		http:    hc,
		log:     log.WithField("client", "twitch"),
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond),
	}
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

func (c *Client) accessToken(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.token != "" && time.Now().Before(c.tokenExp) {
		return c.token, nil
	}

	form := url.Values{
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"grant_type":    {"client_credentials"},
	}

	resp, err := c.http.PostForm(ctx, c.cfg.AuthURL, form)
	if err != nil {
		return "", fmt.Errorf("twitch auth: %w", err)
	}

	var tok tokenResponse
	if err := httputil.DecodeJSON(resp, &tok); err != nil {
		return "", fmt.Errorf("twitch auth: %w", err)
	}
	if tok.AccessToken == "" {
		return "", fmt.Errorf("twitch auth: empty access token")
	}

	c.token = tok.AccessToken
	// Refresh a minute early so in-flight requests never race expiry.
	c.tokenExp = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - time.Minute)

	c.log.WithField("expires_in", tok.ExpiresIn).Debug("refreshed app access token")
	return c.token, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, dest any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	token, err := c.accessToken(ctx)
	if err != nil {
		return err
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	headers := map[string]string{
		"Client-Id":     c.cfg.ClientID,
		"Authorization": "Bearer " + token,
	}

	resp, err := c.http.GetWithHeaders(ctx, endpoint, headers)
	if err != nil {
		return fmt.Errorf("twitch %s: %w", path, err)
	}
	return httputil.DecodeJSON(resp, dest)
}
