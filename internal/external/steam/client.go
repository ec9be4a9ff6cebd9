package steam

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/gameradar/radar/pkg/config"
	"github.com/gameradar/radar/pkg/httputil"
	"github.com/gameradar/radar/pkg/logger"
)

// Client talks to the Steam Web API. Most endpoints used here need no key;
// the key is sent when configured so the higher rate tier applies.
type Client struct {
	cfg     config.SteamConfig
	http    *httputil.Client
	log     *logger.Logger
	limiter *rate.Limiter
}

func NewClient(cfg *config.Config, hc *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		cfg:     cfg.Steam,
		http:    hc,
		log:     log.WithField("client", "steam"),
		limiter: rate.NewLimiter(rate.Limit(1), 2),
	}
}

func (c *Client) get(ctx context.Context, path string, params url.Values, dest any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	if c.cfg.APIKey != "" {
		params.Set("key", c.cfg.APIKey)
	}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + path + "?" + params.Encode()
	resp, err := c.http.Get(ctx, endpoint)
	if err != nil {
		return fmt.Errorf("steam %s: %w", path, err)
	}
	return httputil.DecodeJSON(resp, dest)
}

// App is one entry from the full Steam app list.
type App struct {
	AppID int    `json:"appid"`
	Name  string `json:"name"`
}

type appListResponse struct {
	AppList struct {
		Apps []App `json:"apps"`
	} `json:"applist"`
}

// GetAppList downloads the full app catalog. The response is large (several
// MB); callers cache the result on disk.
func (c *Client) GetAppList(ctx context.Context) ([]App, error) {
	var out appListResponse
	if err := c.get(ctx, "/ISteamApps/GetAppList/v2/", url.Values{}, &out); err != nil {
		return nil, err
	}
	return out.AppList.Apps, nil
}

type playerCountResponse struct {
	Response struct {
		PlayerCount int `json:"player_count"`
		Result      int `json:"result"`
	} `json:"response"`
}

// PlayerCount returns the current concurrent player count for an app.
func (c *Client) PlayerCount(ctx context.Context, appID int) (int, error) {
	params := url.Values{"appid": {strconv.Itoa(appID)}}

	var out playerCountResponse
	if err := c.get(ctx, "/ISteamUserStats/GetNumberOfCurrentPlayers/v1/", params, &out); err != nil {
		return 0, err
	}
	if out.Response.Result != 1 {
		return 0, fmt.Errorf("steam player count: app %d not tracked", appID)
	}
	return out.Response.PlayerCount, nil
}

// NewsItem is one entry from an app's news feed.
type NewsItem struct {
	Title    string `json:"title"`
	Contents string `json:"contents"`
	Date     int64  `json:"date"` // unix seconds
}

type newsResponse struct {
	AppNews struct {
		NewsItems []NewsItem `json:"newsitems"`
	} `json:"appnews"`
}

// RecentNews returns the latest count news items for an app, newest first.
func (c *Client) RecentNews(ctx context.Context, appID, count int) ([]NewsItem, error) {
	params := url.Values{
		"appid": {strconv.Itoa(appID)},
		"count": {strconv.Itoa(count)},
	}

	var out newsResponse
	if err := c.get(ctx, "/ISteamNews/GetNewsForApp/v2/", params, &out); err != nil {
		return nil, err
	}
	return out.AppNews.NewsItems, nil
}
