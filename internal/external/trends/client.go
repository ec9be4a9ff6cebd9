package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"strings"

	"golang.org/x/time/rate"

	"github.com/gameradar/radar/pkg/config"
	"github.com/gameradar/radar/pkg/httputil"
	"github.com/gameradar/radar/pkg/logger"
)

// Google prepends this to every trends JSON payload.
const jsonGuard = ")]}',"

// Client reads daily search-interest series from the Google Trends widget
// API. The endpoint is unofficial and aggressively rate limited, so requests
// go out slowly and failures are expected to be tolerated upstream.
type Client struct {
	cfg     config.TrendsConfig
	http    *httputil.Client
	log     *logger.Logger
	limiter *rate.Limiter
}

func NewClient(cfg *config.Config, hc *httputil.Client, log *logger.Logger) *Client {
	return &Client{
		cfg:     cfg.Trends,
		http:    hc,
		log:     log.WithField("client", "trends"),
		limiter: rate.NewLimiter(rate.Limit(0.3), 1),
	}
}

type multilineResponse struct {
	Default struct {
		TimelineData []struct {
			Value []float64 `json:"value"`
		} `json:"timelineData"`
	} `json:"default"`
}

// DailyInterest returns one interest value (0..100) per day for the term,
// oldest first, covering the trailing days window.
func (c *Client) DailyInterest(ctx context.Context, term string, days int) ([]float64, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	params := url.Values{
		"hl":    {"ja"},
		"geo":   {c.cfg.Geo},
		"q":     {term},
		"range": {fmt.Sprintf("now %dd", days)},
	}
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/widgetdata/multiline?" + params.Encode()

	resp, err := c.http.Get(ctx, endpoint)
	if err != nil {
		return nil, fmt.Errorf("trends %q: %w", term, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("trends %q: unexpected status %d", term, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("trends %q: read body: %w", term, err)
	}

	payload := strings.TrimPrefix(string(body), jsonGuard)

	var out multilineResponse
	if err := json.Unmarshal([]byte(payload), &out); err != nil {
		return nil, fmt.Errorf("trends %q: decode: %w", term, err)
	}

	series := make([]float64, 0, len(out.Default.TimelineData))
	for _, point := range out.Default.TimelineData {
		if len(point.Value) == 0 {
			continue
		}
		series = append(series, point.Value[0])
	}
	return series, nil
}
