package esportscal

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/gameradar/radar/pkg/config"
	"github.com/gameradar/radar/pkg/httputil"
	"github.com/gameradar/radar/pkg/logger"

	"github.com/gameradar/radar/internal/events"
)

var jst = time.FixedZone("JST", 9*60*60)

// Scraper pulls upcoming tournament rows from an esports calendar page and
// converts them into calendar events. The page is expected to render one
// event per table row:
//
//	<tr class="event-row">
//	  <td class="game">...</td>
//	  <td class="event">...</td>
//	  <td class="start">2026-09-05 10:00</td>
//	  <td class="end">2026-09-07 22:00</td>
//	  <td class="tier">1</td>
//	</tr>
//
// Tier maps to hype weight: tier 1 events weigh 2.0, tier 2 weigh 1.5, the
// rest weigh 1.0.
type Scraper struct {
	url  string
	http *httputil.Client
	log  *logger.Logger
}

func NewScraper(cfg *config.Config, hc *httputil.Client, log *logger.Logger) *Scraper {
	return &Scraper{
		url:  cfg.CalendarURL,
		http: hc,
		log:  log.WithField("client", "esportscal"),
	}
}

// Enabled reports whether a calendar URL is configured.
func (s *Scraper) Enabled() bool {
	return s.url != ""
}

// Fetch downloads and parses the calendar page.
func (s *Scraper) Fetch(ctx context.Context) ([]events.Event, error) {
	if !s.Enabled() {
		return nil, fmt.Errorf("esportscal: no calendar url configured")
	}

	resp, err := s.http.Get(ctx, s.url)
	if err != nil {
		return nil, fmt.Errorf("esportscal: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("esportscal: unexpected status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("esportscal: parse html: %w", err)
	}

	return s.parseRows(doc), nil
}

func (s *Scraper) parseRows(doc *goquery.Document) []events.Event {
	var evs []events.Event

	doc.Find("tr.event-row").Each(func(i int, row *goquery.Selection) {
		ev, err := parseRow(row)
		if err != nil {
			s.log.WithError(err).WithField("row", i).Warn("skipping malformed calendar row")
			return
		}
		evs = append(evs, ev)
	})

	return evs
}

func parseRow(row *goquery.Selection) (events.Event, error) {
	game := cellText(row, "td.game")
	name := cellText(row, "td.event")
	if game == "" || name == "" {
		return events.Event{}, fmt.Errorf("missing game or event name")
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", cellText(row, "td.start"), jst)
	if err != nil {
		return events.Event{}, fmt.Errorf("start: %w", err)
	}

	var end time.Time
	if raw := cellText(row, "td.end"); raw != "" {
		end, err = time.ParseInLocation("2006-01-02 15:04", raw, jst)
		if err != nil {
			return events.Event{}, fmt.Errorf("end: %w", err)
		}
	}

	return events.Event{
		GameName:   game,
		Name:       name,
		Start:      start,
		End:        end,
		HypeWeight: tierWeight(cellText(row, "td.tier")),
	}, nil
}

func cellText(row *goquery.Selection, selector string) string {
	return strings.TrimSpace(row.Find(selector).First().Text())
}

func tierWeight(tier string) float64 {
	switch n, _ := strconv.Atoi(tier); n {
	case 1:
		return 2.0
	case 2:
		return 1.5
	default:
		return 1.0
	}
}
