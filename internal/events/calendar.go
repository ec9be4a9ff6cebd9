package events

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// FileName is the calendar's conventional name under the data dir.
const FileName = "events.csv"

// csv columns: game_name,event_name,start_jst,end_jst,hype_weight
const columns = 5

const timeLayout = "2006-01-02 15:04"

// jst is the calendar's home timezone. Timestamps without explicit offsets
// are interpreted here.
var jst = time.FixedZone("JST", 9*60*60)

// Event is one calendar entry: a dated happening (tournament, collab cafe,
// anniversary, season start) expected to move interest in a game.
type Event struct {
	GameName   string    `json:"game_name"`
	Name       string    `json:"event_name"`
	Start      time.Time `json:"start"`
	End        time.Time `json:"end"` // zero when open-ended
	HypeWeight float64   `json:"hype_weight"`
}

// Active reports whether the event is running at t.
func (e Event) Active(t time.Time) bool {
	if t.Before(e.Start) {
		return false
	}
	return e.End.IsZero() || t.Before(e.End)
}

// Calendar is the event lookup table, loaded once per run and shared
// read-only across all concurrent evaluations.
type Calendar struct {
	byGame map[string][]Event
	count  int
}

// Empty returns a calendar with no entries.
func Empty() *Calendar {
	return &Calendar{byGame: map[string][]Event{}}
}

// Load reads the calendar CSV. A missing file yields an empty calendar, not
// an error: no calendar just means the event signals opt out.
func Load(path string) (*Calendar, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Calendar{byGame: map[string][]Event{}}, nil
		}
		return nil, fmt.Errorf("open calendar: %w", err)
	}
	defer f.Close()

	cal, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("calendar %s: %w", path, err)
	}
	return cal, nil
}

// Parse reads calendar CSV from a reader. The first row is a header.
func Parse(r io.Reader) (*Calendar, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = columns

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cal := &Calendar{byGame: map[string][]Event{}}

	for i, rec := range records {
		if i == 0 {
			// header
			continue
		}

		ev, err := parseRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}

		key := strings.ToLower(ev.GameName)
		cal.byGame[key] = append(cal.byGame[key], ev)
		cal.count++
	}

	// Earliest-first within each game keeps window scans deterministic.
	for _, evs := range cal.byGame {
		sort.Slice(evs, func(a, b int) bool { return evs[a].Start.Before(evs[b].Start) })
	}

	return cal, nil
}

func parseRecord(rec []string) (Event, error) {
	start, err := parseJST(rec[2])
	if err != nil {
		return Event{}, fmt.Errorf("start: %w", err)
	}

	var end time.Time
	if strings.TrimSpace(rec[3]) != "" {
		end, err = parseJST(rec[3])
		if err != nil {
			return Event{}, fmt.Errorf("end: %w", err)
		}
	}

	hype, err := strconv.ParseFloat(strings.TrimSpace(rec[4]), 64)
	if err != nil {
		return Event{}, fmt.Errorf("hype_weight: %w", err)
	}

	return Event{
		GameName:   strings.TrimSpace(rec[0]),
		Name:       strings.TrimSpace(rec[1]),
		Start:      start,
		End:        end,
		HypeWeight: hype,
	}, nil
}

func parseJST(s string) (time.Time, error) {
	return time.ParseInLocation(timeLayout, strings.TrimSpace(s), jst)
}

// EventsFor returns the events for a game name, earliest first. The lookup is
// case-insensitive; a miss returns nil.
func (c *Calendar) EventsFor(gameName string) []Event {
	return c.byGame[strings.ToLower(gameName)]
}

// Len returns the number of loaded events.
func (c *Calendar) Len() int {
	return c.count
}

// Save writes events to the calendar CSV, replacing the file. Used by the
// calendar sync job after a successful scrape.
func Save(path string, evs []Event) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create calendar: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"game_name", "event_name", "start_jst", "end_jst", "hype_weight"}); err != nil {
		return err
	}

	for _, ev := range evs {
		end := ""
		if !ev.End.IsZero() {
			end = ev.End.In(jst).Format(timeLayout)
		}
		rec := []string{
			ev.GameName,
			ev.Name,
			ev.Start.In(jst).Format(timeLayout),
			end,
			strconv.FormatFloat(ev.HypeWeight, 'f', -1, 64),
		}
		if err := w.Write(rec); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
