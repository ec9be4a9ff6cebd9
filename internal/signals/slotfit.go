package signals

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gameradar/radar/internal/contracts"
)

var jst = time.FixedZone("JST", 9*60*60)

// Events starting up to this long before a slot still fit it: the stream can
// pick the event up as it ramps.
const slotLeadTime = 3 * time.Hour

// SlotFit checks whether a game's calendar event lines up with the
// operator's planned streaming slots over the next day. An event starting
// inside (or just before) a slot is a perfect fit; an event already running
// during a slot is a partial one.
type SlotFit struct{}

func (SlotFit) Name() string { return "slot_fit" }

func (SlotFit) Keys() []string { return []string{"slot_fit_score"} }

func (SlotFit) Evaluate(_ context.Context, game *contracts.Game, sc *Context) (contracts.Result, error) {
	weight := sc.Profile.Scores.SlotFit
	if weight <= 0 || len(sc.Profile.StreamSlots) == 0 {
		return contracts.Result{}, nil
	}

	evs := sc.Calendar.EventsFor(game.Name)
	if len(evs) == 0 {
		return contracts.Result{}, nil
	}

	now := sc.Clock().In(jst)
	slots := upcomingSlots(sc.Profile.StreamSlots, now)
	if len(slots) == 0 {
		return contracts.Result{}, nil
	}

	var fit float64
	for _, ev := range evs {
		for _, slot := range slots {
			switch {
			case !ev.Start.Before(slot.start.Add(-slotLeadTime)) && !ev.Start.After(slot.end):
				fit = 1.0
			case fit < 0.7 && !now.Before(slot.start) && !now.After(slot.end) && ev.Active(now):
				fit = 0.7
			}
		}
	}

	if fit == 0 {
		return contracts.Result{}, nil
	}

	return contracts.Result{
		Scores: []contracts.Score{contracts.Contributor("slot_fit_score", fit * weight)},
		Tags:   []string{"slot fit"},
	}, nil
}

type timeSlot struct {
	start time.Time
	end   time.Time
}

// upcomingSlots resolves today's stream slots plus tomorrow's early-morning
// ones (start before noon, shifted past midnight) to concrete times.
func upcomingSlots(slots map[string][]string, now time.Time) []timeSlot {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var out []timeSlot

	today := weekdayKey(now)
	for _, s := range slots[today] {
		if ts, ok := resolveSlot(s, midnight, 0); ok {
			out = append(out, ts)
		}
	}

	tomorrow := weekdayKey(now.AddDate(0, 0, 1))
	for _, s := range slots[tomorrow] {
		start, _, ok := splitSlot(s)
		if !ok || start >= 12 {
			continue
		}
		if ts, ok := resolveSlot(s, midnight, 24); ok {
			out = append(out, ts)
		}
	}

	return out
}

func weekdayKey(t time.Time) string {
	return strings.ToLower(t.Weekday().String()[:3])
}

func splitSlot(s string) (start, end int, ok bool) {
	if _, err := fmt.Sscanf(s, "%d-%d", &start, &end); err != nil {
		return 0, 0, false
	}
	return start, end, true
}

func resolveSlot(s string, midnight time.Time, shift int) (timeSlot, bool) {
	start, end, ok := splitSlot(s)
	if !ok {
		return timeSlot{}, false
	}
	return timeSlot{
		start: midnight.Add(time.Duration(start+shift) * time.Hour),
		end:   midnight.Add(time.Duration(end+shift) * time.Hour),
	}, true
}
