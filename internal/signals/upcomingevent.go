package signals

import (
	"context"
	"fmt"

	"github.com/gameradar/radar/internal/contracts"
	"github.com/gameradar/radar/internal/events"
)

// UpcomingEvent scores games with calendar events inside the run's horizon.
// Short horizons only care about events starting today; the week horizon
// decays the hype weight as the event moves further out; the month horizon
// takes the hype weight flat. When several events qualify, the best one wins.
type UpcomingEvent struct{}

func (UpcomingEvent) Name() string { return "upcoming_event" }

func (UpcomingEvent) Keys() []string { return []string{"upcoming_event_score"} }

func (UpcomingEvent) Evaluate(ctx context.Context, game *contracts.Game, sc *Context) (contracts.Result, error) {
	evs := sc.Calendar.EventsFor(game.Name)
	if len(evs) == 0 {
		return contracts.Result{}, nil
	}

	now := sc.Clock()

	var best float64
	var bestTag string

	for _, ev := range evs {
		days := int(ev.Start.Sub(now).Hours() / 24)
		if days < 0 {
			continue
		}

		value := eventValue(sc.Horizon, ev, days)
		if value > best {
			best = value
			bestTag = eventTag(ev, days)
		}
	}

	if best <= 0 {
		return contracts.Result{}, nil
	}

	return contracts.Result{
		Scores: []contracts.Score{contracts.Contributor("upcoming_event_score", best)},
		Tags:   []string{bestTag},
	}, nil
}

func eventValue(horizon contracts.Horizon, ev events.Event, days int) float64 {
	switch horizon {
	case contracts.Horizon3D:
		if days == 0 {
			return ev.HypeWeight
		}
	case contracts.Horizon7D:
		if days <= 7 {
			// nearer events weigh more; day 0 still scores
			return ev.HypeWeight * float64(8-days) / 8
		}
	case contracts.Horizon30D:
		if days <= 30 {
			return ev.HypeWeight
		}
	}
	return 0
}

func eventTag(ev events.Event, days int) string {
	if days == 0 {
		return fmt.Sprintf("event today: %s", ev.Name)
	}
	return fmt.Sprintf("event in %dd: %s", days, ev.Name)
}
