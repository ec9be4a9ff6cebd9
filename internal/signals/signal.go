package signals

import (
	"context"
	"time"

	"github.com/gameradar/radar/internal/contracts"
	"github.com/gameradar/radar/internal/events"
	"github.com/gameradar/radar/internal/external/steam"
	"github.com/gameradar/radar/internal/external/twitch"
	"github.com/gameradar/radar/internal/profile"
)

// Signal is one scoring strategy. Implementations may call upstream APIs and
// may block; they must treat the game and everything in Context as read-only
// and only report through the returned Result.
//
// A signal with nothing to say returns an empty Result and a nil error. An
// error (or panic) is isolated by the evaluator: it degrades this game's
// score and is recorded, nothing more.
type Signal interface {
	// Name is the registry identifier, matched against the profile's
	// enabled list.
	Name() string

	// Keys declares every score key the signal may emit. The registry
	// rejects two enabled signals declaring the same key.
	Keys() []string

	// Evaluate scores one game.
	Evaluate(ctx context.Context, game *contracts.Game, sc *Context) (contracts.Result, error)
}

// TwitchAPI is the slice of the Twitch client the signals need.
type TwitchAPI interface {
	// GetStreams lists up to first live streams for a game.
	GetStreams(ctx context.Context, gameID string, first int) ([]twitch.Stream, error)
}

// SteamAPI is the slice of the Steam client the signals need.
type SteamAPI interface {
	// PlayerCount returns the current concurrent player count for an app.
	PlayerCount(ctx context.Context, appID int) (int, error)
	// RecentNews returns the latest news items for an app.
	RecentNews(ctx context.Context, appID int, count int) ([]steam.NewsItem, error)
}

// TrendsAPI reports search interest for a term.
type TrendsAPI interface {
	// DailyInterest returns one normalized interest value (0-100) per day,
	// oldest first, covering the trailing days window.
	DailyInterest(ctx context.Context, term string, days int) ([]float64, error)
}

// SocialAPI reports recent social-media mentions of a term.
type SocialAPI interface {
	// Configured reports whether credentials are present. When false the
	// social signal opts out instead of degrading every game.
	Configured() bool
	// RecentMentionCount counts mentions since the given time, capped by the
	// upstream page size.
	RecentMentionCount(ctx context.Context, term string, since time.Time) (int, error)
}

// EventSource is the read-only event calendar.
type EventSource interface {
	// EventsFor returns the calendar entries for a game name (case-insensitive).
	EventsFor(gameName string) []events.Event
}

// Context carries the shared read-only inputs for one run. Signals pick what
// they need and ignore the rest; adding a field here never breaks a strategy.
type Context struct {
	Profile *profile.Config
	Horizon contracts.Horizon

	// Language is the operator's home stream language, e.g. "ja".
	Language string

	Twitch   TwitchAPI
	Steam    SteamAPI
	Trends   TrendsAPI
	Social   SocialAPI
	Calendar EventSource

	// Now is the run's clock. Injectable for the date-window signals.
	Now func() time.Time
}

// Clock returns the run time, defaulting to time.Now.
func (c *Context) Clock() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}
