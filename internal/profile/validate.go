package profile

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gameradar/radar/internal/contracts"
)

// ValidationError reports a profile constraint violation. The run aborts.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

var weekdays = map[string]bool{
	"mon": true, "tue": true, "wed": true, "thu": true,
	"fri": true, "sat": true, "sun": true,
}

var slotRe = regexp.MustCompile(`^(\d{1,2})-(\d{1,2})$`)

// Validate checks all required profile constraints.
func Validate(cfg *Config) error {
	if cfg.Meta.ProfileID == "" {
		return ValidationError{"meta.profile_id", "required"}
	}

	if len(cfg.Signals.Enabled) == 0 {
		return ValidationError{"signals.enabled", "at least one signal required"}
	}
	seen := map[string]bool{}
	for _, name := range cfg.Signals.Enabled {
		if seen[name] {
			return ValidationError{"signals.enabled", fmt.Sprintf("duplicate signal %q", name)}
		}
		seen[name] = true
	}

	if cfg.Channel.AvgViewers < 0 {
		return ValidationError{"channel.avg_viewers", "must not be negative"}
	}

	// Horizon tables must use known horizon tokens; multipliers must not be
	// negative (a signal is muted with 0, inverted never).
	for horizon, table := range cfg.Weights {
		if _, err := contracts.ParseHorizon(horizon); err != nil {
			return ValidationError{"weights", err.Error()}
		}
		for key, mult := range table {
			if mult < 0 {
				return ValidationError{
					fmt.Sprintf("weights.%s.%s", horizon, key),
					"multiplier must not be negative",
				}
			}
		}
	}

	for field, rule := range map[string]PenaltyRule{
		"penalties.competitor": cfg.Penalties.Competitor,
		"penalties.top_share":  cfg.Penalties.TopShare,
		"penalties.lang_ratio": cfg.Penalties.LangRatio,
	} {
		if rule.Threshold < 0 {
			return ValidationError{field + ".threshold", "must not be negative"}
		}
		if rule.Weight < 0 {
			return ValidationError{field + ".weight", "must not be negative"}
		}
	}

	if cfg.Notify.MaxGames < 0 {
		return ValidationError{"notify.max_games", "must not be negative"}
	}

	for day, slots := range cfg.StreamSlots {
		if !weekdays[strings.ToLower(day)] {
			return ValidationError{"stream_slots", fmt.Sprintf("unknown weekday %q", day)}
		}
		for _, slot := range slots {
			if err := validateSlot(slot); err != nil {
				return ValidationError{fmt.Sprintf("stream_slots.%s", day), err.Error()}
			}
		}
	}

	return nil
}

// validateSlot checks a "start-end" hour range.
func validateSlot(slot string) error {
	m := slotRe.FindStringSubmatch(slot)
	if m == nil {
		return fmt.Errorf("slot %q must be \"start-end\" hours", slot)
	}

	start, _ := strconv.Atoi(m[1])
	end, _ := strconv.Atoi(m[2])

	if start >= end {
		return fmt.Errorf("slot %q: start must be before end", slot)
	}
	if end > 29 {
		// Past-midnight slots are written as 24+ hours, e.g. "24-26".
		return fmt.Errorf("slot %q: end hour out of range", slot)
	}

	return nil
}
