package profile

// Config is the run profile: everything an operator tunes between runs
// without touching code. Loaded from YAML once per process, shared read-only.
type Config struct {
	Meta    Meta           `yaml:"meta" json:"meta"`
	Channel ChannelProfile `yaml:"channel" json:"channel"`
	Signals SignalsConfig  `yaml:"signals" json:"signals"`
	Scores  ScoreWeights   `yaml:"scores" json:"scores"`

	// Penalties are {threshold, weight} rules; a triggered rule contributes
	// a negative score.
	Penalties Penalties `yaml:"penalties" json:"penalties"`

	// Weights is the per-horizon multiplier table: horizon -> normalized
	// score key -> multiplier. A key missing from the active horizon's table
	// multiplies by 1, never 0.
	Weights map[string]map[string]float64 `yaml:"weights" json:"weights"`

	Notify NotifyConfig `yaml:"notify" json:"notify"`

	// StreamSlots maps lowercase weekday abbreviations ("mon".."sun") to
	// "start-end" hour ranges in JST, e.g. "21-24".
	StreamSlots map[string][]string `yaml:"stream_slots" json:"stream_slots"`
}

// Meta identifies the profile.
type Meta struct {
	ProfileID string `yaml:"profile_id" json:"profile_id"`
}

// ChannelProfile describes the operator's own channel; the competition signal
// sizes its competitor band relative to it.
type ChannelProfile struct {
	AvgViewers float64 `yaml:"avg_viewers" json:"avg_viewers"`
}

// SignalsConfig selects which strategies run.
type SignalsConfig struct {
	Enabled []string `yaml:"enabled" json:"enabled"`
}

// ScoreWeights holds the base magnitude each signal emits when it fires.
// Horizon multipliers are applied on top of these at aggregation time.
type ScoreWeights struct {
	SteamCCU          float64 `yaml:"steam_ccu" json:"steam_ccu"`
	SteamCCUThreshold int     `yaml:"steam_ccu_threshold" json:"steam_ccu_threshold"`
	SteamNews         float64 `yaml:"steam_news" json:"steam_news"`
	TrendsSpike       float64 `yaml:"trends_spike" json:"trends_spike"`
	SocialBuzz        float64 `yaml:"social_buzz" json:"social_buzz"`
	BlueOceanBonus    float64 `yaml:"blue_ocean_bonus" json:"blue_ocean_bonus"`
	ViewersPerCh      float64 `yaml:"viewers_per_ch" json:"viewers_per_ch"`
	Drops             float64 `yaml:"drops" json:"drops"`
	SlotFit           float64 `yaml:"slot_fit" json:"slot_fit"`
}

// PenaltyRule is one {threshold, weight} pair.
type PenaltyRule struct {
	Threshold float64 `yaml:"threshold" json:"threshold"`
	Weight    float64 `yaml:"weight" json:"weight"`
}

// Enabled reports whether the rule is configured at all.
func (r PenaltyRule) Enabled() bool {
	return r.Weight > 0
}

// Penalties holds the penalty rules by signal.
type Penalties struct {
	// Competitor: more than Threshold streams in the competitor band.
	Competitor PenaltyRule `yaml:"competitor" json:"competitor"`
	// TopShare: the #1 streamer holds more than Threshold of total viewers.
	TopShare PenaltyRule `yaml:"top_share" json:"top_share"`
	// LangRatio: home-language stream share below Threshold.
	LangRatio PenaltyRule `yaml:"lang_ratio" json:"lang_ratio"`
}

// NotifyConfig bounds the digest.
type NotifyConfig struct {
	MinScore float64 `yaml:"min_score" json:"min_score"`
	MaxGames int     `yaml:"max_games" json:"max_games"`
}

// SignalEnabled reports whether a signal name appears in the enabled list.
func (c *Config) SignalEnabled(name string) bool {
	for _, s := range c.Signals.Enabled {
		if s == name {
			return true
		}
	}
	return false
}
