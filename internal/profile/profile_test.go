package profile

import (
	"strings"
	"testing"
)

const validYAML = `
meta:
  profile_id: jp_variety_v1
channel:
  avg_viewers: 30
signals:
  enabled: [steam_ccu, upcoming_event, competition]
scores:
  steam_ccu: 8
  steam_ccu_threshold: 10000
  blue_ocean_bonus: 12
penalties:
  competitor:
    threshold: 20
    weight: 10
weights:
  3d:
    upcoming_event: 2.0
    steam_ccu: 1.0
  7d:
    upcoming_event: 1.5
  30d: {}
notify:
  min_score: 10
  max_games: 5
stream_slots:
  mon: ["21-24"]
  sat: ["13-18", "21-26"]
`

func TestParseValid(t *testing.T) {
	cfg, err := Parse([]byte(validYAML))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if cfg.Meta.ProfileID != "jp_variety_v1" {
		t.Errorf("profile_id = %q", cfg.Meta.ProfileID)
	}
	if cfg.Channel.AvgViewers != 30 {
		t.Errorf("avg_viewers = %v", cfg.Channel.AvgViewers)
	}
	if !cfg.SignalEnabled("steam_ccu") {
		t.Error("steam_ccu should be enabled")
	}
	if cfg.SignalEnabled("drops") {
		t.Error("drops should not be enabled")
	}
	if cfg.Weights["3d"]["upcoming_event"] != 2.0 {
		t.Errorf("3d upcoming_event multiplier = %v", cfg.Weights["3d"]["upcoming_event"])
	}
	if cfg.Notify.MaxGames != 5 {
		t.Errorf("max_games = %d", cfg.Notify.MaxGames)
	}
	if !cfg.Penalties.Competitor.Enabled() {
		t.Error("competitor penalty should be enabled")
	}
	if cfg.Penalties.TopShare.Enabled() {
		t.Error("top_share penalty should be disabled when absent")
	}
}

func TestParseRejectsUnknownField(t *testing.T) {
	yaml := strings.Replace(validYAML, "min_score:", "min_scoer:", 1)

	if _, err := Parse([]byte(yaml)); err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(string) string
	}{
		{
			name:   "missing profile id",
			mutate: func(s string) string { return strings.Replace(s, "jp_variety_v1", `""`, 1) },
		},
		{
			name:   "unknown horizon",
			mutate: func(s string) string { return strings.Replace(s, "30d: {}", "90d: {}", 1) },
		},
		{
			name:   "negative multiplier",
			mutate: func(s string) string { return strings.Replace(s, "upcoming_event: 2.0", "upcoming_event: -1.0", 1) },
		},
		{
			name:   "duplicate enabled signal",
			mutate: func(s string) string { return strings.Replace(s, "steam_ccu, upcoming_event", "steam_ccu, steam_ccu", 1) },
		},
		{
			name:   "unknown weekday",
			mutate: func(s string) string { return strings.Replace(s, "sat:", "caturday:", 1) },
		},
		{
			name:   "inverted slot",
			mutate: func(s string) string { return strings.Replace(s, `"21-24"`, `"24-21"`, 1) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse([]byte(tt.mutate(validYAML))); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestValidateSlot(t *testing.T) {
	tests := []struct {
		slot    string
		wantErr bool
	}{
		{"21-24", false},
		{"0-6", false},
		{"24-26", false}, // past-midnight notation
		{"9-9", true},
		{"21-31", true},
		{"nine-to-five", true},
	}

	for _, tt := range tests {
		err := validateSlot(tt.slot)
		if (err != nil) != tt.wantErr {
			t.Errorf("validateSlot(%q) error = %v, wantErr %v", tt.slot, err, tt.wantErr)
		}
	}
}
