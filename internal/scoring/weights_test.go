package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gameradar/radar/internal/contracts"
	"github.com/gameradar/radar/internal/profile"
)

func TestNormalizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"steam_ccu_score", "steam_ccu"},
		{"steam_ccu", "steam_ccu"},
		{"Trends_Spike_Score", "trends_spike"},
		{"competitor_penalty", "competitor_penalty"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeKey(tt.in), tt.in)
	}
}

func TestWeightTable_DefaultsToOne(t *testing.T) {
	w := WeightTable{"steam_ccu": 2.0}

	assert.Equal(t, 2.0, w.Multiplier("steam_ccu_score"))
	assert.Equal(t, 2.0, w.Multiplier("steam_ccu"))
	// an unlisted key counts at face value, never zero
	assert.Equal(t, 1.0, w.Multiplier("social_buzz_score"))
}

func TestResolveWeights(t *testing.T) {
	cfg := &profile.Config{
		Weights: map[string]map[string]float64{
			"3d":  {"steam_ccu_score": 0.5, "Upcoming_Event": 3.0},
			"30d": {"steam_ccu": 2.0},
		},
	}

	w3 := ResolveWeights(cfg, contracts.Horizon3D)
	assert.Equal(t, 0.5, w3.Multiplier("steam_ccu_score"))
	assert.Equal(t, 3.0, w3.Multiplier("upcoming_event_score"))

	w30 := ResolveWeights(cfg, contracts.Horizon30D)
	assert.Equal(t, 2.0, w30.Multiplier("steam_ccu_score"))

	// horizon with no table: everything weighs 1
	w7 := ResolveWeights(cfg, contracts.Horizon7D)
	assert.Equal(t, 1.0, w7.Multiplier("steam_ccu_score"))
}
