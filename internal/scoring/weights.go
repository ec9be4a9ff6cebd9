package scoring

import (
	"strings"

	"github.com/gameradar/radar/internal/contracts"
	"github.com/gameradar/radar/internal/profile"
)

// NormalizeKey maps a score key to its weight-table form: the "_score"
// suffix is stripped and the rest lowercased, so "steam_ccu_score" and
// "Steam_CCU" address the same multiplier.
func NormalizeKey(key string) string {
	key = strings.ToLower(key)
	return strings.TrimSuffix(key, "_score")
}

// WeightTable maps normalized score keys to horizon multipliers. Keys absent
// from the table weigh 1, never 0: an unweighted component still counts at
// face value.
type WeightTable map[string]float64

// Multiplier returns the weight for a score key, defaulting to 1.
func (w WeightTable) Multiplier(key string) float64 {
	if m, ok := w[NormalizeKey(key)]; ok {
		return m
	}
	return 1
}

// ResolveWeights builds the weight table for one horizon from the profile.
// Profile keys are normalized once here so lookups during the merge are a
// plain map hit.
func ResolveWeights(cfg *profile.Config, horizon contracts.Horizon) WeightTable {
	raw := cfg.Weights[horizon.String()]

	table := make(WeightTable, len(raw))
	for key, mult := range raw {
		table[NormalizeKey(key)] = mult
	}
	return table
}
