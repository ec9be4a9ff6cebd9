package contracts

// Game is one candidate under evaluation. It is built fresh from the Twitch
// top-games listing on every run; there is no identity continuity across runs.
type Game struct {
	// Identity from the source platform. Never mutated by signals.
	TwitchID string `json:"twitch_id"`
	Name     string `json:"name"`

	// Snapshot data from the candidate listing.
	ViewerCount int `json:"viewer_count"`

	// Enrichment fields, each optional and independently resolved.
	SteamAppID   int  `json:"steam_app_id,omitempty"` // 0 = unresolved
	DropsEnabled bool `json:"drops_enabled,omitempty"`
}

// HasSteamApp reports whether enrichment resolved a Steam app id.
func (g *Game) HasSteamApp() bool {
	return g.SteamAppID > 0
}
