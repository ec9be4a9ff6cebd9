package signals

// Available returns every signal implementation this build ships. The
// profile's enabled list selects from it by name.
func Available() []Signal {
	return []Signal{
		SteamCCU{},
		SteamNews{},
		TrendsSpike{},
		SocialBuzz{},
		UpcomingEvent{},
		Competition{},
		MarketHealth{},
		LangRatio{},
		Drops{},
		SlotFit{},
	}
}
