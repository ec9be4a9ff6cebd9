package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all process configuration for the radar. Every environment
// variable is read here and nowhere else.
type Config struct {
	Env string // development, staging, production

	// Upstream APIs
	Twitch TwitchConfig
	Steam  SteamConfig
	Social SocialConfig
	Trends TrendsConfig

	// Notification
	Discord DiscordConfig

	// Optional Redis (cross-process rate limiting and response caching)
	Redis RedisConfig

	// Local data files (app index, event calendar)
	DataDir string

	// Optional esports calendar page to scrape. Empty disables the sync job.
	CalendarURL string

	// Run profile YAML (weights, penalties, notification rules)
	ProfilePath string

	// Batch evaluation
	Workers       int           // concurrent game evaluations
	SignalTimeout time.Duration // per-signal upstream deadline

	// Ops surface of the scheduler daemon
	StatusPort string

	// Logging
	LogLevel  string
	LogFormat string
}

// TwitchConfig holds Twitch Helix API credentials and listing parameters.
type TwitchConfig struct {
	ClientID     string
	ClientSecret string
	BaseURL      string
	AuthURL      string
	TopGames     int    // candidate listing size
	LanguageHint string // home language for the lang_ratio signal, e.g. "ja"
}

// SteamConfig holds Steam Web API configuration.
type SteamConfig struct {
	APIKey  string
	BaseURL string
}

// SocialConfig holds the social mention-count API configuration.
type SocialConfig struct {
	BearerToken string
	BaseURL     string
}

// TrendsConfig holds the search-interest API configuration.
type TrendsConfig struct {
	BaseURL string
	Geo     string // two-letter region for interest lookups
}

// DiscordConfig holds one webhook URL per horizon.
type DiscordConfig struct {
	Webhook3D  string
	Webhook7D  string
	Webhook30D string
}

// RedisConfig holds Redis configuration. Disabled Redis degrades the rate
// limiter and cache to no-ops.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
	Enabled  bool
}

// Load reads configuration from environment variables, with a .env fallback.
// This is the only function that calls os.Getenv.
func Load() (*Config, error) {
	loadEnvFile()

	cfg := &Config{
		Env: getEnv("ENV", "development"),

		Twitch: TwitchConfig{
			ClientID:     getEnv("TWITCH_CLIENT_ID", ""),
			ClientSecret: getEnv("TWITCH_CLIENT_SECRET", ""),
			BaseURL:      getEnv("TWITCH_BASE_URL", "https://api.twitch.tv/helix"),
			AuthURL:      getEnv("TWITCH_AUTH_URL", "https://id.twitch.tv/oauth2/token"),
			TopGames:     getEnvAsInt("TWITCH_TOP_GAMES", 40),
			LanguageHint: getEnv("RADAR_LANGUAGE", "ja"),
		},

		Steam: SteamConfig{
			APIKey:  getEnv("STEAM_API_KEY", ""),
			BaseURL: getEnv("STEAM_BASE_URL", "https://api.steampowered.com"),
		},

		Social: SocialConfig{
			BearerToken: getEnv("SOCIAL_BEARER_TOKEN", ""),
			BaseURL:     getEnv("SOCIAL_BASE_URL", "https://api.x.com/2"),
		},

		Trends: TrendsConfig{
			BaseURL: getEnv("TRENDS_BASE_URL", "https://trends.google.com/trends/api"),
			Geo:     getEnv("TRENDS_GEO", "JP"),
		},

		Discord: DiscordConfig{
			Webhook3D:  getEnv("DISCORD_WEBHOOK_URL_3D", ""),
			Webhook7D:  getEnv("DISCORD_WEBHOOK_URL_7D", ""),
			Webhook30D: getEnv("DISCORD_WEBHOOK_URL_30D", ""),
		},

		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			Enabled:  getEnvAsBool("REDIS_ENABLED", false),
		},

		DataDir:     getEnv("RADAR_DATA_DIR", "data"),
		CalendarURL: getEnv("RADAR_CALENDAR_URL", ""),
		ProfilePath: getEnv("RADAR_PROFILE", "config/radar.yaml"),

		Workers:       getEnvAsInt("RADAR_WORKERS", 8),
		SignalTimeout: getEnvAsDuration("RADAR_SIGNAL_TIMEOUT", "15s"),

		StatusPort: getEnv("STATUS_PORT", "8099"),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// validate checks required values and closed sets.
func (c *Config) validate() error {
	if c.Env != "development" && c.Env != "staging" && c.Env != "production" {
		return fmt.Errorf("ENV must be one of: development, staging, production")
	}

	if c.Twitch.ClientID == "" || c.Twitch.ClientSecret == "" {
		return fmt.Errorf("TWITCH_CLIENT_ID and TWITCH_CLIENT_SECRET are required")
	}

	if c.Workers < 1 {
		return fmt.Errorf("RADAR_WORKERS must be at least 1")
	}

	if c.SignalTimeout <= 0 {
		return fmt.Errorf("RADAR_SIGNAL_TIMEOUT must be positive")
	}

	return nil
}

// WebhookFor returns the Discord webhook URL for a horizon token, or "".
func (c *Config) WebhookFor(horizon string) string {
	switch horizon {
	case "3d":
		return c.Discord.Webhook3D
	case "7d":
		return c.Discord.Webhook7D
	case "30d":
		return c.Discord.Webhook30D
	}
	return ""
}

// loadEnvFile tries to load .env from a few likely locations.
func loadEnvFile() {
	paths := []string{
		".env",
	}

	if exe, err := os.Executable(); err == nil {
		exeDir := filepath.Dir(exe)
		paths = append(paths,
			filepath.Join(exeDir, ".env"),
			filepath.Join(exeDir, "..", ".env"),
		)
	}

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			return
		}
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}

	return value
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		valueStr = defaultValue
	}

	duration, err := time.ParseDuration(valueStr)
	if err != nil {
		duration, _ = time.ParseDuration(defaultValue)
	}

	return duration
}
