package commands

import (
	"github.com/spf13/cobra"

	"github.com/gameradar/radar/pkg/config"
	"github.com/gameradar/radar/pkg/logger"
	"github.com/gameradar/radar/pkg/redis"

	"github.com/gameradar/radar/internal/pipeline"
)

var rootCmd = &cobra.Command{
	Use:   "radar",
	Short: "Game market radar for stream planning",
	Long: `Radar scans the current live-streaming market, scores trending games
with a set of independent signals (Steam player counts, search spikes,
social buzz, event calendars, competitive density), and posts a ranked
digest to Discord.

Examples:
  radar scan --horizon 7d
  radar scheduler start
  radar events sync
  radar notify-test --horizon 3d`,
	SilenceUsage: true,
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

// bootstrap loads configuration and builds the shared pipeline stack.
func bootstrap() (*config.Config, *logger.Logger, *pipeline.Pipeline, *redis.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, nil, nil, err
	}

	log := logger.New(cfg)

	rdb, err := redis.New(cfg)
	if err != nil {
		log.WithError(err).Warn("redis unavailable, continuing without shared rate limits")
		rdb, _ = redis.New(&config.Config{})
	}

	return cfg, log, pipeline.New(cfg, rdb, log), rdb, nil
}
