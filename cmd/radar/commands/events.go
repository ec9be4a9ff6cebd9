package commands

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/gameradar/radar/pkg/httputil"

	"github.com/gameradar/radar/internal/events"
	"github.com/gameradar/radar/internal/external/esportscal"
	"github.com/gameradar/radar/internal/scheduler/jobs"
)

var eventsCmd = &cobra.Command{
	Use:   "events",
	Short: "Manage the event calendar",
}

var eventsSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Scrape the configured calendar and rewrite the local events file",
	RunE:  runEventsSync,
}

var eventsListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the local event calendar",
	RunE:  runEventsList,
}

func init() {
	eventsCmd.AddCommand(eventsSyncCmd)
	eventsCmd.AddCommand(eventsListCmd)
	rootCmd.AddCommand(eventsCmd)
}

func runEventsSync(cmd *cobra.Command, _ []string) error {
	cfg, log, _, rdb, err := bootstrap()
	if err != nil {
		return err
	}
	defer rdb.Close()

	scraper := esportscal.NewScraper(cfg, httputil.New(log), log)
	if !scraper.Enabled() {
		return fmt.Errorf("RADAR_CALENDAR_URL is not set")
	}

	job := jobs.NewCalendarSyncJob(scraper, cfg.DataDir, log)
	if err := job.Run(context.Background()); err != nil {
		return err
	}

	fmt.Println("Calendar synced.")
	return nil
}

func runEventsList(cmd *cobra.Command, _ []string) error {
	cfg, _, _, rdb, err := bootstrap()
	if err != nil {
		return err
	}
	defer rdb.Close()

	cal, err := events.Load(filepath.Join(cfg.DataDir, events.FileName))
	if err != nil {
		return err
	}

	fmt.Printf("%d event(s) on file.\n", cal.Len())
	return nil
}
