package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/gameradar/radar/pkg/httputil"

	"github.com/gameradar/radar/internal/api"
	"github.com/gameradar/radar/internal/external/esportscal"
	"github.com/gameradar/radar/internal/scheduler"
	"github.com/gameradar/radar/internal/scheduler/jobs"
)

var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "Run the scan scheduler daemon",
	Long: `Starts the long-running daemon: per-horizon scan jobs on their cron
schedules, the daily Steam app-list refresh, the esports calendar sync,
and a small status HTTP API.

Registered jobs:
  scan_3d          - hourly
  scan_7d          - daily 09:00
  scan_30d         - mondays 09:00
  applist_refresh  - daily 05:30
  calendar_sync    - every 6 hours`,
}

var schedulerStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the scheduler daemon",
	RunE:  runSchedulerDaemon,
}

var schedulerListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the jobs the daemon would register",
	RunE:  listSchedulerJobs,
}

func init() {
	schedulerCmd.AddCommand(schedulerStartCmd)
	schedulerCmd.AddCommand(schedulerListCmd)
	rootCmd.AddCommand(schedulerCmd)
}

func buildScheduler() (*scheduler.Scheduler, *api.Server, func(), error) {
	cfg, log, pipe, rdb, err := bootstrap()
	if err != nil {
		return nil, nil, nil, err
	}

	sched := scheduler.New(log)

	for _, job := range jobs.DefaultScanJobs(pipe) {
		if err := sched.AddJob(job); err != nil {
			return nil, nil, nil, err
		}
	}

	if err := sched.AddJob(jobs.NewAppListRefreshJob(pipe.AppIndex())); err != nil {
		return nil, nil, nil, err
	}

	scraper := esportscal.NewScraper(cfg, httputil.New(log), log)
	if err := sched.AddJob(jobs.NewCalendarSyncJob(scraper, cfg.DataDir, log)); err != nil {
		return nil, nil, nil, err
	}

	server := api.New(cfg, log, api.NewRouter(sched, pipe, log))
	cleanup := func() { rdb.Close() }

	return sched, server, cleanup, nil
}

func runSchedulerDaemon(cmd *cobra.Command, _ []string) error {
	sched, server, cleanup, err := buildScheduler()
	if err != nil {
		return err
	}
	defer cleanup()

	sched.Start()

	go func() {
		if err := server.Start(); err != nil {
			fmt.Fprintf(os.Stderr, "status server error: %v\n", err)
		}
	}()

	fmt.Println("Scheduler started. Registered jobs:")
	for _, name := range sched.JobNames() {
		fmt.Printf("  - %s\n", name)
	}
	fmt.Println("Press Ctrl+C to stop.")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_ = server.Shutdown(ctx)
	sched.Stop()
	return nil
}

func listSchedulerJobs(cmd *cobra.Command, _ []string) error {
	sched, _, cleanup, err := buildScheduler()
	if err != nil {
		return err
	}
	defer cleanup()

	for name, stats := range sched.Stats() {
		fmt.Printf("%-18s %s\n", name, stats.Schedule)
	}
	return nil
}
