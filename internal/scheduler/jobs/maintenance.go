package jobs

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/gameradar/radar/pkg/logger"

	"github.com/gameradar/radar/internal/enrich"
	"github.com/gameradar/radar/internal/events"
	"github.com/gameradar/radar/internal/external/esportscal"
)

// AppListRefreshJob keeps the Steam app index warm so scan runs rarely pay
// the multi-megabyte catalog download themselves.
type AppListRefreshJob struct {
	index *enrich.AppIndex
}

func NewAppListRefreshJob(index *enrich.AppIndex) *AppListRefreshJob {
	return &AppListRefreshJob{index: index}
}

func (j *AppListRefreshJob) Name() string     { return "applist_refresh" }
func (j *AppListRefreshJob) Schedule() string { return "30 5 * * *" }

func (j *AppListRefreshJob) Run(ctx context.Context) error {
	return j.index.Refresh(ctx)
}

// CalendarSyncJob scrapes the configured esports calendar and rewrites the
// local events file. Without a configured URL the job reports success and
// does nothing; the operator may maintain the CSV by hand instead.
type CalendarSyncJob struct {
	scraper *esportscal.Scraper
	dataDir string
	log     *logger.Logger
}

func NewCalendarSyncJob(scraper *esportscal.Scraper, dataDir string, log *logger.Logger) *CalendarSyncJob {
	return &CalendarSyncJob{
		scraper: scraper,
		dataDir: dataDir,
		log:     log.WithField("job", "calendar_sync"),
	}
}

func (j *CalendarSyncJob) Name() string     { return "calendar_sync" }
func (j *CalendarSyncJob) Schedule() string { return "15 */6 * * *" }

func (j *CalendarSyncJob) Run(ctx context.Context) error {
	if !j.scraper.Enabled() {
		j.log.Debug("no calendar url configured, skipping sync")
		return nil
	}

	evs, err := j.scraper.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("calendar sync: %w", err)
	}

	path := filepath.Join(j.dataDir, events.FileName)
	if err := events.Save(path, evs); err != nil {
		return fmt.Errorf("calendar sync: %w", err)
	}

	j.log.WithField("events", len(evs)).Info("calendar synced")
	return nil
}
