package jobs

import (
	"context"
	"fmt"

	"github.com/gameradar/radar/internal/contracts"
	"github.com/gameradar/radar/internal/pipeline"
)

// ScanJob runs one full scan for a fixed horizon. One instance is registered
// per horizon, each with its own cadence: the near horizon scans hourly so
// same-day events surface fast, the longer ones once a day or week.
type ScanJob struct {
	horizon  contracts.Horizon
	schedule string
	pipeline *pipeline.Pipeline
}

func NewScanJob(horizon contracts.Horizon, schedule string, p *pipeline.Pipeline) *ScanJob {
	return &ScanJob{horizon: horizon, schedule: schedule, pipeline: p}
}

func (j *ScanJob) Name() string     { return fmt.Sprintf("scan_%s", j.horizon) }
func (j *ScanJob) Schedule() string { return j.schedule }

func (j *ScanJob) Run(ctx context.Context) error {
	_, err := j.pipeline.Run(ctx, j.horizon)
	return err
}

// DefaultScanJobs returns the standard per-horizon scan set.
func DefaultScanJobs(p *pipeline.Pipeline) []*ScanJob {
	return []*ScanJob{
		NewScanJob(contracts.Horizon3D, "0 * * * *", p),  // hourly
		NewScanJob(contracts.Horizon7D, "0 9 * * *", p),  // daily, 09:00
		NewScanJob(contracts.Horizon30D, "0 9 * * 1", p), // mondays, 09:00
	}
}
