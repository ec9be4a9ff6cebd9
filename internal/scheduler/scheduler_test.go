package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameradar/radar/pkg/logger"
)

type testJob struct {
	name     string
	schedule string
	runs     atomic.Int32
	err      error
}

func (j *testJob) Name() string     { return j.name }
func (j *testJob) Schedule() string { return j.schedule }

func (j *testJob) Run(context.Context) error {
	j.runs.Add(1)
	return j.err
}

func newTestScheduler() *Scheduler {
	s := New(logger.NewNop())
	s.retryDelay = time.Millisecond
	return s
}

func TestAddJob_Duplicate(t *testing.T) {
	s := newTestScheduler()

	require.NoError(t, s.AddJob(&testJob{name: "a", schedule: "@hourly"}))
	err := s.AddJob(&testJob{name: "a", schedule: "@daily"})
	assert.ErrorContains(t, err, "already registered")
}

func TestAddJob_BadSchedule(t *testing.T) {
	s := newTestScheduler()

	err := s.AddJob(&testJob{name: "a", schedule: "not a cron expr"})
	assert.Error(t, err)
}

func TestRunJob_RecordsHistory(t *testing.T) {
	s := newTestScheduler()
	job := &testJob{name: "ok", schedule: "@hourly"}
	require.NoError(t, s.AddJob(job))

	s.runJob(job)

	h, err := s.History("ok")
	require.NoError(t, err)
	require.Len(t, h.Results, 1)
	assert.True(t, h.Results[0].Success)
	assert.Equal(t, 1.0, h.SuccessRate())
	assert.Equal(t, int32(1), job.runs.Load())
}

func TestRunJob_RetriesThenFails(t *testing.T) {
	s := newTestScheduler()
	job := &testJob{name: "flaky", schedule: "@hourly", err: errors.New("boom")}
	require.NoError(t, s.AddJob(job))

	s.runJob(job)

	h, err := s.History("flaky")
	require.NoError(t, err)
	require.Len(t, h.Results, 1)
	assert.False(t, h.Results[0].Success)
	assert.Contains(t, h.Results[0].Error, "boom")
	// initial attempt plus maxRetries
	assert.Equal(t, int32(3), job.runs.Load())
}

func TestRunJob_Unknown(t *testing.T) {
	s := newTestScheduler()
	assert.ErrorContains(t, s.RunJob("ghost"), "not found")
}

func TestJobNamesSorted(t *testing.T) {
	s := newTestScheduler()
	require.NoError(t, s.AddJob(&testJob{name: "zeta", schedule: "@daily"}))
	require.NoError(t, s.AddJob(&testJob{name: "alpha", schedule: "@daily"}))

	assert.Equal(t, []string{"alpha", "zeta"}, s.JobNames())
}

func TestStats(t *testing.T) {
	s := newTestScheduler()
	job := &testJob{name: "scan_7d", schedule: "0 9 * * *"}
	require.NoError(t, s.AddJob(job))

	s.runJob(job)

	stats := s.Stats()
	st, ok := stats["scan_7d"]
	require.True(t, ok)
	assert.Equal(t, "0 9 * * *", st.Schedule)
	assert.Equal(t, 1, st.Runs)
	require.NotNil(t, st.LastRun)
	assert.True(t, st.LastRun.Success)
}

func TestJobHistoryTrimsToLimit(t *testing.T) {
	h := &JobHistory{}
	for i := 0; i < historyLimit+20; i++ {
		h.AddResult(JobResult{Success: true})
	}
	assert.Len(t, h.Results, historyLimit)
}
