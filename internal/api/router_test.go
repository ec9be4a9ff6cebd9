package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gameradar/radar/pkg/config"
	"github.com/gameradar/radar/pkg/logger"
	"github.com/gameradar/radar/pkg/redis"

	"github.com/gameradar/radar/internal/pipeline"
	"github.com/gameradar/radar/internal/scheduler"
)

type noopJob struct{}

func (noopJob) Name() string              { return "scan_7d" }
func (noopJob) Schedule() string          { return "0 9 * * *" }
func (noopJob) Run(context.Context) error { return nil }

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	log := logger.NewNop()

	sched := scheduler.New(log)
	require.NoError(t, sched.AddJob(noopJob{}))

	rdb, err := redis.New(&config.Config{})
	require.NoError(t, err)
	pipe := pipeline.New(&config.Config{}, rdb, log)

	return NewRouter(sched, pipe, log)
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	rec := get(t, newTestRouter(t), "/health")
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestJobs(t *testing.T) {
	rec := get(t, newTestRouter(t), "/api/jobs")
	require.Equal(t, http.StatusOK, rec.Code)

	var stats map[string]scheduler.JobStats
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stats))
	require.Contains(t, stats, "scan_7d")
	assert.Equal(t, "0 9 * * *", stats["scan_7d"].Schedule)
}

func TestJobHistory_Unknown(t *testing.T) {
	rec := get(t, newTestRouter(t), "/api/jobs/ghost/history")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestJobHistory_Empty(t *testing.T) {
	rec := get(t, newTestRouter(t), "/api/jobs/scan_7d/history")
	require.Equal(t, http.StatusOK, rec.Code)

	var results []scheduler.JobResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &results))
	assert.Empty(t, results)
}

func TestLatestScan_NoneYet(t *testing.T) {
	rec := get(t, newTestRouter(t), "/api/scan/latest")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestLatestScan_BadHorizon(t *testing.T) {
	rec := get(t, newTestRouter(t), "/api/scan/latest?horizon=90d")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
