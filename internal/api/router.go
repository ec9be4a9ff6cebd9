package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/gameradar/radar/pkg/logger"

	"github.com/gameradar/radar/internal/contracts"
	"github.com/gameradar/radar/internal/pipeline"
	"github.com/gameradar/radar/internal/scheduler"
)

// NewRouter wires the status endpoints.
func NewRouter(sched *scheduler.Scheduler, pipe *pipeline.Pipeline, log *logger.Logger) http.Handler {
	h := &handlers{sched: sched, pipe: pipe}

	r := mux.NewRouter()
	r.HandleFunc("/health", h.health).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/jobs", h.jobs).Methods("GET")
	api.HandleFunc("/jobs/{name}/history", h.jobHistory).Methods("GET")
	api.HandleFunc("/scan/latest", h.latestScan).Methods("GET")

	r.Use(loggingMiddleware(log))
	r.Use(recoveryMiddleware(log))

	return r
}

type handlers struct {
	sched *scheduler.Scheduler
	pipe  *pipeline.Pipeline
}

func (h *handlers) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "ok",
		"service": "radar",
	})
}

func (h *handlers) jobs(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.sched.Stats())
}

func (h *handlers) jobHistory(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]

	history, err := h.sched.History(name)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}

	limit := 20
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	writeJSON(w, http.StatusOK, history.Latest(limit))
}

func (h *handlers) latestScan(w http.ResponseWriter, r *http.Request) {
	if raw := r.URL.Query().Get("horizon"); raw != "" {
		horizon, err := contracts.ParseHorizon(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}
		digest := h.pipe.Latest(horizon)
		if digest == nil {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "no scan completed yet for " + raw})
			return
		}
		writeJSON(w, http.StatusOK, digest)
		return
	}

	latest := h.pipe.LatestAll()
	if len(latest) == 0 {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no scan completed yet"})
		return
	}
	writeJSON(w, http.StatusOK, latest)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func loggingMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			log.WithFields(map[string]interface{}{
				"method":   r.Method,
				"path":     r.URL.Path,
				"duration": time.Since(start).String(),
			}).Debug("http request")
		})
	}
}

func recoveryMiddleware(log *logger.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					log.WithField("panic", rec).Error("handler panic")
					writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
