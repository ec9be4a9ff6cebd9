package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gameradar/radar/pkg/config"
	"github.com/gameradar/radar/pkg/logger"
)

// Server is the scheduler daemon's status HTTP server. It is an ops surface
// only: health, job state, and the latest digest. No endpoint mutates a run.
type Server struct {
	httpServer *http.Server
	log        *logger.Logger
	port       string
}

func New(cfg *config.Config, log *logger.Logger, router http.Handler) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:         ":" + cfg.StatusPort,
			Handler:      router,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		log:  log,
		port: cfg.StatusPort,
	}
}

// Start blocks serving HTTP until Shutdown.
func (s *Server) Start() error {
	s.log.WithField("port", s.port).Info("status server starting")

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("status server: %w", err)
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info("status server shutting down")
	return s.httpServer.Shutdown(ctx)
}
