package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"sps-user-service/internal/config"
)

// Server wraps the HTTP server serving the JSON API.
type Server struct {
	log  *zap.Logger
	http *http.Server
}

// New creates the API server around a configured gin engine.
func New(cfg *config.Config, engine *gin.Engine, log *zap.Logger) *Server {
	return &Server{
		log: log,
		http: &http.Server{
			Addr:              ":" + cfg.App.HTTPPort,
			Handler:           engine,
			ReadHeaderTimeout: 2 * time.Second,
			ReadTimeout:       10 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       120 * time.Second,
		},
	}
}

// Start runs the server until Shutdown is called. A normal shutdown is
// not reported as an error.
func (s *Server) Start() error {
	s.log.Info("HTTP server running", zap.String("address", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
