// Package api serves the latest prediction snapshot to the dashboard over HTTP and WebSocket.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/yourusername/matchday-edge/internal/config"
	"github.com/yourusername/matchday-edge/internal/metrics"
	"github.com/yourusername/matchday-edge/internal/models"
)

const apiPrefix = "/api/v1"

// SnapshotStore is the read side of the refresh cycle
type SnapshotStore interface {
	Latest() (*models.Snapshot, bool)
	Subscribe() chan *models.Snapshot
	Unsubscribe(ch chan *models.Snapshot)
}

// Refresher runs an on-demand refresh cycle
type Refresher interface {
	Refresh(ctx context.Context) (*models.Snapshot, bool, error)
}

// Server is the dashboard API server
type Server struct {
	config    config.ServerConfig
	metrics   config.MetricsConfig
	store     SnapshotStore
	refresher Refresher
	limiter   *rate.Limiter
	upgrader  websocket.Upgrader
	server    *http.Server
	logger    *logrus.Entry
}

// NewServer creates an API server. Manual refreshes are limited to
// cfg.RefreshRatePerMinute and stream handshakes to cfg.CORSOrigins.
func NewServer(cfg config.ServerConfig, metricsCfg config.MetricsConfig, store SnapshotStore, refresher Refresher, logger *logrus.Logger) *Server {
	perMinute := cfg.RefreshRatePerMinute
	if perMinute <= 0 {
		perMinute = 1
	}

	return &Server{
		config:    cfg,
		metrics:   metricsCfg,
		store:     store,
		refresher: refresher,
		limiter:   rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), 1),
		upgrader:  newUpgrader(cfg.CORSOrigins),
		logger:    logger.WithField("component", "api"),
	}
}

// Handler builds the routed, CORS-wrapped handler
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()

	c := cors.New(cors.Options{
		AllowedOrigins: s.config.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		MaxAge:         3600,
	})

	// routes sit on the root router so a method mismatch answers 405, not 404
	router.HandleFunc(apiPrefix+"/matches", s.getMatches).Methods("GET")
	router.HandleFunc(apiPrefix+"/matches/{id}", s.getMatch).Methods("GET")
	router.HandleFunc(apiPrefix+"/value-bets", s.getValueBets).Methods("GET")
	router.HandleFunc(apiPrefix+"/summary", s.getSummary).Methods("GET")
	router.HandleFunc(apiPrefix+"/refresh", s.postRefresh).Methods("POST")
	router.HandleFunc(apiPrefix+"/stream", s.stream).Methods("GET")

	if s.metrics.Enabled && s.metrics.Path != "" {
		router.Handle(s.metrics.Path, metrics.Handler()).Methods("GET")
	}

	return c.Handler(router)
}

// Run serves until ctx is cancelled
func (s *Server) Run(ctx context.Context) error {
	s.server = &http.Server{
		Addr:         s.config.BindAddress,
		Handler:      s.Handler(),
		ReadTimeout:  time.Duration(s.config.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(s.config.WriteTimeoutSeconds) * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.WithField("address", s.config.BindAddress).Info("API server starting")
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("failed to serve API: %w", err)
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("API server shutting down")
		return s.server.Shutdown(shutdownCtx)
	case err := <-errCh:
		return err
	}
}
