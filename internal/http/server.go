// Package http serves the dashboard JSON API.
package http

import (
	"context"
	"net/http"
	"time"

	"github.com/dstmrk/kanso/internal/log"
	"github.com/dstmrk/kanso/internal/services"
)

type Server struct {
	*http.Server
	dashboard *services.DashboardService
	userKey   string
	logger    *log.Logger
	startedAt time.Time
}

// NewServer wires the dashboard service behind the HTTP mux. userKey names
// the single account this instance serves.
func NewServer(addr string, dashboard *services.DashboardService, userKey string, logger *log.Logger) *Server {
	s := &Server{
		dashboard: dashboard,
		userKey:   userKey,
		logger:    logger.WithComponent(log.ComponentHTTP),
		startedAt: time.Now(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.HandleFunc("GET /api/dashboard/kpis", s.withRequestLog(s.handleKPIs))
	mux.HandleFunc("GET /api/dashboard/charts", s.withRequestLog(s.handleCharts))
	mux.HandleFunc("GET /api/dashboard/quality", s.withRequestLog(s.handleQuality))
	mux.HandleFunc("POST /api/refresh", s.withRequestLog(s.handleRefresh))

	s.Server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	return s
}

func (s *Server) withRequestLog(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next(w, r)
		s.logger.InfoContext(r.Context(), "request handled",
			log.FieldMethod, r.Method,
			log.FieldPath, r.URL.Path,
			log.FieldDuration, time.Since(start).Milliseconds())
	}
}

// Shutdown gracefully shuts down the HTTP server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.InfoContext(ctx, "shutting down HTTP server",
		log.FieldOperation, log.OpShutdown)
	return s.Server.Shutdown(ctx)
}
