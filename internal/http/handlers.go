package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/dstmrk/kanso/internal/log"
	"github.com/dstmrk/kanso/internal/quality"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("encode response", log.FieldError, err.Error())
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

// handleHealth performs a basic liveness check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().Format(time.RFC3339),
		"uptime":    time.Since(s.startedAt).String(),
	})
}

// handleReady reports readiness; snapshots load lazily so the only hard
// dependency is the dashboard service itself.
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.dashboard == nil {
		s.writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not_ready"})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

func (s *Server) handleKPIs(w http.ResponseWriter, r *http.Request) {
	data, err := s.dashboard.KPIs(r.Context(), s.userKey)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "compute kpis", log.FieldError, err.Error())
		s.writeError(w, http.StatusInternalServerError, "failed to compute dashboard figures")
		return
	}
	s.writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleCharts(w http.ResponseWriter, r *http.Request) {
	data, err := s.dashboard.Charts(r.Context(), s.userKey)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "compute charts", log.FieldError, err.Error())
		s.writeError(w, http.StatusInternalServerError, "failed to compute chart data")
		return
	}
	s.writeJSON(w, http.StatusOK, data)
}

func (s *Server) handleQuality(w http.ResponseWriter, r *http.Request) {
	warnings, err := s.dashboard.Quality(r.Context(), s.userKey)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "check data quality", log.FieldError, err.Error())
		s.writeError(w, http.StatusInternalServerError, "failed to check data quality")
		return
	}
	if warnings == nil {
		warnings = []quality.Warning{}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"warnings": warnings})
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.dashboard.RequestRefresh(r.Context(), s.userKey); err != nil {
		s.logger.ErrorContext(r.Context(), "request refresh", log.FieldError, err.Error())
		s.writeError(w, http.StatusServiceUnavailable, "refresh is not available")
		return
	}
	s.writeJSON(w, http.StatusAccepted, map[string]string{"status": "refresh requested"})
}
