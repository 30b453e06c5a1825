// Package http exposes the aggregation service over a thin JSON read API,
// plus health, readiness, and metrics endpoints.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/couchcryptid/covid-feed-etl/internal/domain"
	"github.com/couchcryptid/covid-feed-etl/internal/report"
)

// defaultWindow is the trailing-window length used when ?days is absent.
// Longer windows collide on weekday labels, so the default stays within 7.
const defaultWindow = 6

// Server wires the report service to HTTP routes.
type Server struct {
	httpServer *http.Server
	service    *report.Service
	logger     *slog.Logger
}

// NewServer creates the HTTP server with all routes registered.
func NewServer(addr string, service *report.Service, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 60 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		service: service,
		logger:  logger,
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)
	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/v1/reports", s.handleReports)
	mux.HandleFunc("GET /api/v1/total", s.handleTotal)
	mux.HandleFunc("GET /api/v1/retroact", s.handleRetroact)
	mux.HandleFunc("GET /api/v1/country/{code}", s.handleCountry)
	mux.HandleFunc("GET /api/v1/country/{code}/retroact", s.handleCountryRetroact)
	mux.HandleFunc("GET /api/v1/constants", s.handleConstants)
	mux.HandleFunc("GET /api/v1/cases", s.handleCases)
	mux.HandleFunc("GET /api/v1/world", s.handleWorld)
	mux.HandleFunc("GET /api/v1/trend", s.handleTrend)
	mux.HandleFunc("GET /api/v1/zones", s.handleZones)
	mux.HandleFunc("GET /api/v1/hospitals", s.handleHospitals)
	mux.HandleFunc("GET /api/v1/safe-zones", s.handleSafeZones)
	mux.HandleFunc("GET /api/v1/provinces", s.handleProvinces)
	mux.HandleFunc("GET /api/v1/facilities", s.handleFacilities)
	mux.HandleFunc("GET /api/v1/dashboard", s.handleDashboard)

	return s
}

// Start begins serving. Blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("http server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if err := s.service.CheckReadiness(r.Context()); err != nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "not ready", "reason": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// queryDate reads ?date=YYYY-MM-DD, defaulting to yesterday: the newest
// complete daily-report snapshot.
func queryDate(r *http.Request) (time.Time, error) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		return domain.Now().AddDate(0, 0, -1), nil
	}
	return time.ParseInLocation("2006-01-02", raw, time.Local)
}

func queryDays(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("days")
	if raw == "" {
		return defaultWindow, nil
	}
	days, err := strconv.Atoi(raw)
	if err != nil || days < 1 {
		return 0, errors.New("days must be a positive integer")
	}
	return days, nil
}

func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r)
	if err != nil {
		s.badRequest(w, err)
		return
	}
	s.respond(w, func() (any, error) { return s.service.DailyReports(r.Context(), date) })
}

func (s *Server) handleTotal(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r)
	if err != nil {
		s.badRequest(w, err)
		return
	}
	s.respond(w, func() (any, error) { return s.service.Total(r.Context(), date) })
}

func (s *Server) handleRetroact(w http.ResponseWriter, r *http.Request) {
	days, err := queryDays(r)
	if err != nil {
		s.badRequest(w, err)
		return
	}
	s.respond(w, func() (any, error) { return s.service.Retroact(r.Context(), days) })
}

func (s *Server) handleCountry(w http.ResponseWriter, r *http.Request) {
	date, err := queryDate(r)
	if err != nil {
		s.badRequest(w, err)
		return
	}
	code := r.PathValue("code")
	s.respond(w, func() (any, error) { return s.service.Country(r.Context(), code, date) })
}

func (s *Server) handleCountryRetroact(w http.ResponseWriter, r *http.Request) {
	days, err := queryDays(r)
	if err != nil {
		s.badRequest(w, err)
		return
	}
	code := r.PathValue("code")
	s.respond(w, func() (any, error) { return s.service.CountryRetroact(r.Context(), code, days) })
}

func (s *Server) handleConstants(w http.ResponseWriter, r *http.Request) {
	s.respond(w, func() (any, error) { return s.service.Constants(r.Context()) })
}

func (s *Server) handleCases(w http.ResponseWriter, r *http.Request) {
	s.respond(w, func() (any, error) { return s.service.Cases(r.Context()) })
}

func (s *Server) handleWorld(w http.ResponseWriter, r *http.Request) {
	s.respond(w, func() (any, error) { return s.service.World(r.Context()) })
}

func (s *Server) handleTrend(w http.ResponseWriter, r *http.Request) {
	days, err := queryDays(r)
	if err != nil {
		s.badRequest(w, err)
		return
	}
	s.respond(w, func() (any, error) { return s.service.PastTrend(r.Context(), days) })
}

func (s *Server) handleZones(w http.ResponseWriter, r *http.Request) {
	s.respond(w, func() (any, error) { return s.service.CaseZones(r.Context()) })
}

func (s *Server) handleHospitals(w http.ResponseWriter, r *http.Request) {
	s.respond(w, func() (any, error) { return s.service.Hospitals(r.Context()) })
}

func (s *Server) handleSafeZones(w http.ResponseWriter, r *http.Request) {
	s.respond(w, func() (any, error) { return s.service.SafeZones(r.Context()) })
}

func (s *Server) handleProvinces(w http.ResponseWriter, r *http.Request) {
	s.respond(w, func() (any, error) { return s.service.ProvinceSummaries(r.Context()) })
}

func (s *Server) handleFacilities(w http.ResponseWriter, r *http.Request) {
	s.respond(w, func() (any, error) { return s.service.Facilities(r.Context()) })
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	s.respond(w, func() (any, error) { return s.service.Dashboard(r.Context()) })
}

// respond runs an operation and maps its outcome: 200 with the payload,
// 503 when the source is not configured, 502 for any other upstream
// failure. A failed aggregation yields no partial data.
func (s *Server) respond(w http.ResponseWriter, op func() (any, error)) {
	payload, err := op()
	if err != nil {
		if errors.Is(err, domain.ErrSourceNotConfigured) {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
			return
		}
		s.logger.Error("aggregation failed", "error", err)
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, payload)
}

func (s *Server) badRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
