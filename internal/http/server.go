// Package http exposes the ledger over a JSON API.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"purchases/internal/services"
)

// Server is the ledger HTTP API server.
type Server struct {
	svc              *services.LedgerService
	bonusRatePercent float64
	metrics          *Metrics
	registry         *prometheus.Registry
}

// NewServer creates an API server around the ledger service. The bonus
// rate is the configured default; requests may override it per call.
func NewServer(svc *services.LedgerService, bonusRatePercent float64) *Server {
	registry := prometheus.NewRegistry()
	return &Server{
		svc:              svc,
		bonusRatePercent: bonusRatePercent,
		metrics:          NewMetrics(registry),
		registry:         registry,
	}
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/records", s.handleListRecords)
		r.Post("/records", s.handleAddRecord)
		r.Post("/records/delete", s.handleDeleteRecords)
	})

	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))
	return r
}

// NewHTTPServer wraps the handler in an http.Server with sane timeouts.
func (s *Server) NewHTTPServer(addr string) *http.Server {
	return &http.Server{
		Addr:           addr,
		Handler:        s.Handler(),
		ReadTimeout:    10 * time.Second,
		WriteTimeout:   10 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 16,
	}
}
