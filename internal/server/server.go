// Package server exposes grading over HTTP.
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ppiankov/douessay/internal/license"
	"github.com/ppiankov/douessay/internal/logging"
	"github.com/ppiankov/douessay/internal/model"
	"github.com/ppiankov/douessay/internal/pipeline"
)

// LicenseHeader carries the caller's license key
const LicenseHeader = "X-License-Key"

// Server serves the grading API
type Server struct {
	grader   *pipeline.Grader
	licenses license.Store
	cfg      model.ServerConfig
	log      *logging.Logger
}

// New creates a server. A nil license store disables enforcement.
func New(grader *pipeline.Grader, licenses license.Store, cfg model.ServerConfig, log *logging.Logger) *Server {
	if log == nil {
		log = logging.Nop()
	}
	return &Server{grader: grader, licenses: licenses, cfg: cfg, log: log}
}

// Router builds the HTTP handler
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer)
	if s.cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(s.cfg.RequestTimeout))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", LicenseHeader},
		ExposedHeaders: []string{"Content-Length", middleware.RequestIDHeader},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.handleHealth)

	r.Route("/v1", func(r chi.Router) {
		r.Use(s.requireLicense)
		r.Post("/grade", s.handleGrade)
		r.With(s.requireFeature(license.FeatureAssessment)).Post("/assess", s.handleAssess)
		r.With(s.requireFeature(license.FeatureAgreement)).Post("/agreement", s.handleAgreement)
	})
	return r
}

// ListenAndServe runs the server until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", s.cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		_ = json.NewEncoder(w).Encode(v)
	}
}

func respondError(w http.ResponseWriter, status int, msg string) {
	respondJSON(w, status, map[string]string{"error": msg})
}
