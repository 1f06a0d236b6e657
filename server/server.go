// Package server serves the portfolio dashboard and its JSON API.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/etnz/tracker"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"
)

// Config holds server configuration.
type Config struct {
	Log      zerolog.Logger
	Provider tracker.Provider
	// Currency of the invested amounts typed in the form.
	Currency string
	Addr     string
	// Timeout bounds the computation of a single analysis.
	Timeout time.Duration
	DevMode bool
}

// Server is the HTTP server.
type Server struct {
	router   *chi.Mux
	server   *http.Server
	log      zerolog.Logger
	provider tracker.Provider
	currency string
}

// New creates a new HTTP server.
func New(cfg Config) *Server {
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.Currency == "" {
		cfg.Currency = "USD"
	}
	s := &Server{
		router:   chi.NewRouter(),
		log:      cfg.Log.With().Str("component", "server").Logger(),
		provider: cfg.Provider,
		currency: cfg.Currency,
	}

	s.setupMiddleware(cfg.Timeout, cfg.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: cfg.Timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) setupMiddleware(timeout time.Duration, devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(timeout))
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/", s.handleForm)
	s.router.Get("/report", s.handleReport)

	s.router.Route("/api", func(r chi.Router) {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders: []string{"Accept", "Content-Type"},
			MaxAge:         300,
		}))
		r.Get("/analysis", s.handleAnalysis)
		r.Post("/analysis", s.handleAnalysis)
	})
}

// Handler returns the root handler of the server.
func (s *Server) Handler() http.Handler { return s.router }

// Start listens and serves until Shutdown is called.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests, and makes the logger available to handlers.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqLog := s.log.With().Str("request_id", middleware.GetReqID(r.Context())).Logger()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r.WithContext(reqLog.WithContext(r.Context())))

		reqLog.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Msg("HTTP request")
	})
}
