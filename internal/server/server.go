// Package server provides the HTTP API for the valuation engine.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/sells-group/valuation-cli/internal/engine"
	"github.com/sells-group/valuation-cli/internal/multiples"
	"github.com/sells-group/valuation-cli/internal/store"
)

// Config holds the server dependencies and tuning parameters.
type Config struct {
	Port           int
	RequestsPerSec float64
	BurstSize      int

	Calculator *engine.Calculator
	Table      *multiples.Table
	Store      store.Store
}

// Server is the HTTP API server.
type Server struct {
	router *chi.Mux
	srv    *http.Server

	calc  *engine.Calculator
	table *multiples.Table
	store store.Store
}

// New builds a Server with routing and middleware configured.
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		calc:   cfg.Calculator,
		table:  cfg.Table,
		store:  cfg.Store,
	}

	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Timeout(30 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	if cfg.RequestsPerSec > 0 {
		burst := cfg.BurstSize
		if burst <= 0 {
			burst = int(cfg.RequestsPerSec)
		}
		s.router.Use(throttle(rate.NewLimiter(rate.Limit(cfg.RequestsPerSec), burst)))
	}

	s.router.Get("/health", s.handleHealth)
	s.router.Route("/v1", func(r chi.Router) {
		r.Post("/classify", s.handleClassify)
		r.Post("/valuations", s.handleCreateValuation)
		r.Get("/valuations", s.handleListValuations)
		r.Get("/valuations/{id}", s.handleGetValuation)
		r.Get("/multiples", s.handleMultiples)
	})

	s.srv = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Handler exposes the router for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	zap.L().Info("starting server", zap.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return eris.Wrap(err, "server: listen")
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return eris.Wrap(s.srv.Shutdown(ctx), "server: shutdown")
}

// throttle applies a global token-bucket limit across all routes.
func throttle(l *rate.Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.Allow() {
				writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		zap.L().Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	})
}
