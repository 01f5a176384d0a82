// Package api exposes the scraping pipeline over a small JSON HTTP
// surface. Requests run synchronously: a scrape call returns when the run
// finishes, with the full property payload and the run's statistics.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// Version reported by the info endpoint.
const Version = "1.0.0"

// Server hosts the API over one Handlers set.
type Server struct {
	httpServer *http.Server
}

// NewServer builds the HTTP server with the routing and middleware stack.
func NewServer(addr string, handlers *Handlers) *Server {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/info", handlers.handleInfo)
		r.Post("/urls", handlers.handleURLs)
		r.Post("/scrape", handlers.handleScrape)
	})

	return &Server{
		httpServer: &http.Server{
			Addr:    addr,
			Handler: r,
			// Scrape runs are long; only bound the read side.
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

// Router exposes the handler for tests.
func (s *Server) Router() http.Handler {
	return s.httpServer.Handler
}

// Start serves until the listener fails or Shutdown is called.
func (s *Server) Start() error {
	log.Info().Str("addr", s.httpServer.Addr).Msg("API server listening")
	err := s.httpServer.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

// Shutdown drains in-flight requests within the context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	log.Info().Msg("API server shutting down")
	return s.httpServer.Shutdown(ctx)
}

// requestLogger logs one line per request with method, path, status and
// elapsed time.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("Request handled")
	})
}
