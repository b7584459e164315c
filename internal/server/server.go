// Package server serves the site over HTTP.
package server

import (
	"bytes"
	"log/slog"
	"net/http"
	"time"

	"github.com/vincenteof/site/internal/pages"
	"github.com/vincenteof/site/internal/render"
)

// Server routes requests to the site's pages.
type Server struct {
	site   *pages.Site
	logger *slog.Logger
	mux    *http.ServeMux
}

// New creates a Server rendering site and logging through logger.
func New(site *pages.Site, logger *slog.Logger) *Server {
	s := &Server{
		site:   site,
		logger: logger,
		mux:    http.NewServeMux(),
	}
	s.RegisterRoutes(s.mux)
	return s
}

// RegisterRoutes registers all HTTP routes on mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", s.handleHealthz)

	// GET patterns also match HEAD; other methods get 405 from the mux
	mux.HandleFunc("GET /{$}", s.handleHome)
	mux.HandleFunc("GET /", s.handleNotFound)
}

// ServeHTTP satisfies http.Handler. Every request gets a logger in its
// context and an access log line once it's served.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	log := s.logger.With("method", r.Method, "path", r.URL.Path)
	r = r.WithContext(render.LoggingContext(r.Context(), log))

	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	s.mux.ServeHTTP(rec, r)

	log.InfoContext(r.Context(), "request served",
		"status", rec.status,
		"duration", time.Since(start),
	)
}

func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusOK, pages.NewHomePage())
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	s.renderPage(w, r, http.StatusNotFound, pages.NewNotFoundPage())
}

// renderPage writes page with status, or the server error page with a 500
// if page fails to render. The status is only sent once rendering is done.
func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, page render.Page) {
	ctx := r.Context()
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	var buf bytes.Buffer
	if err := render.Write(ctx, &buf, s.site, page); err != nil {
		render.LoggerFromContext(ctx).ErrorContext(ctx, "error rendering page", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		render.Render(ctx, w, s.site, s.site.ServerErrorPage(ctx))
		return
	}

	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		render.LoggerFromContext(ctx).ErrorContext(ctx, "error writing response", "error", err)
	}
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func (r *statusRecorder) WriteHeader(status int) {
	if !r.wroteHeader {
		r.status = status
		r.wroteHeader = true
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	r.wroteHeader = true
	return r.ResponseWriter.Write(b)
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
