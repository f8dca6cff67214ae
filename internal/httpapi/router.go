package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(requestLogger(s.logger))
	r.Use(middleware.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, s.logger, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, s.logger, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Route("/api", func(r chi.Router) {
		s.route(r, http.MethodPost, "/call", s.handleCall)
		s.route(r, http.MethodGet, "/health", s.handleHealth)
		s.route(r, http.MethodGet, "/tools", s.handleTools)
	})

	return r
}

// route mounts h for method plus its OPTIONS preflight, both with CORS headers.
func (s *Server) route(r chi.Router, method, pattern string, h http.HandlerFunc) {
	cr := r.With(cors(method))
	cr.Method(method, pattern, h)
	cr.Options(pattern, preflight)
}
