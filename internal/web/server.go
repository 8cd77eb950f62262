// Package web serves the HTML form frontend: registration, login, the
// dashboard sections and the scheduling and profile forms.
package web

import (
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/fairwaylabs/clubfit/internal/auth"
	"github.com/fairwaylabs/clubfit/internal/middleware"
	"github.com/fairwaylabs/clubfit/internal/storage"
)

// Server holds the dependencies for the HTTP handlers.
type Server struct {
	store    storage.Store
	auth     auth.Authenticator
	sessions *auth.SessionManager
	logger   *slog.Logger
}

// New creates a Server backed by the given store, authenticator and session
// manager.
func New(store storage.Store, authenticator auth.Authenticator, sessions *auth.SessionManager, logger *slog.Logger) *Server {
	return &Server{
		store:    store,
		auth:     authenticator,
		sessions: sessions,
		logger:   logger,
	}
}

// Handler builds the route table and wraps it with the logging and metrics
// middleware. The dashboard and both form submissions sit behind the session
// guard; everything else is public.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.home)
	mux.HandleFunc("GET /register", s.registerForm)
	mux.HandleFunc("POST /register", s.register)
	mux.HandleFunc("GET /login", s.loginForm)
	mux.HandleFunc("POST /login", s.login)
	mux.HandleFunc("GET /logout", s.logout)

	guard := middleware.RequireSession(s.sessions, s.rejectUnauthenticated)
	mux.Handle("GET /dashboard", guard(http.HandlerFunc(s.dashboardIndex)))
	mux.Handle("GET /dashboard/{section}", guard(http.HandlerFunc(s.dashboard)))
	mux.Handle("POST /schedule", guard(http.HandlerFunc(s.schedule)))
	mux.Handle("POST /profile", guard(http.HandlerFunc(s.saveProfile)))

	mux.Handle("GET /metrics", promhttp.Handler())

	return middleware.Logging(middleware.Metrics(mux))
}

// rejectUnauthenticated is invoked by the session guard for requests without
// a valid session.
func (s *Server) rejectUnauthenticated(w http.ResponseWriter, r *http.Request) {
	setFlash(w, "Please log in to continue.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// serverError logs a storage or rendering fault and returns an opaque 500.
func (s *Server) serverError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	http.Error(w, "Something went wrong.", http.StatusInternalServerError)
}
