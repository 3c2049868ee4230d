// Package server provides the HTTP server and routing for the Moneyball web frontend.
package server

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/aristath/moneyball/internal/clients/backend"
	"github.com/aristath/moneyball/internal/session"
)

// Config holds server configuration
type Config struct {
	Log            zerolog.Logger
	Backend        *backend.Client
	Cookies        *session.CookieStore
	Registry       *prometheus.Registry // nil disables /metrics
	StateSecret    []byte               // signs navigation state
	Location       *time.Location       // match times are shown in this zone
	RequestTimeout time.Duration
	Port           int
	DevMode        bool
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	backend        *backend.Client
	cookies        *session.CookieStore
	registry       *prometheus.Registry
	pages          *pageRenderer
	navState       *navState
	inflight       *inflightGuard
	systemHandlers *SystemHandlers
	loc            *time.Location
	port           int
}

// New creates a new HTTP server
func New(cfg Config) (*Server, error) {
	pages, err := newPageRenderer()
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	timeout := cfg.RequestTimeout
	if timeout <= 0 {
		timeout = backend.DefaultTimeout
	}
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}

	s := &Server{
		router:         chi.NewRouter(),
		log:            cfg.Log.With().Str("component", "server").Logger(),
		backend:        cfg.Backend,
		cookies:        cfg.Cookies,
		registry:       cfg.Registry,
		pages:          pages,
		navState:       newNavState(cfg.StateSecret),
		inflight:       newInflightGuard(timeout),
		systemHandlers: NewSystemHandlers(cfg.Log, cfg.Backend.BaseURL()),
		loc:            loc,
		port:           cfg.Port,
	}

	s.setupMiddleware(cfg.DevMode, timeout)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: timeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool, requestTimeout time.Duration) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// Timeout; prediction requests with AI analysis may run for the full backend timeout
	s.router.Use(middleware.Timeout(requestTimeout + 10*time.Second))

	// CORS; cross-origin callers never get the session cookie
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		ExposedHeaders: []string{"Link"},
		MaxAge:         300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	staticFS, err := fs.Sub(assets, "static")
	if err == nil {
		s.router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(staticFS))))
	}

	if s.registry != nil {
		s.router.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{
			ErrorHandling: promhttp.HTTPErrorOnError,
		}))
	}

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/system/status", s.systemHandlers.HandleSystemStatus)
	})

	// Pages
	s.router.Group(func(r chi.Router) {
		r.Use(s.sessionMiddleware)

		r.Get("/login", s.handleLoginPage)
		r.Post("/login", s.handleLoginSubmit)
		r.Post("/logout", s.handleLogout)
		r.Get("/predict/{id}", s.handlePredictionPage)
		r.Post("/predict/{id}", s.handlePredictionSubmit)

		r.With(s.requireSession).Get("/", s.handleHome)
	})
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}

// sessionMiddleware binds the browser's cookie session to the request context
// so views and the backend client see the same store.
func (s *Server) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store := s.cookies.Bind(w, r)
		next.ServeHTTP(w, r.WithContext(session.NewContext(r.Context(), store)))
	})
}

// requireSession redirects to the login page when no token is present.
func (s *Server) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store := s.store(r)
		sess, err := store.Load(r.Context())
		if err != nil || !sess.Authenticated() {
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// store returns the request's session store bound by sessionMiddleware.
func (s *Server) store(r *http.Request) session.Store {
	if store, ok := session.FromContext(r.Context()); ok {
		return store
	}
	return session.NewMemoryStore(session.Session{})
}
