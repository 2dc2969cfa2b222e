// Package api serves grid planning, scene checks, overlays and snapshots
// over HTTP.
//
// Routes:
//
//	GET  /healthz                 liveness and build information
//	POST /v1/grid/plan            plan a grid (JSON in, JSON out)
//	POST /v1/scenes/check         build a TOML scene and return its report
//	POST /v1/scenes/overlay       render the overlay of a TOML scene
//	POST /v1/snapshots            build a TOML scene and store a snapshot
//	GET  /v1/snapshots            list stored snapshots
//	GET  /v1/snapshots/{id}       fetch one snapshot
//
// Plans, reports and overlays are cached through a [cache.Cache]; snapshots
// go to a [snapshot.Store].
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/anchor/pkg/cache"
	"github.com/matzehuels/anchor/pkg/observability"
	"github.com/matzehuels/anchor/pkg/snapshot"
)

// Defaults for the server.
const (
	DefaultAddr     = ":8080"
	DefaultCacheTTL = time.Hour
	RequestTimeout  = 30 * time.Second
	MaxBodyBytes    = 1 << 20
)

// Server is the HTTP API.
type Server struct {
	logger   *log.Logger
	cache    cache.Cache
	keys     cache.Keyer
	cacheTTL time.Duration
	store    snapshot.Store
	router   chi.Router
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(l *log.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithCache caches plans, reports and overlays in c.
func WithCache(c cache.Cache, ttl time.Duration) Option {
	return func(s *Server) {
		if c != nil {
			s.cache = c
		}
		if ttl > 0 {
			s.cacheTTL = ttl
		}
	}
}

// WithKeyer overrides the cache key layout.
func WithKeyer(k cache.Keyer) Option {
	return func(s *Server) {
		if k != nil {
			s.keys = k
		}
	}
}

// WithStore stores snapshots in st.
func WithStore(st snapshot.Store) Option {
	return func(s *Server) {
		if st != nil {
			s.store = st
		}
	}
}

// New creates a server. Without options it logs to the default logger,
// does not cache and keeps snapshots in memory.
func New(opts ...Option) *Server {
	s := &Server{
		logger:   log.Default(),
		cache:    cache.NewNullCache(),
		keys:     cache.NewDefaultKeyer(),
		cacheTTL: DefaultCacheTTL,
		store:    snapshot.NewMemoryStore(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(middleware.Timeout(RequestTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/grid/plan", s.handlePlan)
		r.Post("/scenes/check", s.handleCheck)
		r.Post("/scenes/overlay", s.handleOverlay)
		r.Route("/snapshots", func(r chi.Router) {
			r.Post("/", s.handleCreateSnapshot)
			r.Get("/", s.handleListSnapshots)
			r.Get("/{id}", s.handleGetSnapshot)
		})
	})
	return r
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	if addr == "" {
		addr = DefaultAddr
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      RequestTimeout + 5*time.Second,
		IdleTimeout:       2 * time.Minute,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("api listening", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	s.logger.Info("api shutting down")
	return srv.Shutdown(shutdown)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		hooks := observability.API()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		next.ServeHTTP(ww, r)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, route, status, elapsed)
		s.logger.Debug("api request",
			"method", r.Method,
			"route", route,
			"status", status,
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()))
	})
}
