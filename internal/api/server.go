// Package api exposes the CRUD engine over HTTP. Every request runs in its
// own storage session, and engine errors map onto HTTP status codes.
package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/mesh-intelligence/biobank/internal/crud"
	"github.com/mesh-intelligence/biobank/internal/storage"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 5 * time.Second
)

// Options configures the HTTP surface.
type Options struct {
	Prefix          string              // route prefix, e.g. /api
	ListenAddr      string              // address for Run
	CORSOrigins     []string            // allowed browser origins
	DefaultPageSize int                 // list limit when the query omits it
	MaxPageSize     int                 // upper bound on the list limit
	Gatherer        prometheus.Gatherer // serves /metrics when set
}

// Server routes requests to the engine.
type Server struct {
	backend *storage.Backend
	engine  *crud.Engine
	log     zerolog.Logger
	opts    Options
}

// NewServer returns a server over an attached backend.
func NewServer(backend *storage.Backend, engine *crud.Engine, log zerolog.Logger, opts Options) *Server {
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = 100
	}
	if opts.MaxPageSize < opts.DefaultPageSize {
		opts.MaxPageSize = opts.DefaultPageSize
	}
	return &Server{
		backend: backend,
		engine:  engine,
		log:     log.With().Str("component", "api").Logger(),
		opts:    opts,
	}
}

// Handler returns the routed handler with logging and CORS applied.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(s.logRequests, s.cors)

	api := router.PathPrefix(s.opts.Prefix).Subrouter()
	api.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	api.HandleFunc("/tables", s.handleTables).Methods(http.MethodGet)
	api.HandleFunc("/{table}", s.handleList).Methods(http.MethodGet)
	api.HandleFunc("/{table}", s.handleCreate).Methods(http.MethodPost)
	api.HandleFunc("/{table}/{id}", s.handleGet).Methods(http.MethodGet)
	api.HandleFunc("/{table}/{id}", s.handleUpdate).Methods(http.MethodPatch)
	api.HandleFunc("/{table}/{id}", s.handleDelete).Methods(http.MethodDelete)
	api.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(s.handlePreflight)

	if s.opts.Gatherer != nil {
		router.Handle("/metrics", promhttp.HandlerFor(s.opts.Gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)
	}
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusNotFound, errorBody{Error: "not_found", Detail: "no route for " + r.URL.Path})
	})
	return router
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.opts.ListenAddr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", s.opts.ListenAddr).Str("prefix", s.opts.Prefix).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case <-ctx.Done():
		s.log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	case err := <-serverErr:
		return err
	}
}
