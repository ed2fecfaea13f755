// Package server exposes concept-map sessions over HTTP for external
// renderers.
//
// Routes:
//
//	GET  /healthz
//	GET  /metrics
//	GET  /api/maps/{mapID}?view=&width=&height=
//	GET  /api/maps/{mapID}/render.svg?view=&width=&height=
//	POST /api/maps/{mapID}/known/{id}/toggle
//	PUT  /api/maps/{mapID}/known/{id}            {"known": bool}
//	POST /api/maps/{mapID}/collapsed/{id}/toggle
//	POST /api/maps/{mapID}/expand
//	POST /api/maps/{mapID}/collapse
//	POST /api/maps/{mapID}/reset
//
// One [engine.Session] is kept per map id; requests for the same map are
// serialised.
package server

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/matzehuels/conceptmap/pkg/engine"
	"github.com/matzehuels/conceptmap/pkg/hierarchy"
	"github.com/matzehuels/conceptmap/pkg/layout"
	"github.com/matzehuels/conceptmap/pkg/store"
)

// Options configures a [Server].
type Options struct {
	Addr          string
	CORSOrigins   []string
	Namespace     string
	StartExpanded bool
	DefaultView   layout.View
	Width         float64
	Height        float64
	Logger        *log.Logger
	// Metrics enables /metrics and request instrumentation when set.
	Metrics *Metrics
}

// Server serves one hierarchy to any number of maps.
type Server struct {
	opts  Options
	store *store.Store

	mu       sync.Mutex
	doc      hierarchy.Document
	sessions map[string]*mapSession

	router http.Handler
}

type mapSession struct {
	mu   sync.Mutex
	sess *engine.Session
}

// New builds a server for doc backed by s.
func New(doc hierarchy.Document, s *store.Store, opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.DefaultView == "" {
		opts.DefaultView = layout.DefaultView
	}
	if opts.Width <= 0 {
		opts.Width = 1200
	}
	if opts.Height <= 0 {
		opts.Height = 720
	}
	if len(opts.CORSOrigins) == 0 {
		opts.CORSOrigins = []string{"*"}
	}
	srv := &Server{
		opts:     opts,
		store:    s,
		doc:      doc,
		sessions: make(map[string]*mapSession),
	}
	srv.router = srv.routes()
	return srv
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.opts.Logger))
	if s.opts.Metrics != nil {
		r.Use(s.opts.Metrics.Middleware)
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: s.opts.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))

	r.Get("/healthz", s.health)
	if s.opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.opts.Metrics.Handler())
	}

	r.Route("/api/maps/{mapID}", func(r chi.Router) {
		r.Get("/", s.getSnapshot)
		r.Get("/render.svg", s.renderSVG)
		r.Post("/known/{id}/toggle", s.toggleKnown)
		r.Put("/known/{id}", s.setKnown)
		r.Post("/collapsed/{id}/toggle", s.toggleCollapsed)
		r.Post("/expand", s.expandAll(true))
		r.Post("/collapse", s.expandAll(false))
		r.Post("/reset", s.resetProgress)
	})
	return r
}

// Reload replaces the hierarchy for every open and future session.
func (s *Server) Reload(ctx context.Context, doc hierarchy.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc = doc
	for _, ms := range s.sessions {
		ms.mu.Lock()
		ms.sess.Reload(ctx, doc.Topics)
		ms.mu.Unlock()
	}
	s.opts.Logger.Info("hierarchy reloaded", "sessions", len(s.sessions), "cards", doc.Topics.CardCount())
}

// withSession runs fn with exclusive access to the session of mapID,
// opening it on first use.
func (s *Server) withSession(ctx context.Context, mapID string, fn func(*engine.Session) error) error {
	s.mu.Lock()
	ms, ok := s.sessions[mapID]
	if !ok {
		sess, err := engine.Open(ctx, s.doc.Topics, s.store, engine.Options{
			MapID:         mapID,
			Namespace:     s.opts.Namespace,
			StartExpanded: s.opts.StartExpanded,
			Logger:        s.opts.Logger,
		})
		if err != nil {
			s.mu.Unlock()
			return err
		}
		ms = &mapSession{sess: sess}
		s.sessions[mapID] = ms
		s.opts.Logger.Debug("session opened", "map", mapID)
	}
	s.mu.Unlock()

	ms.mu.Lock()
	defer ms.mu.Unlock()
	return fn(ms.sess)
}

// ListenAndServe serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) ListenAndServe(ctx context.Context) error {
	hs := &http.Server{
		Addr:              s.opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() { errc <- hs.ListenAndServe() }()
	s.opts.Logger.Info("listening", "addr", s.opts.Addr)

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := hs.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	}
}

func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			logger.Debug("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", chimiddleware.GetReqID(r.Context()),
			)
		})
	}
}
