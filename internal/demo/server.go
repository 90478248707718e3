// Package demo is the development server showcasing the theming pipeline
// end to end: cookie persistence, route policy, header detection, HTML
// injection, the blocking script, and live cross-tab sync.
package demo

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/duskmode/duskmode"
	"github.com/duskmode/duskmode/config"
	"github.com/duskmode/duskmode/httptheme"
	"github.com/duskmode/duskmode/render"
	"github.com/duskmode/duskmode/schemes"
	"github.com/duskmode/duskmode/store"
)

// Server wires the theming library into a runnable chi application.
type Server struct {
	cfg        *config.Config
	registry   *schemes.Registry
	table      duskmode.PolicyTable
	db         *store.DB
	hub        *Hub
	log        *zap.Logger
	router     chi.Router
	httpServer *http.Server
}

// New builds the demo server from configuration. Config problems are
// logged as warnings and the server comes up regardless.
func New(cfg *config.Config, log *zap.Logger) (*Server, error) {
	if log == nil {
		log = zap.NewNop()
	}
	cfg.LogWarnings(log)

	s := &Server{
		cfg:      cfg,
		registry: cfg.Registry(log),
		table:    cfg.PolicyTable(),
		hub:      NewHub(log),
		log:      log,
	}

	if cfg.Storage.Database {
		db, err := store.Open(filepath.Join(cfg.Storage.DataDir, "preferences.db"))
		if err != nil {
			return nil, fmt.Errorf("opening preference database: %w", err)
		}
		s.db = db
	}

	s.router = s.buildRouter()
	return s, nil
}

func (s *Server) buildRouter() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	corsOpts := cors.Options{
		AllowedOrigins:   []string{"http://localhost:*", "http://127.0.0.1:*"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	if s.cfg.Server.AllowAll {
		corsOpts.AllowedOrigins = []string{"*"}
	}
	r.Use(cors.Handler(corsOpts))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	r.Get("/ws", s.hub.Handler)

	r.Group(func(r chi.Router) {
		r.Use(httptheme.Middleware(httptheme.Options{
			Registry: s.registry,
			Routes:   s.table,
			DB:       s.db,
			Logger:   s.log,
		}))

		r.Get("/api/theme", httptheme.GetHandler())
		r.Post("/api/theme", s.broadcastAfter(httptheme.SetHandler()))
		r.Post("/api/theme/cycle", s.broadcastAfter(httptheme.CycleHandler()))
		r.Get("/*", s.handlePage)
	})

	return r
}

// handlePage serves the demo document through the full injection pipeline.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	doc := httptheme.PrepareHTML(renderPage(s.registry), r, render.ScriptOptions{
		KnownSchemes:  s.registry.IDs(),
		DefaultScheme: s.registry.Default(),
	})
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(doc))
}

// broadcastAfter runs next and then tells every other tab the preference
// changed.
func (s *Server) broadcastAfter(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		next(w, r)
		s.hub.Broadcast(map[string]string{"event": "themeChanged"})
	}
}

// Router returns the chi router, mostly for tests.
func (s *Server) Router() chi.Router { return s.router }

// Registry returns the scheme registry the server resolved at startup.
func (s *Server) Registry() *schemes.Registry { return s.registry }

// Start begins listening on the configured port.
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Server.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	s.log.Info("duskmode demo server listening", zap.String("addr", addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully shuts down the server and closes the preference
// database.
func (s *Server) Shutdown(ctx context.Context) error {
	var err error
	if s.httpServer != nil {
		err = s.httpServer.Shutdown(ctx)
	}
	if s.db != nil {
		s.db.Close()
	}
	return err
}
