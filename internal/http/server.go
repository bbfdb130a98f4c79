package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"gastos/internal/core"
	"gastos/internal/log"
	"gastos/internal/services"
)

// Server exposes the record CRUD and analytics API over HTTP.
type Server struct {
	httpServer  *http.Server
	router      chi.Router
	records     *services.RecordService
	catalog     core.Catalog
	insights    *core.Generator
	trendMonths int
	logger      *log.Logger
}

// Options configures a Server.
type Options struct {
	Addr        string
	Records     *services.RecordService
	Catalog     core.Catalog
	Insights    *core.Generator
	TrendMonths int
	Logger      *log.Logger
}

func NewServer(opts Options) *Server {
	if opts.Catalog == nil {
		opts.Catalog = core.DefaultCatalog()
	}
	if opts.Insights == nil {
		opts.Insights = core.NewGenerator(core.DefaultRules()...)
	}
	if opts.TrendMonths < 1 {
		opts.TrendMonths = 6
	}
	if opts.Logger == nil {
		opts.Logger = log.New(log.DefaultConfig())
	}

	s := &Server{
		records:     opts.Records,
		catalog:     opts.Catalog,
		insights:    opts.Insights,
		trendMonths: opts.TrendMonths,
		logger:      opts.Logger,
	}
	s.router = s.routes()
	s.httpServer = &http.Server{
		Addr:         opts.Addr,
		Handler:      s.router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(log.Middleware(s.logger))

	r.Get("/healthz", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Route("/records", func(r chi.Router) {
			r.Get("/", s.handleListRecords)
			r.Post("/", s.handleCreateRecord)
			r.Put("/{id}", s.handleUpdateRecord)
			r.Delete("/{id}", s.handleDeleteRecord)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/categories", s.handleCategories)
			r.Get("/split", s.handleSplit)
			r.Get("/trend", s.handleTrend)
			r.Get("/comparison", s.handleComparison)
			r.Get("/budgets", s.handleBudgets)
			r.Get("/insights", s.handleInsights)
		})
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Handler returns the routed handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the server and blocks until it stops.
func (s *Server) ListenAndServe() error {
	s.logger.Info("HTTP server listening", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests and stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.InfoContext(ctx, "HTTP server shutting down", log.FieldOperation, log.OpShutdown)
	return s.httpServer.Shutdown(ctx)
}
