// Package server exposes a task set over HTTP.
//
// The server keeps the current snapshot in a [task.Dispatcher]. Every edit
// goes through the dispatcher and, when a [source.Store] is configured, is
// written back before the response is sent. Charts are produced by a
// [pipeline.Runner], so a Redis or file cache configured on the runner is
// shared by all requests.
//
// Routes:
//
//	GET    /healthz
//	GET    /tasks
//	GET    /tasks/{id}
//	PATCH  /tasks/{id}              {"start", "end", "progress"}
//	POST   /tasks/{id}/expander
//	POST   /tasks/{id}/select
//	DELETE /tasks/{id}              202 with a confirmation token
//	DELETE /tasks/{id}?confirm=...  removes the task
//	GET    /chart.svg, /chart.json  ?view=&locale=&rtl=
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/matzehuels/stackgantt/pkg/observability"
	"github.com/matzehuels/stackgantt/pkg/pipeline"
	"github.com/matzehuels/stackgantt/pkg/source"
	"github.com/matzehuels/stackgantt/pkg/task"
)

// RequestIDHeader carries the id assigned to each request.
const RequestIDHeader = "X-Request-Id"

const shutdownTimeout = 10 * time.Second

// Config configures a Server.
type Config struct {
	// Options are the base chart options. Query parameters override
	// view mode, locale and direction per request.
	Options pipeline.Options

	// Runner renders charts. Nil uses an uncached runner.
	Runner *pipeline.Runner

	// Store persists edits. Nil keeps edits in memory only.
	Store source.Store

	Logger *log.Logger
}

// Server serves one task set.
type Server struct {
	cfg        Config
	dispatcher *task.Dispatcher
	router     chi.Router
	logger     *log.Logger
}

// New creates a server starting from snap.
func New(snap task.Snapshot, cfg Config) *Server {
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	if cfg.Runner == nil {
		cfg.Runner = pipeline.NewRunner(nil, nil, cfg.Logger)
	}
	s := &Server{
		cfg:    cfg,
		logger: cfg.Logger,
	}
	s.dispatcher = task.NewDispatcher(snap, task.Handlers{
		OnDelete: func(t task.Task) {
			s.logger.Info("deleted task", "id", t.ID, "name", t.Name)
		},
	})
	s.router = s.routes()
	return s
}

// Dispatcher returns the dispatcher holding the current snapshot.
func (s *Server) Dispatcher() *task.Dispatcher { return s.dispatcher }

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler { return s.router }

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Get("/chart.svg", s.handleChart(pipeline.FormatSVG))
	r.Get("/chart.json", s.handleChart(pipeline.FormatJSON))

	r.Route("/tasks", func(r chi.Router) {
		r.Get("/", s.handleListTasks)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.handleGetTask)
			r.Patch("/", s.handlePatchTask)
			r.Delete("/", s.handleDeleteTask)
			r.Post("/expander", s.handleExpander)
			r.Post("/select", s.handleSelect)
		})
	})
	return r
}

// ListenAndServe serves on addr until ctx is canceled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	s.logger.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		elapsed := time.Since(start)

		route := r.URL.Path
		if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
			route = rc.RoutePattern()
		}
		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		observability.Server().OnRequest(r.Context(), r.Method, route, status, elapsed)
		s.logger.Debug("request",
			"id", id,
			"method", r.Method,
			"route", route,
			"status", status,
			"bytes", ww.BytesWritten(),
			"duration", elapsed)
	})
}
