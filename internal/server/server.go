// Package server exposes one builder session over HTTP.
package server

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/goliatone/go-formbuilder/internal/loader"
	"github.com/goliatone/go-formbuilder/pkg/playground"
	"github.com/goliatone/go-formbuilder/pkg/preview"
	"github.com/goliatone/go-formbuilder/pkg/render"
)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithRenderers replaces the default registry, which holds the HTML preview
// and the JSON Schema renderer. The registry default answers /preview when no
// renderer is named.
func WithRenderers(reg *render.Registry) Option {
	return func(s *Server) {
		if reg != nil {
			s.renderers = reg
		}
	}
}

// WithLoader enables imports by location. Paths resolve inside the loader's
// fs.FS only (see loader.WithFileSystem); URLs need loader.WithHTTP. Without
// a loader, POST /import only accepts inline documents.
func WithLoader(l *loader.Loader) Option {
	return func(s *Server) {
		s.loader = l
	}
}

// Server serialises all session access behind one mutex.
type Server struct {
	mu        sync.Mutex
	session   *playground.Session
	renderers *render.Registry
	loader    *loader.Loader
	logger    *slog.Logger
}

// New wraps session.
func New(session *playground.Session, options ...Option) (*Server, error) {
	if session == nil {
		return nil, fmt.Errorf("server: session is required")
	}
	s := &Server{
		session: session,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range options {
		if opt != nil {
			opt(s)
		}
	}
	if s.renderers == nil {
		renderer, err := preview.New(preview.WithLogger(s.logger))
		if err != nil {
			return nil, fmt.Errorf("server: preview: %w", err)
		}
		reg, err := DefaultRenderers(renderer)
		if err != nil {
			return nil, err
		}
		s.renderers = reg
	}
	return s, nil
}

// DefaultRenderers registers html first, so it becomes the default, then the
// JSON Schema renderer.
func DefaultRenderers(html *preview.Renderer) (*render.Registry, error) {
	reg := render.NewRegistry()
	if err := reg.Register(html); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	if err := reg.Register(render.SchemaRenderer{}); err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}
	return reg, nil
}

// Handler returns the routed API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.logRequests)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/palette", s.handlePalette)
	r.Get("/renderers", s.handleRenderers)

	r.Route("/fields", func(r chi.Router) {
		r.Get("/", s.handleFields)
		r.Post("/", s.handleAddField)
		r.Put("/{index}", s.handleUpdateField)
		r.Delete("/{index}", s.handleDeleteField)
	})
	r.Post("/reorder", s.handleReorder)
	r.Post("/undo", s.handleUndo)
	r.Post("/redo", s.handleRedo)
	r.Post("/reset", s.handleReset)
	r.Get("/history", s.handleHistory)

	r.Get("/schema", s.handleSchema)
	r.Post("/import", s.handleImport)
	r.Post("/import/check", s.handleImportCheck)

	r.Get("/preview", s.handlePreview)
	r.Post("/preview", s.handlePreview)
	r.Post("/validate", s.handleValidate)
	r.Get("/openapi", s.handleOpenAPI)
	return r
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"bytes", ww.BytesWritten(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
