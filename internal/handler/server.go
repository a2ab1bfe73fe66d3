// Package handler implements the HTTP API for the photo journal.
// All handlers are methods on Server; they are split into resource files
// (health.go, photo.go, timeline.go, export.go) but share the same dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/fgridley/photo-journal/internal/domain"
	"github.com/fgridley/photo-journal/internal/timeline"
)

// PhotoServicer defines the photo record operations the handlers depend on.
// It is declared here, in the consumer, so tests can inject a mock without
// touching the database or service layer.
type PhotoServicer interface {
	Create(ctx context.Context, rec domain.PhotoRecord) (domain.PhotoRecord, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.PhotoRecord, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.PhotoRecord, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// JournalServicer produces the segmented timeline.
type JournalServicer interface {
	Timeline(ctx context.Context) (timeline.Result, error)
}

// ExportServicer flattens the timeline for download.
type ExportServicer interface {
	Export(ctx context.Context) ([]domain.ExportRow, error)
}

// Server holds the dependencies shared by every handler.
type Server struct {
	photos  PhotoServicer
	journal JournalServicer
	export  ExportServicer
}

// NewServer constructs the Server with all its dependencies.
func NewServer(photos PhotoServicer, journal JournalServicer, export ExportServicer) *Server {
	return &Server{photos: photos, journal: journal, export: export}
}

// Routes returns a chi router with every endpoint registered.
// Cross-cutting middleware (logging, CORS, body limits) is applied by the
// caller in main.go.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/timeline", s.GetTimeline)
	r.Get("/timeline/export", s.GetExport)

	r.Route("/photos", func(r chi.Router) {
		r.Get("/", s.ListPhotos)
		r.Post("/", s.CreatePhoto)
		r.Get("/{photoId}", s.GetPhoto)
		r.Delete("/{photoId}", s.DeletePhoto)
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, notFoundBody("route not found"))
	})
	return r
}
