package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/fgridley/photo-journal/internal/domain"
)

// CreatePhotoRequest is the body of POST /photos.
type CreatePhotoRequest struct {
	Date         *openapi_types.Date `json:"date"`
	LocationName string              `json:"location_name"`
	PhotoURL     string              `json:"photo_url"`
}

// Photo is the API representation of a stored photo record.
type Photo struct {
	ID           openapi_types.UUID `json:"id"`
	Date         openapi_types.Date `json:"date"`
	LocationName string             `json:"location_name"`
	PhotoURL     string             `json:"photo_url"`
	CreatedAt    time.Time          `json:"created_at"`
}

// Pagination describes the page returned by a list endpoint.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// PhotoList is the body of GET /photos.
type PhotoList struct {
	Data       []Photo    `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// CreatePhoto handles POST /photos.
func (s *Server) CreatePhoto(w http.ResponseWriter, r *http.Request) {
	var body CreatePhotoRequest
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&body); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, requestBody("request body too large"))
			return
		}
		writeJSON(w, http.StatusBadRequest, requestBody("invalid JSON body"))
		return
	}

	rec := domain.PhotoRecord{
		LocationName: body.LocationName,
		PhotoURL:     body.PhotoURL,
	}
	if body.Date != nil {
		rec.Date = body.Date.Time
	}

	created, err := s.photos.Create(r.Context(), rec)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			writeJSON(w, http.StatusUnprocessableEntity, validationBody(err))
			return
		}
		writeInternal(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, photoToResponse(created))
}

// ListPhotos handles GET /photos.
// Supports ?page= and ?limit= query parameters (defaults: page=1, limit=20, max=100).
func (s *Server) ListPhotos(w http.ResponseWriter, r *http.Request) {
	page, err := optionalInt(r, "page")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("page must be an integer"))
		return
	}
	limit, err := optionalInt(r, "limit")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("limit must be an integer"))
		return
	}

	params := domain.NewPaginationParams(page, limit)
	recs, total, err := s.photos.ListPaged(r.Context(), params)
	if err != nil {
		writeInternal(w, r, err)
		return
	}

	data := make([]Photo, len(recs))
	for i, rec := range recs {
		data[i] = photoToResponse(rec)
	}
	writeJSON(w, http.StatusOK, PhotoList{
		Data: data,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetPhoto handles GET /photos/{photoId}.
func (s *Server) GetPhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := photoID(w, r)
	if !ok {
		return
	}

	rec, err := s.photos.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundBody("photo not found"))
			return
		}
		writeInternal(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, photoToResponse(rec))
}

// DeletePhoto handles DELETE /photos/{photoId}.
func (s *Server) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	id, ok := photoID(w, r)
	if !ok {
		return
	}

	if err := s.photos.Delete(r.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeJSON(w, http.StatusNotFound, notFoundBody("photo not found"))
			return
		}
		writeInternal(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// photoID parses the {photoId} path parameter, writing a 400 on failure.
func photoID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "photoId"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, requestBody("photoId must be a UUID"))
		return uuid.UUID{}, false
	}
	return id, true
}

// optionalInt reads an integer query parameter; absent means nil.
func optionalInt(r *http.Request, key string) (*int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

// photoToResponse converts a domain.PhotoRecord to its API representation.
func photoToResponse(rec domain.PhotoRecord) Photo {
	return Photo{
		ID:           openapi_types.UUID(rec.ID),
		Date:         openapi_types.Date{Time: rec.Date},
		LocationName: rec.LocationName,
		PhotoURL:     rec.PhotoURL,
		CreatedAt:    rec.CreatedAt,
	}
}
