// Package service contains the business logic for the photo journal.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
	"github.com/google/uuid"

	"github.com/fgridley/photo-journal/internal/calendar"
	"github.com/fgridley/photo-journal/internal/domain"
	"github.com/fgridley/photo-journal/internal/repo"
)

// PhotoService implements business logic for photo record operations.
type PhotoService struct {
	repo     repo.PhotoRecordRepo
	validate *validator.Validate
}

// NewPhotoService constructs a PhotoService backed by the provided repo.
func NewPhotoService(r repo.PhotoRecordRepo) *PhotoService {
	return &PhotoService{repo: r, validate: newValidator()}
}

// Create validates and persists a new photo record. The date is truncated to
// its calendar day before storing.
// Returns domain.ErrValidation if input violates business rules.
func (s *PhotoService) Create(ctx context.Context, rec domain.PhotoRecord) (domain.PhotoRecord, error) {
	rec.LocationName = strings.TrimSpace(rec.LocationName)
	rec.PhotoURL = strings.TrimSpace(rec.PhotoURL)
	if err := s.validatePhotoRecord(rec); err != nil {
		return domain.PhotoRecord{}, fmt.Errorf("service.PhotoService.Create: %w", err)
	}
	rec.Date = calendar.Midnight(rec.Date)

	result, err := s.repo.Create(ctx, rec)
	if err != nil {
		return domain.PhotoRecord{}, fmt.Errorf("service.PhotoService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single photo record.
// Returns domain.ErrNotFound if it does not exist.
func (s *PhotoService) GetByID(ctx context.Context, id uuid.UUID) (domain.PhotoRecord, error) {
	result, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.PhotoRecord{}, fmt.Errorf("service.PhotoService.GetByID: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of photo records, newest first, and the total count.
// Always returns a non-nil slice so callers can safely range over it.
func (s *PhotoService) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.PhotoRecord, int64, error) {
	recs, total, err := s.repo.ListPaged(ctx, p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.PhotoService.ListPaged: %w", err)
	}
	if recs == nil {
		recs = []domain.PhotoRecord{}
	}
	return recs, total, nil
}

// Delete removes a photo record.
// Returns domain.ErrNotFound if it does not exist.
func (s *PhotoService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.PhotoService.Delete: %w", err)
	}
	return nil
}

// newValidator returns a validator that reports fields by their json name and
// understands the non-standard notblank tag.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
	// Only fails if the tag name is already taken.
	_ = v.RegisterValidation("notblank", validators.NotBlank)
	return v
}

// validatePhotoRecord enforces the struct tags on domain.PhotoRecord:
//   - date is required;
//   - location_name must be non-blank;
//   - photo_url must be an absolute URL.
//
// The first failing field is reported, wrapped in domain.ErrValidation.
func (s *PhotoService) validatePhotoRecord(rec domain.PhotoRecord) error {
	err := s.validate.Struct(rec)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required", "notblank":
		return fmt.Errorf("%w: %s is required", domain.ErrValidation, fe.Field())
	case "url":
		return fmt.Errorf("%w: %s must be a valid URL", domain.ErrValidation, fe.Field())
	}
	return fmt.Errorf("%w: %s is invalid", domain.ErrValidation, fe.Field())
}
