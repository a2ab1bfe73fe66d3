package service

import (
	"context"
	"fmt"

	"github.com/fgridley/photo-journal/internal/repo"
	"github.com/fgridley/photo-journal/internal/timeline"
)

// JournalService turns the stored photo records into a timeline.
type JournalService struct {
	repo    repo.PhotoRecordRepo
	builder *timeline.Builder
}

// NewJournalService constructs a JournalService that reads from r and
// segments with b.
func NewJournalService(r repo.PhotoRecordRepo, b *timeline.Builder) *JournalService {
	return &JournalService{repo: r, builder: b}
}

// Timeline loads every journal record and segments it.
// Returns a wrapped *domain.UnsortedInputError if the store hands back
// records out of order and the builder is strict.
func (s *JournalService) Timeline(ctx context.Context) (timeline.Result, error) {
	recs, err := s.repo.ListJournal(ctx)
	if err != nil {
		return timeline.Result{}, fmt.Errorf("service.JournalService.Timeline: %w", err)
	}

	res, err := s.builder.Build(recs)
	if err != nil {
		return timeline.Result{}, fmt.Errorf("service.JournalService.Timeline: %w", err)
	}
	return res, nil
}
