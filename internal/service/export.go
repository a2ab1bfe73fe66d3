package service

import (
	"context"
	"fmt"

	"github.com/fgridley/photo-journal/internal/domain"
	"github.com/fgridley/photo-journal/internal/timeline"
)

// TimelineSource produces a segmented timeline. *JournalService satisfies it.
type TimelineSource interface {
	Timeline(ctx context.Context) (timeline.Result, error)
}

// ExportService flattens the timeline into one row per photo.
type ExportService struct {
	source TimelineSource
}

// NewExportService constructs an ExportService backed by src.
func NewExportService(src TimelineSource) *ExportService {
	return &ExportService{source: src}
}

// Export returns one ExportRow per photo across all segments, in timeline
// order. An empty timeline yields an empty, non-nil slice.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, error) {
	res, err := s.source.Timeline(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}
	return exportRows(res.Segments), nil
}

// exportRows flattens segments into export rows.
func exportRows(segments []domain.Segment) []domain.ExportRow {
	rows := make([]domain.ExportRow, 0, len(segments))
	for i, seg := range segments {
		for _, p := range seg.Photos {
			rows = append(rows, domain.ExportRow{
				SegmentIndex: i,
				SegmentName:  seg.Name,
				IsTransit:    seg.IsTransit,
				TransitFrom:  seg.TransitFrom,
				TransitTo:    seg.TransitTo,
				Date:         p.Date,
				PhotoURL:     p.URL,
			})
		}
	}
	return rows
}
