package handler

import (
	"errors"
	"net/http"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/fgridley/photo-journal/internal/domain"
	"github.com/fgridley/photo-journal/internal/timeline"
)

// Timeline is the body of GET /timeline.
type Timeline struct {
	Segments []Segment `json:"segments"`
	// Skipped counts stored records left out for missing fields.
	Skipped int `json:"skipped"`
}

// Segment is one stay or transit on the timeline, with the label a renderer
// should draw beside it.
type Segment struct {
	Name        string         `json:"name"`
	IsTransit   bool           `json:"is_transit"`
	TransitFrom string         `json:"transit_from,omitempty"`
	TransitTo   string         `json:"transit_to,omitempty"`
	Photos      []SegmentPhoto `json:"photos"`
	Label       SegmentLabel   `json:"label"`
	Line        string         `json:"line"`
}

// SegmentPhoto is a photo within a segment.
type SegmentPhoto struct {
	Date openapi_types.Date `json:"date"`
	URL  string             `json:"url"`
}

// SegmentLabel is the text and placement of a segment's timeline label.
type SegmentLabel struct {
	Text      string `json:"text"`
	Placement string `json:"placement"`
}

// GetTimeline handles GET /timeline.
func (s *Server) GetTimeline(w http.ResponseWriter, r *http.Request) {
	res, err := s.journal.Timeline(r.Context())
	if err != nil {
		var unsorted *domain.UnsortedInputError
		if errors.As(err, &unsorted) {
			writeJSON(w, http.StatusInternalServerError,
				ErrorResponse{Error: ErrorDetail{Code: "unsorted_input", Message: unsorted.Error()}})
			return
		}
		writeInternal(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, TimelineToResponse(res))
}

// TimelineToResponse converts a build result into its API representation.
// Exported so the CLI prints the same shape the API serves.
func TimelineToResponse(res timeline.Result) Timeline {
	labels := timeline.Labels(res.Segments)
	out := Timeline{
		Segments: make([]Segment, len(res.Segments)),
		Skipped:  len(res.Skipped),
	}
	for i, seg := range res.Segments {
		photos := make([]SegmentPhoto, len(seg.Photos))
		for j, p := range seg.Photos {
			photos[j] = SegmentPhoto{Date: openapi_types.Date{Time: p.Date}, URL: p.URL}
		}
		out.Segments[i] = Segment{
			Name:        seg.Name,
			IsTransit:   seg.IsTransit,
			TransitFrom: seg.TransitFrom,
			TransitTo:   seg.TransitTo,
			Photos:      photos,
			Label:       SegmentLabel{Text: labels[i].Text, Placement: string(labels[i].Placement)},
			Line:        string(labels[i].Line),
		}
	}
	return out
}
