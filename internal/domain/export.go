package domain

import "time"

// ExportRow is a single row in the timeline export.
// It is a flat, denormalized view: one row per photo, with the fields of the
// segment it belongs to repeated on every photo in that segment.
type ExportRow struct {
	// Segment fields, repeated for every photo in the segment.
	SegmentIndex int // zero-based, oldest first
	SegmentName  string
	IsTransit    bool
	TransitFrom  string // empty for stays
	TransitTo    string // empty for stays

	// Photo fields.
	Date     time.Time
	PhotoURL string
}
