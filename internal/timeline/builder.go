// Package timeline folds a date-ordered stream of photo records into stay
// and transit segments.
//
// The fold walks records oldest first and appends. For each record it
// compares against the current (last) segment, and the first matching rule
// wins:
//
//  1. the current segment is a stay at the same location: append the photo;
//  2. the current segment is a transit arriving at the record's location:
//     start a stay there;
//  3. the current segment's latest photo is from the previous calendar day:
//     start a transit from the current segment's origin to the record's
//     location;
//  4. otherwise start a new stay.
package timeline

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/fgridley/photo-journal/internal/calendar"
	"github.com/fgridley/photo-journal/internal/domain"
)

// Order selects how Build treats input that is not ascending by date.
type Order int

const (
	// OrderStrict rejects unsorted input with *domain.UnsortedInputError.
	OrderStrict Order = iota
	// OrderSort stable-sorts a copy of the input by calendar day before
	// folding. Records sharing a day keep their input order.
	OrderSort
)

// ParseOrder maps "strict" and "sort" to an Order.
func ParseOrder(s string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict":
		return OrderStrict, nil
	case "sort":
		return OrderSort, nil
	}
	return 0, fmt.Errorf("timeline: unknown order %q (want strict or sort)", s)
}

func (o Order) String() string {
	if o == OrderSort {
		return "sort"
	}
	return "strict"
}

// Result is the output of a Build.
type Result struct {
	// Segments is oldest first. Never nil.
	Segments []domain.Segment
	// Skipped lists records dropped for missing fields, in input order.
	Skipped []*domain.MalformedRecordError
}

// Builder converts photo records into segments. A Builder is immutable and
// safe for concurrent use.
type Builder struct {
	order Order
	log   *slog.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithOrder sets how unsorted input is handled. Default OrderStrict.
func WithOrder(o Order) Option {
	return func(b *Builder) { b.order = o }
}

// WithLogger sets the logger used to report skipped records.
// Default slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(b *Builder) { b.log = l }
}

// NewBuilder constructs a Builder.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{order: OrderStrict}
	for _, opt := range opts {
		opt(b)
	}
	if b.log == nil {
		b.log = slog.Default()
	}
	return b
}

// Build segments records. Records with an empty date, location, or photo URL
// are skipped and reported in Result.Skipped. With OrderStrict, the remaining
// records must be ascending by calendar day or Build returns *domain.UnsortedInputError
// and no segments.
func (b *Builder) Build(records []domain.PhotoRecord) (Result, error) {
	valid, skipped := b.screen(records)

	if b.order == OrderSort {
		slices.SortStableFunc(valid, func(x, y indexed) int {
			return calendar.DayDelta(y.rec.Date, x.rec.Date)
		})
	} else if err := checkAscending(valid); err != nil {
		return Result{}, err
	}

	acc := &accumulator{segments: make([]domain.Segment, 0, len(valid))}
	for _, v := range valid {
		acc.add(v.rec)
	}

	return Result{Segments: acc.segments, Skipped: skipped}, nil
}

// indexed pairs a record with its position in the caller's slice so errors
// can point back at the original input.
type indexed struct {
	idx int
	rec domain.PhotoRecord
}

// screen drops malformed records and returns the rest in a fresh slice.
func (b *Builder) screen(records []domain.PhotoRecord) ([]indexed, []*domain.MalformedRecordError) {
	valid := make([]indexed, 0, len(records))
	var skipped []*domain.MalformedRecordError
	for i, r := range records {
		if err := checkRecord(i, r); err != nil {
			b.log.Warn("skipping malformed photo record",
				"index", i,
				"field", err.Field,
				"id", r.ID,
			)
			skipped = append(skipped, err)
			continue
		}
		valid = append(valid, indexed{idx: i, rec: r})
	}
	return valid, skipped
}

func checkRecord(i int, r domain.PhotoRecord) *domain.MalformedRecordError {
	switch {
	case r.Date.IsZero():
		return &domain.MalformedRecordError{Index: i, Field: "date"}
	case strings.TrimSpace(r.LocationName) == "":
		return &domain.MalformedRecordError{Index: i, Field: "location_name"}
	case strings.TrimSpace(r.PhotoURL) == "":
		return &domain.MalformedRecordError{Index: i, Field: "photo_url"}
	}
	return nil
}

func checkAscending(valid []indexed) error {
	for i := 1; i < len(valid); i++ {
		prev, cur := valid[i-1].rec.Date, valid[i].rec.Date
		if calendar.DayDelta(prev, cur) < 0 {
			return &domain.UnsortedInputError{Index: valid[i].idx, Previous: prev, Current: cur}
		}
	}
	return nil
}

// accumulator is the fold state. Only the last element of segments is ever
// mutated; earlier segments are frozen.
type accumulator struct {
	segments []domain.Segment
}

func (a *accumulator) add(r domain.PhotoRecord) {
	photo := r.Photo()

	if len(a.segments) == 0 {
		a.segments = append(a.segments, domain.NewStay(r.LocationName, photo))
		return
	}
	cur := &a.segments[len(a.segments)-1]

	switch {
	case !cur.IsTransit && cur.Name == r.LocationName:
		cur.Photos = append(cur.Photos, photo)
	case cur.IsTransit && cur.TransitTo == r.LocationName:
		a.segments = append(a.segments, domain.NewStay(r.LocationName, photo))
	case followsLastPhoto(*cur, r):
		a.segments = append(a.segments, domain.NewTransit(cur.Origin(), r.LocationName, photo))
	default:
		a.segments = append(a.segments, domain.NewStay(r.LocationName, photo))
	}
}

// followsLastPhoto reports whether r was taken the calendar day after the
// latest photo in cur.
func followsLastPhoto(cur domain.Segment, r domain.PhotoRecord) bool {
	last, ok := cur.LastPhoto()
	return ok && calendar.IsNextDay(last.Date, r.Date)
}
