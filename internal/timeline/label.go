package timeline

import "github.com/fgridley/photo-journal/internal/domain"

// Placement is where a renderer pins a segment's label.
type Placement string

const (
	// PlacementSticky keeps the label in view while the segment scrolls.
	PlacementSticky Placement = "sticky"
	// PlacementBottom anchors the label to the end of the segment.
	PlacementBottom Placement = "bottom"
	// PlacementHidden means no label is drawn.
	PlacementHidden Placement = "hidden"
)

// Line is the stroke style of the timeline rail beside a segment.
type Line string

const (
	LineSolid  Line = "solid"
	LineDashed Line = "dashed"
)

// Label is what a renderer shows next to one segment.
type Label struct {
	Text      string
	Placement Placement
	Line      Line
}

// LabelFor returns the label for segments[i]. It looks ahead at
// segments[i+1]: a transit followed by another transit is labelled with its
// departure point at the bottom, so a chain of legs reads as a list of
// waypoints. A stay shows its name. Any other transit has no label.
//
// LabelFor panics if i is out of range.
func LabelFor(segments []domain.Segment, i int) Label {
	seg := segments[i]
	if !seg.IsTransit {
		return Label{Text: seg.Name, Placement: PlacementSticky, Line: LineSolid}
	}
	if i+1 < len(segments) && segments[i+1].IsTransit {
		return Label{Text: seg.TransitFrom, Placement: PlacementBottom, Line: LineDashed}
	}
	return Label{Placement: PlacementHidden, Line: LineDashed}
}

// Labels returns LabelFor for every segment.
func Labels(segments []domain.Segment) []Label {
	out := make([]Label, len(segments))
	for i := range segments {
		out[i] = LabelFor(segments, i)
	}
	return out
}
