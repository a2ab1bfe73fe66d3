package domain

// TransitSeparator joins the two ends of a transit segment name.
const TransitSeparator = " → "

// Segment is one entry of the timeline: either a stay at a single location
// or an inferred travel leg between two locations.
//
// For a stay, Name is the location and TransitFrom/TransitTo are empty.
// For a transit, Name is TransitFrom + TransitSeparator + TransitTo.
// Photos is never empty and is ordered by date ascending.
type Segment struct {
	Name        string
	IsTransit   bool
	TransitFrom string
	TransitTo   string
	Photos      []Photo
}

// NewStay starts a stay segment at location seeded with one photo.
func NewStay(location string, first Photo) Segment {
	return Segment{Name: location, Photos: []Photo{first}}
}

// NewTransit starts a transit segment from -> to seeded with one photo.
func NewTransit(from, to string, first Photo) Segment {
	return Segment{
		Name:        from + TransitSeparator + to,
		IsTransit:   true,
		TransitFrom: from,
		TransitTo:   to,
		Photos:      []Photo{first},
	}
}

// Origin is the location a journey leaving this segment departs from.
// A stay departs from its own location; a transit departs from where it
// arrived, so consecutive transits chain.
func (s Segment) Origin() string {
	if s.IsTransit {
		return s.TransitTo
	}
	return s.Name
}

// LastPhoto returns the most recent photo and false when Photos is empty.
func (s Segment) LastPhoto() (Photo, bool) {
	if len(s.Photos) == 0 {
		return Photo{}, false
	}
	return s.Photos[len(s.Photos)-1], true
}
