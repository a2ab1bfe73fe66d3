// Package calendar provides whole-day arithmetic on time.Time values.
//
// Both operands are reduced to their calendar day in their own location
// before comparing, so a DST transition or a few hours of timestamp jitter
// never yields a fractional day.
package calendar

import "time"

// Midnight returns the start of t's calendar day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DayDelta returns the number of midnight boundaries crossed going from a
// to b. It is negative when b falls on an earlier day than a.
func DayDelta(a, b time.Time) int {
	// Re-anchor both days in UTC so every day is exactly 24h long.
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	da := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	db := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(db.Sub(da).Hours() / 24)
}

// IsNextDay reports whether b falls on the calendar day immediately after a.
func IsNextDay(a, b time.Time) bool {
	return DayDelta(a, b) == 1
}
