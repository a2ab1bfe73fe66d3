package timeline_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fgridley/photo-journal/internal/domain"
	"github.com/fgridley/photo-journal/internal/timeline"
)

// ---- helpers ---------------------------------------------------------------

var d1 = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

// day returns d1 plus n calendar days.
func day(n int) time.Time {
	return d1.AddDate(0, 0, n)
}

func rec(date time.Time, location, url string) domain.PhotoRecord {
	return domain.PhotoRecord{Date: date, LocationName: location, PhotoURL: url}
}

func urls(s domain.Segment) []string {
	out := make([]string, len(s.Photos))
	for i, p := range s.Photos {
		out[i] = p.URL
	}
	return out
}

func build(t *testing.T, records ...domain.PhotoRecord) []domain.Segment {
	t.Helper()
	res, err := timeline.NewBuilder(timeline.WithLogger(discardLogger())).Build(records)
	require.NoError(t, err)
	return res.Segments
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
}

func assertStay(t *testing.T, s domain.Segment, name string, wantURLs ...string) {
	t.Helper()
	assert.Equal(t, name, s.Name)
	assert.False(t, s.IsTransit)
	assert.Empty(t, s.TransitFrom)
	assert.Empty(t, s.TransitTo)
	assert.Equal(t, wantURLs, urls(s))
}

func assertTransit(t *testing.T, s domain.Segment, from, to string, wantURLs ...string) {
	t.Helper()
	assert.Equal(t, from+" → "+to, s.Name)
	assert.True(t, s.IsTransit)
	assert.Equal(t, from, s.TransitFrom)
	assert.Equal(t, to, s.TransitTo)
	assert.Equal(t, wantURLs, urls(s))
}

// ---- scenarios -------------------------------------------------------------

func TestBuild_Empty(t *testing.T) {
	got := build(t)

	assert.NotNil(t, got, "should return empty slice, not nil")
	assert.Empty(t, got)
}

func TestBuild_SingleRecord(t *testing.T) {
	got := build(t, rec(day(0), "Tokyo", "u1"))

	require.Len(t, got, 1)
	assertStay(t, got[0], "Tokyo", "u1")
	assert.True(t, got[0].Photos[0].Date.Equal(day(0)))
}

func TestBuild_NextDayNewLocation_InfersTransit(t *testing.T) {
	got := build(t,
		rec(day(0), "Tokyo", "u1"),
		rec(day(1), "Osaka", "u2"),
	)

	require.Len(t, got, 2)
	assertStay(t, got[0], "Tokyo", "u1")
	assertTransit(t, got[1], "Tokyo", "Osaka", "u2")
}

func TestBuild_ArrivalAtTransitDestination_StartsStay(t *testing.T) {
	got := build(t,
		rec(day(0), "Tokyo", "u1"),
		rec(day(1), "Osaka", "u2"),
		rec(day(2), "Osaka", "u3"),
	)

	require.Len(t, got, 3)
	assertStay(t, got[0], "Tokyo", "u1")
	assertTransit(t, got[1], "Tokyo", "Osaka", "u2")
	assertStay(t, got[2], "Osaka", "u3")
}

func TestBuild_MultiDayGap_NoTransit(t *testing.T) {
	got := build(t,
		rec(day(0), "Tokyo", "u1"),
		rec(day(5), "Kyoto", "u2"),
	)

	require.Len(t, got, 2)
	assertStay(t, got[0], "Tokyo", "u1")
	assertStay(t, got[1], "Kyoto", "u2")
}

func TestBuild_SameDaySameLocation_Merges(t *testing.T) {
	got := build(t,
		rec(day(0), "Tokyo", "u1"),
		rec(day(0), "Tokyo", "u2"),
	)

	require.Len(t, got, 1)
	assertStay(t, got[0], "Tokyo", "u1", "u2")
}

func TestBuild_SameDayNewLocation_NewStay(t *testing.T) {
	got := build(t,
		rec(day(0), "Tokyo", "u1"),
		rec(day(0), "Yokohama", "u2"),
	)

	require.Len(t, got, 2)
	assertStay(t, got[0], "Tokyo", "u1")
	assertStay(t, got[1], "Yokohama", "u2")
}

func TestBuild_MultiDayStay_MergesAcrossDays(t *testing.T) {
	got := build(t,
		rec(day(0), "Tokyo", "u1"),
		rec(day(1), "Tokyo", "u2"),
		rec(day(3), "Tokyo", "u3"),
	)

	require.Len(t, got, 1)
	assertStay(t, got[0], "Tokyo", "u1", "u2", "u3")
}

// TestBuild_TransitMeasuredFromLatestPhoto verifies the day-gap check uses the
// most recent photo in the current stay, not the first.
func TestBuild_TransitMeasuredFromLatestPhoto(t *testing.T) {
	got := build(t,
		rec(day(0), "Tokyo", "u1"),
		rec(day(3), "Tokyo", "u2"),
		rec(day(4), "Osaka", "u3"),
	)

	require.Len(t, got, 2)
	assertStay(t, got[0], "Tokyo", "u1", "u2")
	assertTransit(t, got[1], "Tokyo", "Osaka", "u3")
}

func TestBuild_ConsecutiveTransits_Chain(t *testing.T) {
	got := build(t,
		rec(day(0), "Tokyo", "u1"),
		rec(day(1), "Nagoya", "u2"),
		rec(day(2), "Kyoto", "u3"),
		rec(day(3), "Kyoto", "u4"),
	)

	require.Len(t, got, 4)
	assertStay(t, got[0], "Tokyo", "u1")
	assertTransit(t, got[1], "Tokyo", "Nagoya", "u2")
	assertTransit(t, got[2], "Nagoya", "Kyoto", "u3")
	assertStay(t, got[3], "Kyoto", "u4")
}

func TestBuild_LongTransitChain(t *testing.T) {
	got := build(t,
		rec(day(0), "Tokyo", "u1"),
		rec(day(1), "Shizuoka", "u2"),
		rec(day(2), "Nagoya", "u3"),
		rec(day(3), "Kyoto", "u4"),
		rec(day(4), "Osaka", "u5"),
	)

	require.Len(t, got, 5)
	assertStay(t, got[0], "Tokyo", "u1")
	assertTransit(t, got[1], "Tokyo", "Shizuoka", "u2")
	assertTransit(t, got[2], "Shizuoka", "Nagoya", "u3")
	assertTransit(t, got[3], "Nagoya", "Kyoto", "u4")
	assertTransit(t, got[4], "Kyoto", "Osaka", "u5")
}

// TestBuild_TransitDestinationSameDay_StartsStay verifies that arriving at a
// transit's destination starts a stay regardless of the day gap.
func TestBuild_TransitDestinationSameDay_StartsStay(t *testing.T) {
	got := build(t,
		rec(day(0), "Tokyo", "u1"),
		rec(day(1), "Osaka", "u2"),
		rec(day(1), "Osaka", "u3"),
	)

	require.Len(t, got, 3)
	assertTransit(t, got[1], "Tokyo", "Osaka", "u2")
	assertStay(t, got[2], "Osaka", "u3")
}

func TestBuild_TransitThenUnrelatedSameDay_NewStay(t *testing.T) {
	got := build(t,
		rec(day(0), "Tokyo", "u1"),
		rec(day(1), "Osaka", "u2"),
		rec(day(1), "Kobe", "u3"),
	)

	require.Len(t, got, 3)
	assertTransit(t, got[1], "Tokyo", "Osaka", "u2")
	assertStay(t, got[2], "Kobe", "u3")
}

func TestBuild_ReturnToEarlierLocation_IsNewStay(t *testing.T) {
	got := build(t,
		rec(day(0), "Tokyo", "u1"),
		rec(day(0), "Yokohama", "u2"),
		rec(day(0), "Tokyo", "u3"),
	)

	require.Len(t, got, 3)
	assertStay(t, got[0], "Tokyo", "u1")
	assertStay(t, got[1], "Yokohama", "u2")
	assertStay(t, got[2], "Tokyo", "u3")
}

// TestBuild_SubDayTimestamps verifies that the day-gap test counts calendar
// days: 23:50 to 00:10 is one day, 00:10 to 23:50 the next day is also one.
func TestBuild_SubDayTimestamps(t *testing.T) {
	late := time.Date(2025, 6, 1, 23, 50, 0, 0, time.UTC)
	early := time.Date(2025, 6, 2, 0, 10, 0, 0, time.UTC)

	got := build(t,
		rec(late, "Tokyo", "u1"),
		rec(early, "Osaka", "u2"),
	)

	require.Len(t, got, 2)
	assertTransit(t, got[1], "Tokyo", "Osaka", "u2")
}

// ---- properties ------------------------------------------------------------

// TestBuild_ConcatenationIsNotAssociative documents that building two sorted
// halves separately does not equal building the whole: the transit spanning
// the split point is lost.
func TestBuild_ConcatenationIsNotAssociative(t *testing.T) {
	first := []domain.PhotoRecord{rec(day(0), "Tokyo", "u1")}
	second := []domain.PhotoRecord{rec(day(1), "Osaka", "u2")}

	whole := build(t, append(append([]domain.PhotoRecord{}, first...), second...)...)
	split := append(build(t, first...), build(t, second...)...)

	require.Len(t, whole, 2)
	require.Len(t, split, 2)
	assert.True(t, whole[1].IsTransit)
	assert.False(t, split[1].IsTransit)
	assert.NotEqual(t, whole, split)
}

func TestBuild_Invariants(t *testing.T) {
	records := []domain.PhotoRecord{
		rec(day(0), "Tokyo", "u1"),
		rec(day(0), "Tokyo", "u2"),
		rec(day(1), "Hakone", "u3"),
		rec(day(2), "Nagoya", "u4"),
		rec(day(2), "Nagoya", "u5"),
		rec(day(3), "Nagoya", "u6"),
		rec(day(4), "Kyoto", "u7"),
		rec(day(9), "Osaka", "u8"),
		rec(day(9), "Kobe", "u9"),
		rec(day(10), "Hiroshima", "u10"),
	}

	got := build(t, records...)

	var (
		prev  time.Time
		total int
	)
	for _, s := range got {
		require.NotEmpty(t, s.Photos, "segment %q has no photos", s.Name)
		if s.IsTransit {
			assert.NotEmpty(t, s.TransitFrom)
			assert.NotEmpty(t, s.TransitTo)
			assert.Equal(t, s.TransitFrom+domain.TransitSeparator+s.TransitTo, s.Name)
		} else {
			assert.Empty(t, s.TransitFrom)
			assert.Empty(t, s.TransitTo)
		}
		for _, p := range s.Photos {
			assert.False(t, p.Date.Before(prev), "photo %s out of order", p.URL)
			prev = p.Date
			total++
		}
	}
	assert.Equal(t, len(records), total, "every valid record lands in exactly one segment")
}

// TestBuild_ResultDoesNotShareInput verifies that editing a returned segment
// leaves the caller's records, and any later build from them, unchanged.
func TestBuild_ResultDoesNotShareInput(t *testing.T) {
	b := timeline.NewBuilder(
		timeline.WithOrder(timeline.OrderSort),
		timeline.WithLogger(discardLogger()),
	)
	input := []domain.PhotoRecord{
		rec(day(1), "Osaka", "u2"),
		rec(day(0), "Tokyo", "u1"),
	}
	before := slices.Clone(input)

	first, err := b.Build(input)
	require.NoError(t, err)
	require.Len(t, first.Segments, 2)

	first.Segments[0].Photos[0].URL = "edited"
	first.Segments[0].Photos[0].Date = day(9)
	first.Segments[1].Photos = append(first.Segments[1].Photos, domain.Photo{URL: "extra"})
	first.Segments[1].TransitTo = "Nara"

	assert.Equal(t, before, input)

	second, err := b.Build(input)
	require.NoError(t, err)
	require.Len(t, second.Segments, 2)
	assertStay(t, second.Segments[0], "Tokyo", "u1")
	assertTransit(t, second.Segments[1], "Tokyo", "Osaka", "u2")
}

func TestBuild_ConcurrentCallsShareBuilder(t *testing.T) {
	b := timeline.NewBuilder(timeline.WithLogger(discardLogger()))
	records := []domain.PhotoRecord{
		rec(day(0), "Tokyo", "u1"),
		rec(day(1), "Osaka", "u2"),
		rec(day(2), "Osaka", "u3"),
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := b.Build(records)
			assert.NoError(t, err)
			assert.Len(t, res.Segments, 3)
		}()
	}
	wg.Wait()
}

// ---- malformed input -------------------------------------------------------

func TestBuild_MalformedRecordsSkippedAndLogged(t *testing.T) {
	var buf bytes.Buffer
	b := timeline.NewBuilder(timeline.WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))))

	res, err := b.Build([]domain.PhotoRecord{
		rec(day(0), "Tokyo", "u1"),
		rec(time.Time{}, "Tokyo", "no-date"),
		rec(day(0), "   ", "no-location"),
		rec(day(0), "Tokyo", ""),
		rec(day(0), "Tokyo", "u2"),
	})

	require.NoError(t, err)
	require.Len(t, res.Segments, 1)
	assertStay(t, res.Segments[0], "Tokyo", "u1", "u2")

	require.Len(t, res.Skipped, 3)
	assert.Equal(t, 1, res.Skipped[0].Index)
	assert.Equal(t, "date", res.Skipped[0].Field)
	assert.Equal(t, "location_name", res.Skipped[1].Field)
	assert.Equal(t, "photo_url", res.Skipped[2].Field)
	for _, s := range res.Skipped {
		assert.ErrorIs(t, s, domain.ErrMalformedRecord)
	}

	var entry map[string]any
	line, _, _ := bytes.Cut(buf.Bytes(), []byte("\n"))
	require.NoError(t, json.Unmarshal(line, &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.EqualValues(t, 1, entry["index"])
	assert.Equal(t, "date", entry["field"])
}

// ---- ordering --------------------------------------------------------------

func TestBuild_Strict_RejectsUnsorted(t *testing.T) {
	b := timeline.NewBuilder(timeline.WithLogger(discardLogger()))

	res, err := b.Build([]domain.PhotoRecord{
		rec(day(0), "Tokyo", "u1"),
		rec(day(2), "Osaka", "u2"),
		rec(day(1), "Kyoto", "u3"),
	})

	require.ErrorIs(t, err, domain.ErrUnsortedInput)
	var unsorted *domain.UnsortedInputError
	require.ErrorAs(t, err, &unsorted)
	assert.Equal(t, 2, unsorted.Index)
	assert.True(t, unsorted.Previous.Equal(day(2)))
	assert.True(t, unsorted.Current.Equal(day(1)))
	assert.Nil(t, res.Segments)
}

// TestBuild_Strict_IgnoresTimeOfDay verifies that same-day records whose
// timestamps run backwards are still considered sorted.
func TestBuild_Strict_IgnoresTimeOfDay(t *testing.T) {
	evening := time.Date(2025, 6, 1, 20, 0, 0, 0, time.UTC)
	morning := time.Date(2025, 6, 1, 8, 0, 0, 0, time.UTC)

	got := build(t,
		rec(evening, "Tokyo", "u1"),
		rec(morning, "Tokyo", "u2"),
	)

	require.Len(t, got, 1)
	assertStay(t, got[0], "Tokyo", "u1", "u2")
}

// TestBuild_Strict_IndexPointsAtOriginalInput verifies that skipped records
// do not shift the index reported for unsorted input.
func TestBuild_Strict_IndexPointsAtOriginalInput(t *testing.T) {
	b := timeline.NewBuilder(timeline.WithLogger(discardLogger()))

	_, err := b.Build([]domain.PhotoRecord{
		rec(day(3), "Tokyo", "u1"),
		rec(day(0), "", "u2"),
		rec(day(1), "Osaka", "u3"),
	})

	var unsorted *domain.UnsortedInputError
	require.ErrorAs(t, err, &unsorted)
	assert.Equal(t, 2, unsorted.Index)
}

func TestBuild_Sort_ReordersStably(t *testing.T) {
	b := timeline.NewBuilder(
		timeline.WithOrder(timeline.OrderSort),
		timeline.WithLogger(discardLogger()),
	)
	input := []domain.PhotoRecord{
		rec(day(1), "Osaka", "u3"),
		rec(day(0), "Tokyo", "u1"),
		rec(day(0), "Tokyo", "u2"),
	}

	res, err := b.Build(input)

	require.NoError(t, err)
	require.Len(t, res.Segments, 2)
	assertStay(t, res.Segments[0], "Tokyo", "u1", "u2")
	assertTransit(t, res.Segments[1], "Tokyo", "Osaka", "u3")
	assert.Equal(t, "u3", input[0].PhotoURL, "caller's slice must not be reordered")
}

func TestParseOrder(t *testing.T) {
	o, err := timeline.ParseOrder("strict")
	require.NoError(t, err)
	assert.Equal(t, timeline.OrderStrict, o)

	o, err = timeline.ParseOrder(" SORT ")
	require.NoError(t, err)
	assert.Equal(t, timeline.OrderSort, o)
	assert.Equal(t, "sort", o.String())

	_, err = timeline.ParseOrder("reverse")
	assert.ErrorContains(t, err, "reverse")
}
