// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setthedate/planner/models"
)

func day(s string) time.Time {
	t, ok := parseDayKey(s)
	if !ok {
		panic("bad test date: " + s)
	}
	return t
}

func tripVoter(name string, windows ...Window) Voter {
	return Voter{Key: name, Name: name, Windows: windows}
}

func window(start, end string) Window {
	return Window{Start: day(start), End: day(end), PreferredNights: -1}
}

func TestDurationToNights(t *testing.T) {
	tests := []struct {
		in     string
		nights int
		ok     bool
	}{
		{"2_nights", 2, true},
		{"5_nights", 5, true},
		{"10_nights", 10, true},
		{"1_week", 7, true},
		{"2_weeks", 14, true},
		{"unlimited", 0, false},
		{"", 0, false},
		{"x_nights", 0, false},
		{"fortnight", 0, false},
	}
	for _, tt := range tests {
		nights, ok := DurationToNights(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.Equal(t, tt.nights, nights, "input %q", tt.in)
		}
	}
}

func TestDeriveMinTripDays(t *testing.T) {
	// Explicit day count wins over everything.
	assert.Equal(t, 4, DeriveMinTripDays(models.EventOptions{
		MinTripDays:      4,
		ProposedDuration: "10_nights",
	}))

	// 5 nights needs a 6-day window.
	assert.Equal(t, 6, DeriveMinTripDays(models.EventOptions{ProposedDuration: "5_nights"}))

	// Default when nothing is configured.
	assert.Equal(t, 2, DeriveMinTripDays(models.EventOptions{}))
	assert.Equal(t, 2, DeriveMinTripDays(models.EventOptions{ProposedDuration: "unlimited"}))

	// An explicit minimum of 1 is raised to the two-day floor.
	assert.Equal(t, 2, DeriveMinTripDays(models.EventOptions{MinTripDays: 1}))
}

func TestOrganiserWindow(t *testing.T) {
	poll := models.Poll{Dates: []string{"2024-08-05", "2024-08-01", "garbage", "2024-08-10"}}
	start, end, ok := OrganiserWindow(poll)
	require.True(t, ok)
	assert.Equal(t, "2024-08-01", dayKey(start))
	assert.Equal(t, "2024-08-10", dayKey(end))

	_, _, ok = OrganiserWindow(models.Poll{Dates: []string{"garbage"}})
	assert.False(t, ok)
}

func TestBuildDayCountsClipsToOrganiserWindow(t *testing.T) {
	voters := []Voter{tripVoter("Alice", window("2024-07-01", "2024-07-31"))}

	days := BuildDayCounts(voters, day("2024-07-10"), day("2024-07-20"))
	require.Len(t, days, 11)
	assert.Equal(t, "2024-07-10", days[0].Date)
	assert.Equal(t, "2024-07-20", days[10].Date)
	for _, d := range days {
		assert.Equal(t, 1, d.Count, "day %s", d.Date)
		assert.Equal(t, []string{"Alice"}, d.Voters)
	}
}

func TestBuildDayCountsVoterCountsOncePerDay(t *testing.T) {
	// Two overlapping windows from the same voter must not double-count.
	voters := []Voter{tripVoter("Alice",
		window("2024-07-01", "2024-07-05"),
		window("2024-07-03", "2024-07-08"),
	)}

	days := BuildDayCounts(voters, day("2024-07-01"), day("2024-07-08"))
	for _, d := range days {
		assert.Equal(t, 1, d.Count, "day %s", d.Date)
	}
}

func TestBuildDayCountsZeroDaysRemain(t *testing.T) {
	voters := []Voter{tripVoter("Alice", window("2024-07-03", "2024-07-04"))}

	days := BuildDayCounts(voters, day("2024-07-01"), day("2024-07-05"))
	require.Len(t, days, 5)
	assert.Equal(t, 0, days[0].Count)
	assert.Equal(t, 1, days[2].Count)
	assert.Equal(t, 0, days[4].Count)
	assert.Equal(t, 1, MaxDayCount(days))
}

func TestRecommendTripWindowEndToEnd(t *testing.T) {
	// Organiser window 08-01..08-10, min length 3. Voter A covers
	// 08-02..08-06, voter B covers 08-04..08-09. The only 3-day window
	// both can attend in full is 08-04..08-06; longer windows lose one
	// of them and must not win.
	voters := []Voter{
		tripVoter("Alice", window("2024-08-02", "2024-08-06")),
		tripVoter("Bob", window("2024-08-04", "2024-08-09")),
	}

	got := RecommendTripWindow(voters, day("2024-08-01"), day("2024-08-10"), 3)
	require.NotNil(t, got)
	assert.Equal(t, "2024-08-04", got.Start)
	assert.Equal(t, "2024-08-06", got.End)
	assert.Equal(t, 3, got.Days)
	assert.Equal(t, 2, got.Nights)
	assert.Equal(t, []string{"Alice", "Bob"}, got.Attendees)
}

func TestRecommendTripWindowMinLengthUnsatisfiable(t *testing.T) {
	voters := []Voter{tripVoter("Alice", window("2024-08-01", "2024-08-05"))}

	// 5-day organiser window with a 6-day minimum: nothing qualifies.
	got := RecommendTripWindow(voters, day("2024-08-01"), day("2024-08-05"), 6)
	assert.Nil(t, got)
}

func TestRecommendTripWindowSingleDayOrganiserWindow(t *testing.T) {
	voters := []Voter{tripVoter("Alice", window("2024-08-01", "2024-08-01"))}

	// A single-day organiser window can never host a stay: even a
	// permissive minimum cannot shrink a trip below two days.
	start := day("2024-08-01")
	assert.Nil(t, RecommendTripWindow(voters, start, start, 2))
	assert.Nil(t, RecommendTripWindow(voters, start, start, 1))
}

func TestRecommendTripWindowMinimumFloorsAtTwoDays(t *testing.T) {
	voters := []Voter{tripVoter("Alice", window("2024-08-01", "2024-08-02"))}

	// A minimum of 1 must not produce a single-day recommendation.
	got := RecommendTripWindow(voters, day("2024-08-01"), day("2024-08-03"), 1)
	require.NotNil(t, got)
	assert.Equal(t, 2, got.Days)
	assert.Equal(t, "2024-08-01", got.Start)
	assert.Equal(t, "2024-08-02", got.End)
}

func TestRecommendTripWindowTieBreaksEarliestStart(t *testing.T) {
	// Two disjoint single-attendee stretches; the earlier one must win.
	voters := []Voter{
		tripVoter("Late", window("2024-08-06", "2024-08-08")),
		tripVoter("Early", window("2024-08-01", "2024-08-03")),
	}

	got := RecommendTripWindow(voters, day("2024-08-01"), day("2024-08-10"), 3)
	require.NotNil(t, got)
	assert.Equal(t, "2024-08-01", got.Start)
	assert.Equal(t, []string{"Early"}, got.Attendees)
}

func TestRecommendTripWindowRequiresSingleCoveringWindow(t *testing.T) {
	// A voter split across two back-to-back windows shows up on every day
	// of the heat map, but cannot attend the full stretch in one go, so
	// no recommendation may be produced. The per-day/per-window asymmetry
	// is intentional.
	voters := []Voter{tripVoter("Alice",
		window("2024-08-01", "2024-08-02"),
		window("2024-08-03", "2024-08-04"),
	)}

	start, end := day("2024-08-01"), day("2024-08-04")

	days := BuildDayCounts(voters, start, end)
	for _, d := range days {
		assert.Equal(t, 1, d.Count, "heat map should union windows per day")
	}

	assert.Nil(t, RecommendTripWindow(voters, start, end, 4),
		"no single window covers the full stretch")
}

func TestRecommendTripWindowDeterministic(t *testing.T) {
	voters := []Voter{
		tripVoter("Alice", window("2024-08-02", "2024-08-06")),
		tripVoter("Bob", window("2024-08-04", "2024-08-09")),
		tripVoter("Cara", window("2024-08-01", "2024-08-10")),
	}

	first := RecommendTripWindow(voters, day("2024-08-01"), day("2024-08-10"), 2)
	require.NotNil(t, first)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, RecommendTripWindow(voters, day("2024-08-01"), day("2024-08-10"), 2))
	}
}

func TestPreferredTripDaysMode(t *testing.T) {
	voters := []Voter{
		tripVoter("A", Window{Start: day("2024-08-01"), End: day("2024-08-05"), PreferredNights: 4}),
		tripVoter("B", Window{Start: day("2024-08-01"), End: day("2024-08-05"), PreferredNights: 4}),
		tripVoter("C", Window{Start: day("2024-08-01"), End: day("2024-08-08"), PreferredNights: 6}),
		tripVoter("D", window("2024-08-01", "2024-08-03")), // no hint
	}

	// 4 nights twice, 6 nights once: mode is 5 days.
	assert.Equal(t, 5, PreferredTripDaysMode(voters))

	// No hints at all.
	assert.Equal(t, 0, PreferredTripDaysMode([]Voter{tripVoter("D", window("2024-08-01", "2024-08-03"))}))

	// Equal frequency prefers the shorter trip.
	tie := []Voter{
		tripVoter("A", Window{Start: day("2024-08-01"), End: day("2024-08-09"), PreferredNights: 7}),
		tripVoter("B", Window{Start: day("2024-08-01"), End: day("2024-08-05"), PreferredNights: 3}),
	}
	assert.Equal(t, 4, PreferredTripDaysMode(tie))
}
