// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/setthedate/planner/models"
)

// DefaultMinTripDays applies when the organiser gave neither an explicit
// minimum nor a proposed duration.
const DefaultMinTripDays = 2

// DurationToNights maps a proposed-duration enum to a night count.
// Recognised forms: "N_nights", "1_week", "2_weeks". "unlimited" and
// anything unrecognised report false.
func DurationToNights(v string) (int, bool) {
	switch v {
	case "1_week":
		return 7, true
	case "2_weeks":
		return 14, true
	}
	if rest, ok := strings.CutSuffix(v, "_nights"); ok {
		n, err := strconv.Atoi(rest)
		if err == nil && n >= 0 {
			return n, true
		}
	}
	return 0, false
}

// DeriveMinTripDays resolves the minimum trip length in days: an explicit
// option wins, then the proposed duration (N nights needs an N+1 day
// window), then the default of 2. A trip is never shorter than two days,
// so a configured minimum of 1 is raised to 2.
func DeriveMinTripDays(opts models.EventOptions) int {
	if opts.MinTripDays > 0 {
		return max(opts.MinTripDays, DefaultMinTripDays)
	}
	if nights, ok := DurationToNights(opts.ProposedDuration); ok && nights > 0 {
		return nights + 1
	}
	return DefaultMinTripDays
}

// OrganiserWindow derives the trip's outer date range from the poll's
// candidate dates: their minimum and maximum. Reports false when no
// candidate date parses.
func OrganiserWindow(poll models.Poll) (start, end time.Time, ok bool) {
	for _, d := range poll.Dates {
		t, valid := parseDayKey(d)
		if !valid {
			continue
		}
		if !ok {
			start, end, ok = t, t, true
			continue
		}
		start = minTime(start, t)
		end = maxTime(end, t)
	}
	return start, end, ok
}

// BuildDayCounts produces the per-day attendee map over the full organiser
// window. Voter windows are clipped to [start, end]; a voter counts at most
// once per day no matter how many of their windows cover it. Days nobody
// can make still appear, with a zero count.
func BuildDayCounts(voters []Voter, start, end time.Time) []models.DayAvailability {
	if end.Before(start) {
		return nil
	}

	n := daysBetween(start, end) + 1
	byDay := make([]map[string]string, n) // voter key -> name

	for _, v := range voters {
		for _, w := range v.Windows {
			// Clip to the organiser window; never extend.
			s := maxTime(w.Start, start)
			e := minTime(w.End, end)
			if s.After(e) {
				continue
			}
			for i := daysBetween(start, s); i <= daysBetween(start, e); i++ {
				if byDay[i] == nil {
					byDay[i] = make(map[string]string)
				}
				byDay[i][v.Key] = v.Name
			}
		}
	}

	out := make([]models.DayAvailability, n)
	for i := 0; i < n; i++ {
		names := make([]string, 0, len(byDay[i]))
		for _, name := range byDay[i] {
			names = append(names, name)
		}
		sort.Strings(names)
		out[i] = models.DayAvailability{
			Date:   dayKey(start.AddDate(0, 0, i)),
			Count:  len(byDay[i]),
			Voters: names,
		}
	}
	return out
}

// MaxDayCount returns the highest per-day count, for heat map scaling.
func MaxDayCount(days []models.DayAvailability) int {
	max := 0
	for _, d := range days {
		if d.Count > max {
			max = d.Count
		}
	}
	return max
}

// RecommendTripWindow searches every contiguous sub-range of the organiser
// window that meets the minimum length and returns the one the most voters
// can attend in full, or nil when no qualifying window has any attendee.
//
// A voter attends a window only if ONE of their preference windows covers
// it entirely; the per-day heat map unions windows instead. The asymmetry
// is deliberate: the map gives a permissive visual overview while the
// recommendation must be a stretch somebody can actually stay for.
//
// Ties break to the earliest start date, then to the shorter window. The
// search is an exhaustive O(days²) scan; organiser windows are weeks, not
// years, and determinism matters more than cleverness here.
func RecommendTripWindow(voters []Voter, start, end time.Time, minTripDays int) *models.TripWindow {
	if end.Before(start) {
		return nil
	}
	// The search floor is two days: a single date is an event, not a trip.
	if minTripDays < DefaultMinTripDays {
		minTripDays = DefaultMinTripDays
	}

	n := daysBetween(start, end) + 1
	var best *models.TripWindow
	bestCount := 0

	for i := 0; i < n; i++ {
		from := start.AddDate(0, 0, i)
		for j := i + minTripDays - 1; j < n; j++ {
			to := start.AddDate(0, 0, j)

			var attendees []string
			for _, v := range voters {
				for _, w := range v.Windows {
					if !w.Start.After(from) && !w.End.Before(to) {
						attendees = append(attendees, v.Name)
						break
					}
				}
			}
			if len(attendees) == 0 {
				continue
			}

			// Strictly-better keeps the earliest start, and for an
			// equal start the shortest window, since the scan visits
			// those first.
			if len(attendees) > bestCount {
				sort.Strings(attendees)
				days := j - i + 1
				best = &models.TripWindow{
					Start:     dayKey(from),
					End:       dayKey(to),
					Days:      days,
					Nights:    days - 1,
					Attendees: attendees,
				}
				bestCount = len(attendees)
			}
		}
	}
	return best
}

// PreferredTripDaysMode returns the most common preferred trip length in
// days across all voter window hints, or 0 when nobody gave one. Frequency
// wins; equal frequencies prefer the shorter trip.
func PreferredTripDaysMode(voters []Voter) int {
	freq := make(map[int]int)
	for _, v := range voters {
		for _, w := range v.Windows {
			if w.PreferredNights >= 0 {
				freq[w.PreferredNights+1]++
			}
		}
	}
	if len(freq) == 0 {
		return 0
	}

	mode := 0
	for days, count := range freq {
		if mode == 0 || count > freq[mode] || (count == freq[mode] && days < mode) {
			mode = days
		}
	}
	return mode
}
