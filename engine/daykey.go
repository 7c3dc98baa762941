// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import "time"

// dayKeyLayout is the canonical date-key format used everywhere downstream
// of normalisation. Keys are date-only; chronological order equals
// lexicographic order, so string comparison is safe for tie-breaking.
const dayKeyLayout = "2006-01-02"

// parseDayKey parses an ISO date string into a UTC midnight time.
// Full timestamps are tolerated by truncating to the date part.
func parseDayKey(s string) (time.Time, bool) {
	if len(s) > len(dayKeyLayout) {
		s = s[:len(dayKeyLayout)]
	}
	t, err := time.Parse(dayKeyLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// dayKey formats a time as its canonical date key.
func dayKey(t time.Time) string {
	return t.Format(dayKeyLayout)
}

// daysBetween returns the plain day difference from a to b, zero when
// they are the same day; callers add 1 for inclusive spans. Both times
// must be UTC midnights.
func daysBetween(a, b time.Time) int {
	return int(b.Sub(a) / (24 * time.Hour))
}

// maxTime / minTime pick the later / earlier of two UTC midnights.
func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
