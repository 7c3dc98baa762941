// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"time"

	"github.com/setthedate/planner/models"
)

// Heat map intensity weighting. Zero-count days keep a small fixed
// intensity so an empty cell stays visually distinguishable from "no data".
const (
	zeroIntensity  = 0.04
	baseIntensity  = 0.12
	rangeIntensity = 0.78
)

// ProjectHeatMap buckets the per-day attendee map into month-shaped
// calendar grids for presentation. Each bucket spans complete Monday-start
// weeks, so cells bleed into neighbouring months with InActiveMonth false.
// Pure data transform: no decisions are made here.
func ProjectHeatMap(days []models.DayAvailability, maxCount int) []models.HeatMapMonth {
	if len(days) == 0 {
		return nil
	}

	counts := make(map[string]int, len(days))
	for _, d := range days {
		counts[d.Date] = d.Count
	}

	first, ok := parseDayKey(days[0].Date)
	if !ok {
		return nil
	}
	last, ok := parseDayKey(days[len(days)-1].Date)
	if !ok {
		return nil
	}

	var months []models.HeatMapMonth
	for m := firstOfMonth(first); !m.After(last); m = m.AddDate(0, 1, 0) {
		gridStart := startOfWeek(m)
		gridEnd := endOfWeek(m.AddDate(0, 1, -1))

		var cells []models.HeatMapCell
		for d := gridStart; !d.After(gridEnd); d = d.AddDate(0, 0, 1) {
			count := counts[dayKey(d)]
			cells = append(cells, models.HeatMapCell{
				Date:          dayKey(d),
				Count:         count,
				InActiveMonth: d.Month() == m.Month() && d.Year() == m.Year(),
				Intensity:     intensityFor(count, maxCount),
			})
		}

		months = append(months, models.HeatMapMonth{
			Month: m.Format("2006-01"),
			Label: m.Format("January 2006"),
			Cells: cells,
		})
	}
	return months
}

// intensityFor maps a day's count to a colour weight in [0, 1].
func intensityFor(count, maxCount int) float64 {
	if count <= 0 || maxCount <= 0 {
		return zeroIntensity
	}
	ratio := float64(count) / float64(maxCount)
	if ratio > 1 {
		ratio = 1
	}
	v := baseIntensity + ratio*rangeIntensity
	if v > 1 {
		v = 1
	}
	return v
}

func firstOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// startOfWeek returns the Monday on or before t.
func startOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	return t.AddDate(0, 0, -offset)
}

// endOfWeek returns the Sunday on or after t.
func endOfWeek(t time.Time) time.Time {
	offset := (7 - int(t.Weekday())) % 7
	return t.AddDate(0, 0, offset)
}
