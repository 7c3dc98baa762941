// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package engine turns raw poll vote records into date recommendations.

Everything in this package is a pure function over in-memory data: no I/O,
no shared state, no errors. Malformed input degrades to empty or neutral
output because the engine sits inside a rendering path that must never
crash.

# Pipelines

Two mutually exclusive pipelines, selected by the poll's event type:

Discrete dates (general and meal events):

	voters := engine.Normalize(poll, votes)
	rankings := engine.RankDates(voters, poll.Dates)
	slot := engine.ResolveMealSlot(voters, poll, rankings[0].Date) // meal only

Trip windows (holiday events):

	voters := engine.Normalize(poll, votes)
	start, end, ok := engine.OrganiserWindow(poll)
	days := engine.BuildDayCounts(voters, start, end)
	window := engine.RecommendTripWindow(voters, start, end, minDays)
	months := engine.ProjectHeatMap(days, engine.MaxDayCount(days))

# Scoring

A date scores 2 per yes and 1 per maybe. No votes subtract 1 each, but only
once a date has 6 or more responders; below that a "no" is too noisy to
veto anything. Ties break on fewer no votes, then the earlier date.

# Trip search

The recommended window is found by exhaustive O(days²) search. A voter
counts as attending a window only when a single one of their preference
windows covers it in full, while the per-day heat map unions all windows.
That asymmetry is intentional: the map shows an optimistic overview, the
recommendation never proposes a trip nobody can take end to end.
*/
package engine
