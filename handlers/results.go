// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/setthedate/planner/cliparse"
	"github.com/setthedate/planner/engine"
	"github.com/setthedate/planner/middleware"
	"github.com/setthedate/planner/models"
)

type ResultsHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewResultsHandler(db *sql.DB, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{db: db, cfg: cfg}
}

// GetResults handles GET /polls/:id/results
// Ranks the candidate dates for general and meal events. Holiday polls
// have no discrete candidates to rank; they get 409 pointing at the
// trip results endpoint.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	idOrSlug := r.PathValue("id")
	if idOrSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	poll, err := loadPoll(h.db, idOrSlug)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if poll.EventType == models.EventHoliday {
		middleware.ErrorResponse(w, http.StatusConflict, "Holiday polls use the trip-results endpoint")
		return
	}

	votes, err := loadVotes(h.db, poll.ID)
	if err != nil {
		slog.Error("failed to load votes", "error", err, "poll_id", poll.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	voters := engine.Normalize(poll, votes)
	rankings := engine.RankDates(voters, poll.Dates)
	suggested := engine.SuggestedDate(rankings)

	suggestedMeal := ""
	if poll.EventType == models.EventMeal && suggested != "" {
		suggestedMeal = engine.ResolveMealSlot(voters, poll, suggested)
	}

	middleware.JSONResponse(w, http.StatusOK, models.ResultsResponse{
		Poll:          poll,
		Rankings:      rankings,
		SuggestedDate: suggested,
		SuggestedMeal: suggestedMeal,
		SummaryLines:  summaryLines(rankings),
		VoteCount:     len(voters),
	})
}

// summaryLines phrases the top rankings for display, e.g.
// "1st choice: Saturday the 1st of June 2024 (4 yes, 1 maybe, 0 no)".
func summaryLines(rankings []models.DateScore) []string {
	var lines []string
	for _, r := range rankings {
		if r.Rank > 3 {
			break
		}
		lines = append(lines, fmt.Sprintf("%s choice: %s (%d yes, %d maybe, %d no)",
			humanize.Ordinal(r.Rank), prettyDate(r.Date),
			len(r.Yes), len(r.Maybe), len(r.No)))
	}
	return lines
}

// GetTripResults handles GET /polls/:id/trip-results
// The full holiday pipeline: per-day counts over the organiser window,
// calendar heat map, and the recommended contiguous stay.
func (h *ResultsHandler) GetTripResults(w http.ResponseWriter, r *http.Request) {
	idOrSlug := r.PathValue("id")
	if idOrSlug == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "poll_id is required")
		return
	}

	poll, err := loadPoll(h.db, idOrSlug)
	if err == sql.ErrNoRows {
		middleware.ErrorResponse(w, http.StatusNotFound, "Poll not found")
		return
	}
	if err != nil {
		slog.Error("failed to query poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if poll.EventType != models.EventHoliday {
		middleware.ErrorResponse(w, http.StatusConflict, "Only holiday polls have trip results")
		return
	}

	start, end, ok := engine.OrganiserWindow(poll)
	if !ok {
		middleware.ErrorResponse(w, http.StatusConflict, "Poll has no usable date range")
		return
	}

	votes, err := loadVotes(h.db, poll.ID)
	if err != nil {
		slog.Error("failed to load votes", "error", err, "poll_id", poll.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	voters := engine.Normalize(poll, votes)
	minTripDays := engine.DeriveMinTripDays(poll.EventOptions)

	days := engine.BuildDayCounts(voters, start, end)
	maxCount := engine.MaxDayCount(days)
	months := engine.ProjectHeatMap(days, maxCount)
	recommended := engine.RecommendTripWindow(voters, start, end, minTripDays)

	summary := ""
	if recommended != nil {
		summary = fmt.Sprintf("%d %s from %s (%d of %d can make the whole stay)",
			recommended.Nights, plural(recommended.Nights, "night", "nights"),
			prettyDate(recommended.Start), len(recommended.Attendees), len(voters))
	}

	middleware.JSONResponse(w, http.StatusOK, models.TripResultsResponse{
		Poll:               poll,
		OrganiserStart:     days[0].Date,
		OrganiserEnd:       days[len(days)-1].Date,
		Days:               days,
		MaxCount:           maxCount,
		Months:             months,
		Recommended:        recommended,
		MinTripDays:        minTripDays,
		PreferredTripDays:  engine.PreferredTripDaysMode(voters),
		TotalAttendees:     len(voters),
		RecommendedSummary: summary,
	})
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
