// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/setthedate/planner/auth"
	"github.com/setthedate/planner/cliparse"
	"github.com/setthedate/planner/engine"
	"github.com/setthedate/planner/middleware"
	"github.com/setthedate/planner/models"
)

type PollHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewPollHandler(db *sql.DB, cfg cliparse.Config) *PollHandler {
	return &PollHandler{db: db, cfg: cfg}
}

// CreatePoll handles POST /polls
func (h *PollHandler) CreatePoll(w http.ResponseWriter, r *http.Request) {
	var req models.CreatePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}
	if req.OrganiserName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "organiser_name is required")
		return
	}
	if !models.ValidEventType(req.EventType) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "event_type must be general, meal, or holiday")
		return
	}
	if len(req.Dates) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "at least one date is required")
		return
	}
	for _, d := range req.Dates {
		if !validDateKey(d) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "invalid date: "+d)
			return
		}
	}
	if msg := validateEventOptions(req.EventType, req.Dates, req.EventOptions); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	// Generate poll ID
	pollID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate poll ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	// Edit token and slug derive from the ID, no extra storage needed
	editToken := auth.GenerateEditToken(pollID, h.cfg.EditTokenSalt)
	shareSlug := auth.GenerateShareSlug(pollID, h.cfg.ShareSlugSalt)

	datesJSON, _ := json.Marshal(req.Dates)
	optsJSON, _ := json.Marshal(req.EventOptions)

	_, err = h.db.Exec(`
		INSERT INTO poll (id, title, location, organiser_name, event_type, dates, event_options, share_slug, deadline, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, pollID, req.Title, req.Location, req.OrganiserName, req.EventType,
		string(datesJSON), string(optsJSON), shareSlug, req.Deadline, time.Now().UTC())

	if err != nil {
		slog.Error("failed to insert poll", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create poll")
		return
	}

	slog.Info("poll created", "poll_id", pollID, "event_type", req.EventType, "organiser", req.OrganiserName)

	middleware.JSONResponse(w, http.StatusCreated, models.CreatePollResponse{
		PollID:    pollID,
		EditToken: editToken,
		ShareSlug: shareSlug,
	})
}

// validateEventOptions checks the per-type organiser options. Returns a
// message for the client, or "" when everything is acceptable.
func validateEventOptions(eventType string, dates []string, opts models.EventOptions) string {
	for _, m := range opts.MealTimes {
		if !models.ValidMealSlot(m) {
			return "unknown meal slot: " + m
		}
	}
	for date, slots := range opts.MealTimesPerDate {
		if !containsDate(dates, date) {
			return "meal_times_per_date references unknown date: " + date
		}
		for _, m := range slots {
			if !models.ValidMealSlot(m) {
				return "unknown meal slot: " + m
			}
		}
	}
	if p := opts.PreferredMealTime; p != "" && p != models.MealEither && !models.ValidMealSlot(p) {
		return "unknown preferred_meal_time: " + p
	}
	if opts.MinTripDays < 0 {
		return "min_trip_days cannot be negative"
	}
	if eventType == models.EventHoliday && opts.ProposedDuration != "" && opts.ProposedDuration != "unlimited" {
		if _, ok := engine.DurationToNights(opts.ProposedDuration); !ok {
			return "unknown proposed_duration: " + opts.ProposedDuration
		}
	}
	return ""
}

// GetPoll handles GET /polls/:id (accepts poll ID or share slug)
func (h *PollHandler) GetPoll(w http.ResponseWriter, r *http.Request) {
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

	middleware.JSONResponse(w, http.StatusOK, poll)
}

// FinalisePoll handles POST /polls/:id/finalise
// Locks in the final date (and meal slot for meal events). An empty
// final_date accepts the engine's suggestion.
func (h *PollHandler) FinalisePoll(w http.ResponseWriter, r *http.Request) {
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

	// Validate edit token against the canonical poll ID, not the slug
	editToken := r.Header.Get("X-Edit-Token")
	if err := auth.ValidateEditToken(poll.ID, editToken, h.cfg.EditTokenSalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid edit token")
		return
	}

	if poll.FinalisedAt != nil {
		middleware.ErrorResponse(w, http.StatusConflict, "Poll already finalised")
		return
	}

	var req models.FinalisePollRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	votes, err := loadVotes(h.db, poll.ID)
	if err != nil {
		slog.Error("failed to load votes", "error", err, "poll_id", poll.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	voters := engine.Normalize(poll, votes)

	finalDate := req.FinalDate
	if finalDate == "" {
		finalDate = h.suggestDate(poll, voters)
		if finalDate == "" {
			middleware.ErrorResponse(w, http.StatusConflict, "No suggestion available; provide final_date")
			return
		}
	} else if poll.EventType == models.EventHoliday {
		if !validDateKey(finalDate) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "invalid final_date: "+finalDate)
			return
		}
	} else if !containsDate(poll.Dates, finalDate) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "final_date is not a candidate date")
		return
	}

	finalMeal := ""
	if poll.EventType == models.EventMeal {
		finalMeal = req.FinalMeal
		if finalMeal == "" {
			finalMeal = engine.ResolveMealSlot(voters, poll, finalDate)
		} else if !models.ValidMealSlot(finalMeal) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "unknown final_meal: "+finalMeal)
			return
		} else if !containsDate(engine.EnabledMealSlots(poll, finalDate), finalMeal) {
			middleware.ErrorResponse(w, http.StatusBadRequest, "final_meal is not enabled for that date")
			return
		}
	}

	finalisedAt := time.Now().UTC()
	var mealValue *string
	if finalMeal != "" {
		mealValue = &finalMeal
	}

	_, err = h.db.Exec(`
		UPDATE poll
		SET final_date = $1, final_meal = $2, finalised_at = $3
		WHERE id = $4
	`, finalDate, mealValue, finalisedAt, poll.ID)

	if err != nil {
		slog.Error("failed to finalise poll", "error", err, "poll_id", poll.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to finalise poll")
		return
	}

	slog.Info("poll finalised", "poll_id", poll.ID, "final_date", finalDate, "final_meal", finalMeal)

	middleware.JSONResponse(w, http.StatusOK, models.FinalisePollResponse{
		FinalDate:   finalDate,
		FinalMeal:   finalMeal,
		FinalisedAt: finalisedAt,
	})
}

// suggestDate returns the engine's pick for a poll: the top-ranked
// candidate date, or for trip events the recommended window's start.
func (h *PollHandler) suggestDate(poll models.Poll, voters []engine.Voter) string {
	if poll.EventType == models.EventHoliday {
		start, end, ok := engine.OrganiserWindow(poll)
		if !ok {
			return ""
		}
		rec := engine.RecommendTripWindow(voters, start, end, engine.DeriveMinTripDays(poll.EventOptions))
		if rec == nil {
			return ""
		}
		return rec.Start
	}
	return engine.SuggestedDate(engine.RankDates(voters, poll.Dates))
}
