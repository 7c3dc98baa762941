// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/setthedate/planner/auth"
	"github.com/setthedate/planner/cliparse"
	"github.com/setthedate/planner/middleware"
	"github.com/setthedate/planner/models"
)

type VotingHandler struct {
	db  *sql.DB
	cfg cliparse.Config
}

func NewVotingHandler(db *sql.DB, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{db: db, cfg: cfg}
}

// SubmitVote handles POST /polls/:id/votes
// Each submission is a new row; the engine deduplicates per voter with
// last-write-wins, so resubmitting is how a voter changes their answer.
func (h *VotingHandler) SubmitVote(w http.ResponseWriter, r *http.Request) {
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

	if poll.FinalisedAt != nil {
		middleware.ErrorResponse(w, http.StatusConflict, "Poll already finalised")
		return
	}
	if poll.Deadline != nil && time.Now().After(*poll.Deadline) {
		middleware.ErrorResponse(w, http.StatusConflict, "Voting deadline has passed")
		return
	}

	var req models.SubmitVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.DisplayName == "" && req.Email == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "display_name is required")
		return
	}
	if msg := validateVotePayload(poll, req); msg != "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, msg)
		return
	}

	voteID := uuid.NewString()
	clientIP := middleware.GetClientIP(r)
	ipHash := auth.HashIP(clientIP, h.cfg.EditTokenSalt)

	choicesJSON, _ := json.Marshal(req.Votes)
	mealJSON, _ := json.Marshal(req.MealVotes)
	holidayJSON, _ := json.Marshal(req.HolidayChoices)

	_, err = h.db.Exec(`
		INSERT INTO vote (id, poll_id, display_name, email, message, choices, meal_choices, holiday_choices, ip_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, voteID, poll.ID, req.DisplayName, req.Email, req.Message,
		string(choicesJSON), string(mealJSON), string(holidayJSON), ipHash, time.Now().UTC())

	if err != nil {
		slog.Error("failed to insert vote", "error", err, "poll_id", poll.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit vote")
		return
	}

	slog.Info("vote submitted", "poll_id", poll.ID, "vote_id", voteID)

	middleware.JSONResponse(w, http.StatusCreated, models.SubmitVoteResponse{
		VoteID:  voteID,
		Message: "Vote submitted successfully",
	})
}

// validateVotePayload rejects structurally bad submissions up front.
// Dates outside the candidate list are left in; the engine ignores them.
func validateVotePayload(poll models.Poll, req models.SubmitVoteRequest) string {
	if len(req.Votes) == 0 && len(req.MealVotes) == 0 && len(req.HolidayChoices) == 0 {
		return "vote contains no responses"
	}

	for date, choice := range req.Votes {
		if !validDateKey(date) {
			return "invalid date: " + date
		}
		if !models.ValidChoice(choice) {
			return "choice must be yes, maybe, or no"
		}
	}
	for date, slots := range req.MealVotes {
		if !validDateKey(date) {
			return "invalid date: " + date
		}
		for slot, choice := range slots {
			if !models.ValidMealSlot(slot) {
				return "unknown meal slot: " + slot
			}
			if !models.ValidChoice(choice) {
				return "choice must be yes, maybe, or no"
			}
		}
	}
	for _, c := range req.HolidayChoices {
		if !validDateKey(c.Start) || !validDateKey(c.End) {
			return "holiday window dates must be yyyy-mm-dd"
		}
		if c.Start > c.End {
			return "holiday window starts after it ends"
		}
	}

	if poll.EventType == models.EventHoliday && len(req.HolidayChoices) == 0 {
		return "holiday polls need at least one availability window"
	}
	return ""
}

// GetVotes handles GET /polls/:id/votes
func (h *VotingHandler) GetVotes(w http.ResponseWriter, r *http.Request) {
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

	votes, err := loadVotes(h.db, poll.ID)
	if err != nil {
		slog.Error("failed to load votes", "error", err, "poll_id", poll.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"votes":      votes,
		"vote_count": len(votes),
	})
}
