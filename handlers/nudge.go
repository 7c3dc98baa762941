// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"log/slog"
	"net/http"
	"time"

	"github.com/setthedate/planner/auth"
	"github.com/setthedate/planner/cliparse"
	"github.com/setthedate/planner/engine"
	"github.com/setthedate/planner/middleware"
	"github.com/setthedate/planner/models"
	"github.com/setthedate/planner/notify"
)

type NudgeHandler struct {
	db     *sql.DB
	cfg    cliparse.Config
	sender notify.Sender
}

func NewNudgeHandler(db *sql.DB, cfg cliparse.Config, sender notify.Sender) *NudgeHandler {
	return &NudgeHandler{db: db, cfg: cfg, sender: sender}
}

// NudgeMaybes handles POST /polls/:id/nudge-maybes
// Sends a reminder to every voter who answered "maybe" for the given
// date and left an email. At most one nudge per (poll, date), ever: a
// claim row is inserted in a transaction before anything is sent, so a
// second request - concurrent or hours later - gets 409.
func (h *NudgeHandler) NudgeMaybes(w http.ResponseWriter, r *http.Request) {
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

	editToken := r.Header.Get("X-Edit-Token")
	if err := auth.ValidateEditToken(poll.ID, editToken, h.cfg.EditTokenSalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid edit token")
		return
	}

	var req models.NudgeMaybesRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if !validDateKey(req.Date) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "date must be yyyy-mm-dd")
		return
	}
	if !containsDate(poll.Dates, req.Date) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "date is not a candidate date")
		return
	}

	votes, err := loadVotes(h.db, poll.ID)
	if err != nil {
		slog.Error("failed to load votes", "error", err, "poll_id", poll.ID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	recipients := maybeRecipients(engine.Normalize(poll, votes), req.Date)
	sentAt := time.Now().UTC()

	// Claim the (poll, date) pair before sending anything. The primary
	// key makes a concurrent duplicate fail its insert and roll back.
	tx, err := h.db.Begin()
	if err != nil {
		slog.Error("failed to begin transaction", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}
	defer tx.Rollback()

	var already time.Time
	err = tx.QueryRow(`
		SELECT sent_at FROM maybe_nudge WHERE poll_id = $1 AND date_option = $2
	`, poll.ID, req.Date).Scan(&already)
	if err == nil {
		middleware.ErrorResponse(w, http.StatusConflict, "Nudge already sent for this date")
		return
	}
	if err != sql.ErrNoRows {
		slog.Error("failed to check nudge claim", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	_, err = tx.Exec(`
		INSERT INTO maybe_nudge (poll_id, date_option, sent_at, sent_count)
		VALUES ($1, $2, $3, $4)
	`, poll.ID, req.Date, sentAt, len(recipients))
	if err != nil {
		middleware.ErrorResponse(w, http.StatusConflict, "Nudge already sent for this date")
		return
	}

	if err := tx.Commit(); err != nil {
		slog.Error("failed to commit nudge claim", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	// The claim stands even if delivery fails; retrying a half-sent
	// nudge would double up on the recipients that did get it.
	if len(recipients) > 0 {
		err = h.sender.SendNudge(r.Context(), notify.Nudge{
			PollID:     poll.ID,
			PollTitle:  poll.Title,
			Date:       req.Date,
			Summary:    prettyDate(req.Date),
			Recipients: recipients,
		})
		if err != nil {
			slog.Error("failed to send nudge", "error", err, "poll_id", poll.ID, "date", req.Date)
		}
	}

	slog.Info("maybes nudged", "poll_id", poll.ID, "date", req.Date, "recipients", len(recipients))

	middleware.JSONResponse(w, http.StatusOK, models.NudgeMaybesResponse{
		Date:       req.Date,
		Recipients: len(recipients),
		SentAt:     sentAt,
	})
}

// maybeRecipients collects voters who said "maybe" for the date and can
// be reached by email. Voters are already deduplicated by identity key.
func maybeRecipients(voters []engine.Voter, date string) []notify.Recipient {
	var out []notify.Recipient
	for _, v := range voters {
		if v.Choices[date] != models.ChoiceMaybe || v.Email == "" {
			continue
		}
		out = append(out, notify.Recipient{Name: v.Name, Email: v.Email})
	}
	return out
}
