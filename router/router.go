// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/setthedate/planner/cliparse"
	"github.com/setthedate/planner/handlers"
	"github.com/setthedate/planner/middleware"
	"github.com/setthedate/planner/notify"
)

func NewRouter(db *sql.DB, cfg cliparse.Config, sender notify.Sender) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	pollHandler := handlers.NewPollHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)
	nudgeHandler := handlers.NewNudgeHandler(db, cfg, sender)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Poll management (organiser operations)
	mux.HandleFunc("POST /polls", middleware.WithLogging(pollHandler.CreatePoll))
	mux.HandleFunc("GET /polls/{id}", middleware.WithLogging(pollHandler.GetPoll))
	mux.HandleFunc("POST /polls/{id}/finalise", middleware.WithLogging(pollHandler.FinalisePoll))
	mux.HandleFunc("POST /polls/{id}/nudge-maybes", middleware.WithLogging(nudgeHandler.NudgeMaybes))

	// Voting operations (public)
	mux.HandleFunc("POST /polls/{id}/votes", middleware.WithLogging(votingHandler.SubmitVote))
	mux.HandleFunc("GET /polls/{id}/votes", middleware.WithLogging(votingHandler.GetVotes))

	// Results retrieval (public)
	mux.HandleFunc("GET /polls/{id}/results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /polls/{id}/trip-results", middleware.WithLogging(resultsHandler.GetTripResults))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("planner API v1"))
	})

	return mux
}
