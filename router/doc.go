// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the planner API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(db, cfg, sender)

# Endpoints

Health:

	GET /health

Poll management (organiser, requires X-Edit-Token where noted):

	POST /polls                   - Create poll
	GET  /polls/{id}              - Poll details (ID or share slug)
	POST /polls/{id}/finalise     - Lock in final date (token)
	POST /polls/{id}/nudge-maybes - Remind maybe-voters (token)

Voting (public):

	POST /polls/{id}/votes - Submit a vote
	GET  /polls/{id}/votes - List votes

Results (public):

	GET /polls/{id}/results      - Ranked dates (general/meal)
	GET /polls/{id}/trip-results - Day counts, heat map, window (holiday)

# Handler Initialization

The router creates handler instances with dependency injection:

	pollHandler := handlers.NewPollHandler(db, cfg)
	votingHandler := handlers.NewVotingHandler(db, cfg)
	resultsHandler := handlers.NewResultsHandler(db, cfg)
	nudgeHandler := handlers.NewNudgeHandler(db, cfg, sender)

All handlers receive the database connection and configuration; the
nudge handler also gets the notify.Sender used for reminders.
*/
package router
