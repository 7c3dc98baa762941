// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the planner API.

# Handler Types

Each handler is a struct with database and config dependencies:

  - PollHandler: Poll lifecycle (create, read, finalise)
  - VotingHandler: Vote submission and listing
  - ResultsHandler: Date rankings and trip results
  - NudgeHandler: "Maybe" reminder sends

Handlers are created via constructor functions that accept *sql.DB and Config:

	pollHandler := handlers.NewPollHandler(db, cfg)

NewNudgeHandler additionally takes a notify.Sender.

# Poll Lifecycle

	POST /polls                 → CreatePoll (returns edit_token and share_slug)
	GET  /polls/{id}            → GetPoll (ID or share slug)
	POST /polls/{id}/finalise   → FinalisePoll (locks date, and meal slot for meal events)

Organiser operations require the X-Edit-Token header. An empty
final_date accepts the engine's suggestion.

# Voting Flow

	POST /polls/{id}/votes → SubmitVote
	GET  /polls/{id}/votes → GetVotes

Every submission is a new row. Voters change their answer by
resubmitting; the engine keeps the latest entry per identity.

# Results

	GET /polls/{id}/results      → GetResults (general and meal events)
	GET /polls/{id}/trip-results → GetTripResults (holiday events)

Each endpoint 409s for the other event kind. All scoring, tie-breaks,
window search, and heat map projection live in the engine package;
handlers only load rows and shape responses.

# Nudges

	POST /polls/{id}/nudge-maybes → NudgeMaybes

At most one nudge per (poll, date): a claim row is inserted inside a
transaction before anything is sent.
*/
package handlers
