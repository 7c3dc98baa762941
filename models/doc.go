// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreatePollRequest: title, location, organiser_name, event_type, dates, event_options
  - SubmitVoteRequest: display_name, votes / meal_votes / holiday_choices
  - FinalisePollRequest: final_date, final_meal
  - NudgeMaybesRequest: date

# Response Types

Types for JSON responses:

  - CreatePollResponse: poll_id, edit_token, share_slug
  - SubmitVoteResponse: vote_id, message
  - FinalisePollResponse: final_date, final_meal, finalised_at
  - NudgeMaybesResponse: date, recipients, sent_at
  - ResultsResponse: rankings, suggested_date, suggested_meal
  - TripResultsResponse: days, months, recommended window
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Poll: poll metadata, candidate dates, and finalisation state
  - EventOptions: meal slot configuration and trip length constraints
  - Vote: one voter's response (discrete choices or holiday windows)
  - HolidayChoice: a voter preference window with an optional length hint
  - DateScore: ranked tally for one candidate date
  - DayAvailability / TripWindow / HeatMapMonth: trip engine outputs

# Constants

Event types:

	EventGeneral = "general"
	EventMeal    = "meal"
	EventHoliday = "holiday"

Vote choices:

	ChoiceYes   = "yes"
	ChoiceMaybe = "maybe"
	ChoiceNo    = "no"

Meal slots (fixed vocabulary):

	breakfast, brunch, coffee, lunch, lunch_drinks,
	afternoon_tea, dinner, evening
*/
package models
