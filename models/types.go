// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Event type constants
const (
	EventGeneral = "general"
	EventMeal    = "meal"
	EventHoliday = "holiday"
)

// Vote choice constants
const (
	ChoiceYes   = "yes"
	ChoiceMaybe = "maybe"
	ChoiceNo    = "no"
)

// Meal slot identifiers (fixed vocabulary)
const (
	MealBreakfast    = "breakfast"
	MealBrunch       = "brunch"
	MealCoffee       = "coffee"
	MealLunch        = "lunch"
	MealLunchDrinks  = "lunch_drinks"
	MealAfternoonTea = "afternoon_tea"
	MealDinner       = "dinner"
	MealEvening      = "evening"
)

// AllMealSlots lists every meal slot in display order.
var AllMealSlots = []string{
	MealBreakfast,
	MealBrunch,
	MealCoffee,
	MealLunch,
	MealLunchDrinks,
	MealAfternoonTea,
	MealDinner,
	MealEvening,
}

// MealEither is the organiser preference meaning "no slot preference".
const MealEither = "either"

// ValidEventType reports whether t is one of the known event types.
func ValidEventType(t string) bool {
	return t == EventGeneral || t == EventMeal || t == EventHoliday
}

// ValidChoice reports whether c is yes, maybe, or no.
func ValidChoice(c string) bool {
	return c == ChoiceYes || c == ChoiceMaybe || c == ChoiceNo
}

// ValidMealSlot reports whether s is a known meal slot identifier.
func ValidMealSlot(s string) bool {
	for _, m := range AllMealSlots {
		if s == m {
			return true
		}
	}
	return false
}

// Request types

type CreatePollRequest struct {
	Title         string       `json:"title"`
	Location      string       `json:"location"`
	OrganiserName string       `json:"organiser_name"`
	EventType     string       `json:"event_type"`
	Dates         []string     `json:"dates"` // ISO yyyy-mm-dd
	EventOptions  EventOptions `json:"event_options"`
	Deadline      *time.Time   `json:"deadline,omitempty"`
}

type SubmitVoteRequest struct {
	DisplayName    string                       `json:"display_name"`
	Email          string                       `json:"email,omitempty"`
	Message        string                       `json:"message,omitempty"`
	Votes          map[string]string            `json:"votes,omitempty"`      // date -> yes|maybe|no
	MealVotes      map[string]map[string]string `json:"meal_votes,omitempty"` // date -> slot -> choice
	HolidayChoices []HolidayChoice              `json:"holiday_choices,omitempty"`
}

type FinalisePollRequest struct {
	FinalDate string `json:"final_date,omitempty"` // empty = accept suggestion
	FinalMeal string `json:"final_meal,omitempty"`
}

type NudgeMaybesRequest struct {
	Date string `json:"date"` // ISO date option to nudge for
}

// Response types

type CreatePollResponse struct {
	PollID    string `json:"poll_id"`
	EditToken string `json:"edit_token"`
	ShareSlug string `json:"share_slug"`
}

type SubmitVoteResponse struct {
	VoteID  string `json:"vote_id"`
	Message string `json:"message"`
}

type FinalisePollResponse struct {
	FinalDate   string    `json:"final_date"`
	FinalMeal   string    `json:"final_meal,omitempty"`
	FinalisedAt time.Time `json:"finalised_at"`
}

type NudgeMaybesResponse struct {
	Date       string    `json:"date"`
	Recipients int       `json:"recipients"`
	SentAt     time.Time `json:"sent_at"`
}

type ResultsResponse struct {
	Poll          Poll        `json:"poll"`
	Rankings      []DateScore `json:"rankings"`
	SuggestedDate string      `json:"suggested_date,omitempty"`
	SuggestedMeal string      `json:"suggested_meal,omitempty"`
	SummaryLines  []string    `json:"summary_lines,omitempty"`
	VoteCount     int         `json:"vote_count"`
}

type TripResultsResponse struct {
	Poll               Poll              `json:"poll"`
	OrganiserStart     string            `json:"organiser_start,omitempty"`
	OrganiserEnd       string            `json:"organiser_end,omitempty"`
	Days               []DayAvailability `json:"days"`
	MaxCount           int               `json:"max_count"`
	Months             []HeatMapMonth    `json:"months"`
	Recommended        *TripWindow       `json:"recommended"` // null when no window qualifies
	MinTripDays        int               `json:"min_trip_days"`
	PreferredTripDays  int               `json:"preferred_trip_days,omitempty"`
	TotalAttendees     int               `json:"total_attendees"`
	RecommendedSummary string            `json:"recommended_summary,omitempty"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Domain types

// EventOptions carries per-event-type configuration set by the organiser.
type EventOptions struct {
	// Meal events: slots enabled for every date, unless overridden per date.
	MealTimes        []string            `json:"meal_times,omitempty"`
	MealTimesPerDate map[string][]string `json:"meal_times_per_date,omitempty"`
	// Organiser's slot preference; "either" means no preference.
	PreferredMealTime string `json:"preferred_meal_time,omitempty"`

	// Holiday events: explicit minimum trip length in days, or a duration
	// enum like "5_nights" the minimum is derived from.
	MinTripDays      int    `json:"min_trip_days,omitempty"`
	ProposedDuration string `json:"proposed_duration,omitempty"`
}

type Poll struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Location      string       `json:"location,omitempty"`
	OrganiserName string       `json:"organiser_name"`
	EventType     string       `json:"event_type"`
	Dates         []string     `json:"dates"`
	EventOptions  EventOptions `json:"event_options"`
	ShareSlug     *string      `json:"share_slug,omitempty"`
	Deadline      *time.Time   `json:"deadline,omitempty"`
	FinalDate     *string      `json:"final_date,omitempty"`
	FinalMeal     *string      `json:"final_meal,omitempty"`
	FinalisedAt   *time.Time   `json:"finalised_at,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

// HolidayChoice is one voter-submitted preference window for a trip event.
// PreferredNights may be a bare number ("5") or a duration enum ("5_nights",
// "1_week"); unparseable hints are treated as absent.
type HolidayChoice struct {
	Start           string `json:"start"`
	End             string `json:"end"`
	PreferredNights string `json:"preferred_nights,omitempty"`
}

type Vote struct {
	ID             string                       `json:"id"`
	PollID         string                       `json:"poll_id"`
	DisplayName    string                       `json:"display_name"`
	Email          string                       `json:"email,omitempty"`
	Message        string                       `json:"message,omitempty"`
	Votes          map[string]string            `json:"votes,omitempty"`
	MealVotes      map[string]map[string]string `json:"meal_votes,omitempty"`
	HolidayChoices []HolidayChoice              `json:"holiday_choices,omitempty"`
	IPHash         *string                      `json:"-"` // Never expose in JSON
	CreatedAt      time.Time                    `json:"created_at"`
}

// Engine result types

// DateScore is one candidate date's tally and rank.
type DateScore struct {
	Date  string   `json:"date"`
	Yes   []string `json:"yes"`
	Maybe []string `json:"maybe"`
	No    []string `json:"no"`
	Score int      `json:"score"`
	Rank  int      `json:"rank"` // 1-indexed ranking
}

// DayAvailability is one day of the trip heat map domain: how many distinct
// voters can make that day, and who they are.
type DayAvailability struct {
	Date   string   `json:"date"`
	Count  int      `json:"count"`
	Voters []string `json:"voters"`
}

// TripWindow is a contiguous recommended sub-range of the organiser window.
type TripWindow struct {
	Start     string   `json:"start"`
	End       string   `json:"end"`
	Days      int      `json:"days"`
	Nights    int      `json:"nights"`
	Attendees []string `json:"attendees"`
}

// HeatMapCell is one calendar-grid cell for presentation.
type HeatMapCell struct {
	Date          string  `json:"date"`
	Count         int     `json:"count"`
	InActiveMonth bool    `json:"in_active_month"`
	Intensity     float64 `json:"intensity"`
}

// HeatMapMonth is one month bucket of calendar cells. Cells always form
// complete Monday-start weeks, so len(Cells) is a multiple of 7.
type HeatMapMonth struct {
	Month string        `json:"month"` // "2024-08"
	Label string        `json:"label"` // "August 2024"
	Cells []HeatMapCell `json:"cells"`
}
