// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/setthedate/planner/models"
)

// loadPoll fetches a poll by ID, falling back to its share slug so the
// same routes work for organiser links and share links.
func loadPoll(db *sql.DB, idOrSlug string) (models.Poll, error) {
	var poll models.Poll
	var location sql.NullString
	var datesJSON, optsJSON string

	err := db.QueryRow(`
		SELECT id, title, location, organiser_name, event_type, dates, event_options,
		       share_slug, deadline, final_date, final_meal, finalised_at, created_at
		FROM poll
		WHERE id = $1 OR share_slug = $2
	`, idOrSlug, idOrSlug).Scan(
		&poll.ID, &poll.Title, &location, &poll.OrganiserName, &poll.EventType,
		&datesJSON, &optsJSON, &poll.ShareSlug, &poll.Deadline,
		&poll.FinalDate, &poll.FinalMeal, &poll.FinalisedAt, &poll.CreatedAt,
	)
	if err != nil {
		return models.Poll{}, err
	}

	poll.Location = location.String
	if err := json.Unmarshal([]byte(datesJSON), &poll.Dates); err != nil {
		return models.Poll{}, fmt.Errorf("corrupt dates for poll %s: %w", poll.ID, err)
	}
	if err := json.Unmarshal([]byte(optsJSON), &poll.EventOptions); err != nil {
		return models.Poll{}, fmt.Errorf("corrupt event options for poll %s: %w", poll.ID, err)
	}

	return poll, nil
}

// loadVotes fetches every vote row for a poll, oldest first.
func loadVotes(db *sql.DB, pollID string) ([]models.Vote, error) {
	rows, err := db.Query(`
		SELECT id, poll_id, display_name, email, message,
		       choices, meal_choices, holiday_choices, ip_hash, created_at
		FROM vote
		WHERE poll_id = $1
		ORDER BY created_at, id
	`, pollID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	votes := []models.Vote{}
	for rows.Next() {
		var v models.Vote
		var email, message sql.NullString
		var choicesJSON, mealJSON, holidayJSON string

		if err := rows.Scan(
			&v.ID, &v.PollID, &v.DisplayName, &email, &message,
			&choicesJSON, &mealJSON, &holidayJSON, &v.IPHash, &v.CreatedAt,
		); err != nil {
			return nil, err
		}
		v.Email = email.String
		v.Message = message.String

		// Corrupt JSON in one vote should not sink the whole poll
		_ = json.Unmarshal([]byte(choicesJSON), &v.Votes)
		_ = json.Unmarshal([]byte(mealJSON), &v.MealVotes)
		_ = json.Unmarshal([]byte(holidayJSON), &v.HolidayChoices)

		votes = append(votes, v)
	}
	return votes, rows.Err()
}

// validDateKey reports whether s is a well-formed ISO yyyy-mm-dd date.
func validDateKey(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil && len(s) == len("2006-01-02")
}

// containsDate reports whether date is one of the poll's candidate dates.
func containsDate(dates []string, date string) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}

// prettyDate renders an ISO date key as a friendly phrase, e.g.
// "Saturday the 1st of June 2024". Falls back to the raw key if it
// does not parse.
func prettyDate(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return fmt.Sprintf("%s the %s of %s",
		t.Format("Monday"), humanize.Ordinal(t.Day()), t.Format("January 2006"))
}
