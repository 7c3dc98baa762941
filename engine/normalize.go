// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/setthedate/planner/models"
)

// Window is one cleaned voter preference window for a trip event.
// Start and End are UTC midnights with Start <= End.
type Window struct {
	Start time.Time
	End   time.Time
	// PreferredNights is the voter's length hint; -1 when absent or
	// unparseable.
	PreferredNights int
}

// Voter is one deduplicated voter with cleaned responses. At least one of
// Choices, MealChoices, or Windows is non-empty.
type Voter struct {
	// Key is the dedup identity: lower-cased email when available,
	// otherwise the lower-cased display name.
	Key         string
	Name        string // title-cased display name
	Email       string
	Message     string
	Choices     map[string]string            // date key -> yes|maybe|no
	MealChoices map[string]map[string]string // date key -> slot -> choice
	Windows     []Window
	CreatedAt   time.Time
}

// Normalize converts raw vote records into cleaned, deduplicated voter
// entries. Malformed dates and windows are dropped from an entry rather than
// failing it; entries with nothing usable left are excluded entirely. When
// two records share an identity key the one with the later submission
// timestamp wins. Never returns an error: unusable input degrades to an
// empty result.
//
// The returned slice is sorted by name then key so downstream tallies are
// independent of input order.
func Normalize(poll models.Poll, votes []models.Vote) []Voter {
	byKey := make(map[string]Voter)

	for _, raw := range votes {
		v, ok := cleanVote(raw)
		if !ok {
			continue
		}
		prev, seen := byKey[v.Key]
		// Last write wins on duplicate identity.
		if seen && !v.CreatedAt.After(prev.CreatedAt) {
			continue
		}
		byKey[v.Key] = v
	}

	out := make([]Voter, 0, len(byKey))
	for _, v := range byKey {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func cleanVote(raw models.Vote) (Voter, bool) {
	name := strings.TrimSpace(raw.DisplayName)
	email := strings.TrimSpace(raw.Email)
	if name == "" && email == "" {
		return Voter{}, false
	}
	if name == "" {
		name = email
	}

	key := strings.ToLower(name)
	if email != "" {
		key = strings.ToLower(email)
	}

	v := Voter{
		Key:       key,
		Name:      titleCase(name),
		Email:     email,
		Message:   strings.TrimSpace(raw.Message),
		CreatedAt: raw.CreatedAt,
	}

	for date, choice := range raw.Votes {
		t, ok := parseDayKey(date)
		if !ok || !models.ValidChoice(choice) {
			continue
		}
		if v.Choices == nil {
			v.Choices = make(map[string]string)
		}
		v.Choices[dayKey(t)] = choice
	}

	for date, slots := range raw.MealVotes {
		t, ok := parseDayKey(date)
		if !ok {
			continue
		}
		for slot, choice := range slots {
			if !models.ValidMealSlot(slot) || !models.ValidChoice(choice) {
				continue
			}
			if v.MealChoices == nil {
				v.MealChoices = make(map[string]map[string]string)
			}
			k := dayKey(t)
			if v.MealChoices[k] == nil {
				v.MealChoices[k] = make(map[string]string)
			}
			v.MealChoices[k][slot] = choice
		}
	}

	for _, c := range raw.HolidayChoices {
		start, okS := parseDayKey(c.Start)
		end, okE := parseDayKey(c.End)
		if !okS || !okE || start.After(end) {
			continue
		}
		v.Windows = append(v.Windows, Window{
			Start:           start,
			End:             end,
			PreferredNights: parseNightsHint(c.PreferredNights),
		})
	}

	if len(v.Choices) == 0 && len(v.MealChoices) == 0 && len(v.Windows) == 0 {
		return Voter{}, false
	}
	return v, true
}

// parseNightsHint accepts a bare number ("5") or a duration enum
// ("5_nights", "1_week"); anything else means no hint.
func parseNightsHint(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return -1
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 {
		return n
	}
	if n, ok := DurationToNights(s); ok {
		return n
	}
	return -1
}

// titleCase upper-cases the first letter of each space-separated word and
// lower-cases the rest, stabilising inconsistently cased display names.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		r := []rune(strings.ToLower(w))
		r[0] = []rune(strings.ToUpper(string(r[0])))[0]
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
