// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import "github.com/setthedate/planner/models"

// fallbackMealPriority is the fixed, hand-ordered list used to break ties
// deterministically. Evening meals beat daytime ones: no slot choice should
// ever require a human tie-break.
var fallbackMealPriority = []string{
	models.MealDinner,
	models.MealEvening,
	models.MealAfternoonTea,
	models.MealLunchDrinks,
	models.MealLunch,
	models.MealBrunch,
	models.MealCoffee,
	models.MealBreakfast,
}

// EnabledMealSlots resolves which meal slots are open for voting on a date:
// the per-date override wins, then the poll-level default, then every slot.
// The result preserves the fixed vocabulary order.
func EnabledMealSlots(poll models.Poll, date string) []string {
	t, ok := parseDayKey(date)
	if !ok {
		return nil
	}
	key := dayKey(t)

	pick := func(allowed []string) []string {
		var out []string
		for _, m := range models.AllMealSlots {
			for _, a := range allowed {
				if m == a {
					out = append(out, m)
					break
				}
			}
		}
		return out
	}

	if perDate := poll.EventOptions.MealTimesPerDate[key]; len(perDate) > 0 {
		return pick(perDate)
	}
	if len(poll.EventOptions.MealTimes) > 0 {
		return pick(poll.EventOptions.MealTimes)
	}
	out := make([]string, len(models.AllMealSlots))
	copy(out, models.AllMealSlots)
	return out
}

// ResolveMealSlot picks the meal slot for the winning date. Every enabled
// slot is scored, with unanswered slots counting as zero, and a strictly
// highest score wins outright. A tie, or an organiser preference of
// "either", falls back to the fixed priority list. Returns "" when no
// slots are enabled for the date.
func ResolveMealSlot(voters []Voter, poll models.Poll, date string) string {
	enabled := EnabledMealSlots(poll, date)
	if len(enabled) == 0 {
		return ""
	}

	if poll.EventOptions.PreferredMealTime == models.MealEither {
		return fallbackMealSlot(enabled)
	}

	t, ok := parseDayKey(date)
	if !ok {
		return fallbackMealSlot(enabled)
	}
	key := dayKey(t)

	tallies := make(map[string]*tally, len(enabled))
	for _, slot := range enabled {
		tallies[slot] = &tally{}
	}
	for _, v := range voters {
		for slot, choice := range v.MealChoices[key] {
			tl, ok := tallies[slot]
			if !ok {
				continue // slot not enabled for this date
			}
			switch choice {
			case models.ChoiceYes:
				tl.yes = append(tl.yes, v.Name)
			case models.ChoiceMaybe:
				tl.maybe = append(tl.maybe, v.Name)
			case models.ChoiceNo:
				tl.no = append(tl.no, v.Name)
			}
		}
	}

	// Unanswered slots stay in the comparison at zero. A slot whose only
	// responses are rejections must tie with them, not win by default.
	best := ""
	bestScore := 0
	tied := false
	for _, slot := range enabled {
		s := tallies[slot].score()
		switch {
		case best == "" || s > bestScore:
			best, bestScore, tied = slot, s, false
		case s == bestScore:
			tied = true
		}
	}

	if tied {
		return fallbackMealSlot(enabled)
	}
	return best
}

// fallbackMealSlot returns the first enabled slot in fixed priority order.
func fallbackMealSlot(enabled []string) string {
	for _, p := range fallbackMealPriority {
		for _, e := range enabled {
			if p == e {
				return p
			}
		}
	}
	return ""
}
