// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"sort"

	"github.com/setthedate/planner/models"
)

// noPenaltyMinResponders is the responder count below which "no" votes do
// not subtract from a date's score. A small "no" count is statistically
// unreliable with few responders and should not veto a date.
const noPenaltyMinResponders = 6

// tally holds the voter names per choice for one date or meal slot.
type tally struct {
	yes   []string
	maybe []string
	no    []string
}

func (t tally) responders() int {
	return len(t.yes) + len(t.maybe) + len(t.no)
}

// score computes 2*yes + maybe, subtracting no votes only once enough
// people have responded.
func (t tally) score() int {
	s := 2*len(t.yes) + len(t.maybe)
	if t.responders() >= noPenaltyMinResponders {
		s -= len(t.no)
	}
	return s
}

// RankDates tallies normalized votes against the candidate dates and
// returns them ranked best-first. Ranking order: score descending, then
// fewer no votes, then earlier calendar date. The order is total, so the
// output is deterministic for any input.
//
// Votes on dates outside the candidate list are ignored. An empty candidate
// list yields empty output. With no votes at all every date scores zero and
// the earliest date ranks first.
func RankDates(voters []Voter, candidateDates []string) []models.DateScore {
	seen := make(map[string]bool, len(candidateDates))
	dates := make([]string, 0, len(candidateDates))
	for _, d := range candidateDates {
		t, ok := parseDayKey(d)
		if !ok {
			continue
		}
		k := dayKey(t)
		if seen[k] {
			continue
		}
		seen[k] = true
		dates = append(dates, k)
	}

	scores := make([]models.DateScore, 0, len(dates))
	for _, date := range dates {
		var tl tally
		for _, v := range voters {
			switch v.Choices[date] {
			case models.ChoiceYes:
				tl.yes = append(tl.yes, v.Name)
			case models.ChoiceMaybe:
				tl.maybe = append(tl.maybe, v.Name)
			case models.ChoiceNo:
				tl.no = append(tl.no, v.Name)
			}
		}
		scores = append(scores, models.DateScore{
			Date:  date,
			Yes:   tl.yes,
			Maybe: tl.maybe,
			No:    tl.no,
			Score: tl.score(),
		})
	}

	sort.Slice(scores, func(i, j int) bool {
		a, b := scores[i], scores[j]
		if a.Score != b.Score {
			return a.Score > b.Score
		}
		if len(a.No) != len(b.No) {
			return len(a.No) < len(b.No)
		}
		// ISO date keys: lexicographic order is chronological order.
		return a.Date < b.Date
	})

	for i := range scores {
		scores[i].Rank = i + 1
		if scores[i].Yes == nil {
			scores[i].Yes = []string{}
		}
		if scores[i].Maybe == nil {
			scores[i].Maybe = []string{}
		}
		if scores[i].No == nil {
			scores[i].No = []string{}
		}
	}
	return scores
}

// SuggestedDate returns the top-ranked date key, or "" when there are no
// rankings.
func SuggestedDate(rankings []models.DateScore) string {
	if len(rankings) == 0 {
		return ""
	}
	return rankings[0].Date
}
