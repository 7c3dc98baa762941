// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package engine

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/setthedate/planner/models"
)

// voterFor builds a normalized voter with the given per-date choices.
func voterFor(name string, choices map[string]string) Voter {
	return Voter{
		Key:     name,
		Name:    name,
		Choices: choices,
	}
}

func TestRankDatesScoreFormula(t *testing.T) {
	tests := []struct {
		name      string
		yes       int
		maybe     int
		no        int
		wantScore int
	}{
		{"yes worth two", 2, 0, 0, 4},
		{"maybe worth one", 0, 3, 0, 3},
		{"small sample ignores no", 1, 0, 4, 2},  // 5 responders: no penalty off
		{"large sample counts no", 1, 0, 5, -3},  // 6 responders: penalty on
		{"mixed large sample", 2, 1, 3, 2},       // 6 responders: 4+1-3
		{"mixed small sample", 2, 1, 2, 5},       // 5 responders: 4+1
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const date = "2024-06-01"
			var voters []Voter
			for i := 0; i < tt.yes; i++ {
				voters = append(voters, voterFor(fmt.Sprintf("Yes%d", i), map[string]string{date: "yes"}))
			}
			for i := 0; i < tt.maybe; i++ {
				voters = append(voters, voterFor(fmt.Sprintf("Maybe%d", i), map[string]string{date: "maybe"}))
			}
			for i := 0; i < tt.no; i++ {
				voters = append(voters, voterFor(fmt.Sprintf("No%d", i), map[string]string{date: "no"}))
			}

			rankings := RankDates(voters, []string{date})
			require.Len(t, rankings, 1)
			assert.Equal(t, tt.wantScore, rankings[0].Score)
		})
	}
}

func TestRankDatesTieBreakEarlierDate(t *testing.T) {
	voters := []Voter{
		voterFor("Alice", map[string]string{"2024-06-01": "yes", "2024-06-08": "yes"}),
		voterFor("Bob", map[string]string{"2024-06-01": "yes", "2024-06-08": "yes"}),
	}

	// Candidates deliberately out of calendar order.
	rankings := RankDates(voters, []string{"2024-06-08", "2024-06-01"})
	require.Len(t, rankings, 2)
	assert.Equal(t, "2024-06-01", rankings[0].Date)
	assert.Equal(t, 1, rankings[0].Rank)
	assert.Equal(t, "2024-06-08", rankings[1].Date)
	assert.Equal(t, 2, rankings[1].Rank)
}

func TestRankDatesTieBreakFewerNoVotes(t *testing.T) {
	// Both dates score 2 (small sample, no penalty), but the later date
	// has fewer no votes and must still win the tie.
	voters := []Voter{
		voterFor("Alice", map[string]string{"2024-06-01": "yes", "2024-06-08": "yes"}),
		voterFor("Bob", map[string]string{"2024-06-01": "no"}),
		voterFor("Cara", map[string]string{"2024-06-01": "no"}),
	}

	rankings := RankDates(voters, []string{"2024-06-01", "2024-06-08"})
	require.Len(t, rankings, 2)
	assert.Equal(t, "2024-06-08", rankings[0].Date)
}

func TestRankDatesNoVotesAtAll(t *testing.T) {
	dates := []string{"2024-03-09", "2024-03-02", "2024-03-16"}

	rankings := RankDates(nil, dates)
	require.Len(t, rankings, 3)
	// Everything scores zero; the earliest date wins on tie-break alone.
	assert.Equal(t, "2024-03-02", rankings[0].Date)
	for _, r := range rankings {
		assert.Equal(t, 0, r.Score)
		assert.Empty(t, r.Yes)
		assert.Empty(t, r.Maybe)
		assert.Empty(t, r.No)
	}
}

func TestRankDatesEmptyCandidates(t *testing.T) {
	voters := []Voter{voterFor("Alice", map[string]string{"2024-06-01": "yes"})}
	assert.Empty(t, RankDates(voters, nil))
}

func TestRankDatesIgnoresOutOfRangeVotes(t *testing.T) {
	voters := []Voter{
		voterFor("Alice", map[string]string{
			"2024-06-01": "yes",
			"2024-09-15": "yes", // not a candidate date
		}),
	}

	rankings := RankDates(voters, []string{"2024-06-01"})
	require.Len(t, rankings, 1)
	assert.Equal(t, "2024-06-01", rankings[0].Date)
}

func TestRankDatesDeterministic(t *testing.T) {
	var voters []Voter
	choices := []string{"yes", "maybe", "no"}
	dates := []string{"2024-07-01", "2024-07-02", "2024-07-03", "2024-07-04"}
	for i := 0; i < 20; i++ {
		m := make(map[string]string)
		for j, d := range dates {
			m[d] = choices[(i+j)%3]
		}
		voters = append(voters, voterFor(fmt.Sprintf("Voter%02d", i), m))
	}

	first := RankDates(voters, dates)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, RankDates(voters, dates))
	}
}

func TestRankDatesRecordsVoterNames(t *testing.T) {
	voters := []Voter{
		voterFor("Alice", map[string]string{"2024-06-01": "yes"}),
		voterFor("Bob", map[string]string{"2024-06-01": "maybe"}),
		voterFor("Cara", map[string]string{"2024-06-01": "no"}),
	}

	rankings := RankDates(voters, []string{"2024-06-01"})
	require.Len(t, rankings, 1)
	assert.Equal(t, []string{"Alice"}, rankings[0].Yes)
	assert.Equal(t, []string{"Bob"}, rankings[0].Maybe)
	assert.Equal(t, []string{"Cara"}, rankings[0].No)
}

func TestSuggestedDate(t *testing.T) {
	assert.Equal(t, "", SuggestedDate(nil))

	rankings := []models.DateScore{{Date: "2024-06-01"}, {Date: "2024-06-08"}}
	assert.Equal(t, "2024-06-01", SuggestedDate(rankings))
}
