// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/setthedate/planner/models"
	"github.com/setthedate/planner/testutil"
)

func submitVote(handler *VotingHandler, pollID string, body interface{}) *httptest.ResponseRecorder {
	var payload []byte
	if str, ok := body.(string); ok {
		payload = []byte(str)
	} else {
		payload, _ = json.Marshal(body)
	}

	req := httptest.NewRequest("POST", "/polls/"+pollID+"/votes", bytes.NewReader(payload))
	req.SetPathValue("id", pollID)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "203.0.113.7:4444"
	w := httptest.NewRecorder()
	handler.SubmitVote(w, req)
	return w
}

func TestSubmitVote(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(db, cfg)

	pollID, _, shareSlug := testutil.CreateTestPoll(t, db, cfg, models.EventGeneral,
		[]string{"2024-06-01", "2024-06-08"}, models.EventOptions{})

	t.Run("valid vote", func(t *testing.T) {
		w := submitVote(handler, pollID, models.SubmitVoteRequest{
			DisplayName: "Alice",
			Email:       "alice@example.com",
			Votes:       map[string]string{"2024-06-01": "yes", "2024-06-08": "maybe"},
		})
		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp models.SubmitVoteResponse
		testutil.AssertJSON(t, w, &resp)
		if resp.VoteID == "" {
			t.Error("Expected non-empty vote_id")
		}

		// Vote row stored with a hashed IP, never the address itself
		var ipHash string
		err := db.QueryRow("SELECT ip_hash FROM vote WHERE id = $1", resp.VoteID).Scan(&ipHash)
		if err != nil {
			t.Fatalf("Failed to query vote: %v", err)
		}
		if ipHash == "" || strings.Contains(ipHash, "203.0.113.7") {
			t.Errorf("Expected salted hash, got '%s'", ipHash)
		}
	})

	t.Run("vote via share slug", func(t *testing.T) {
		w := submitVote(handler, shareSlug, models.SubmitVoteRequest{
			DisplayName: "Bob",
			Votes:       map[string]string{"2024-06-01": "no"},
		})
		testutil.AssertStatus(t, w, http.StatusCreated)
	})

	t.Run("missing display name and email", func(t *testing.T) {
		w := submitVote(handler, pollID, models.SubmitVoteRequest{
			Votes: map[string]string{"2024-06-01": "yes"},
		})
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("no responses at all", func(t *testing.T) {
		w := submitVote(handler, pollID, models.SubmitVoteRequest{
			DisplayName: "Carol",
		})
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("invalid choice value", func(t *testing.T) {
		w := submitVote(handler, pollID, models.SubmitVoteRequest{
			DisplayName: "Carol",
			Votes:       map[string]string{"2024-06-01": "perhaps"},
		})
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("malformed date key", func(t *testing.T) {
		w := submitVote(handler, pollID, models.SubmitVoteRequest{
			DisplayName: "Carol",
			Votes:       map[string]string{"June 1st": "yes"},
		})
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		w := submitVote(handler, pollID, "{not json")
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("poll not found", func(t *testing.T) {
		w := submitVote(handler, "nonexistent", models.SubmitVoteRequest{
			DisplayName: "Alice",
			Votes:       map[string]string{"2024-06-01": "yes"},
		})
		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestSubmitVote_HolidayWindows(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(db, cfg)

	pollID, _, _ := testutil.CreateTestPoll(t, db, cfg, models.EventHoliday,
		[]string{"2024-08-01", "2024-08-10"}, models.EventOptions{MinTripDays: 3})

	t.Run("valid window", func(t *testing.T) {
		w := submitVote(handler, pollID, models.SubmitVoteRequest{
			DisplayName: "Alice",
			HolidayChoices: []models.HolidayChoice{
				{Start: "2024-08-02", End: "2024-08-06", PreferredNights: "4"},
			},
		})
		testutil.AssertStatus(t, w, http.StatusCreated)
	})

	t.Run("holiday vote needs a window", func(t *testing.T) {
		w := submitVote(handler, pollID, models.SubmitVoteRequest{
			DisplayName: "Bob",
			Votes:       map[string]string{"2024-08-01": "yes"},
		})
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("window starts after it ends", func(t *testing.T) {
		w := submitVote(handler, pollID, models.SubmitVoteRequest{
			DisplayName: "Bob",
			HolidayChoices: []models.HolidayChoice{
				{Start: "2024-08-06", End: "2024-08-02"},
			},
		})
		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestSubmitVote_ClosedPolls(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(db, cfg)

	vote := models.SubmitVoteRequest{
		DisplayName: "Alice",
		Votes:       map[string]string{"2024-06-01": "yes"},
	}

	t.Run("finalised poll rejects votes", func(t *testing.T) {
		pollID, _, _ := testutil.CreateTestPoll(t, db, cfg, models.EventGeneral,
			[]string{"2024-06-01"}, models.EventOptions{})
		_, err := db.Exec(`UPDATE poll SET final_date = '2024-06-01', finalised_at = $1 WHERE id = $2`,
			time.Now().UTC(), pollID)
		if err != nil {
			t.Fatalf("Failed to finalise poll: %v", err)
		}

		w := submitVote(handler, pollID, vote)
		testutil.AssertStatus(t, w, http.StatusConflict)
	})

	t.Run("past deadline rejects votes", func(t *testing.T) {
		pollID, _, _ := testutil.CreateTestPoll(t, db, cfg, models.EventGeneral,
			[]string{"2024-06-01"}, models.EventOptions{})
		_, err := db.Exec(`UPDATE poll SET deadline = $1 WHERE id = $2`,
			time.Now().Add(-time.Hour).UTC(), pollID)
		if err != nil {
			t.Fatalf("Failed to set deadline: %v", err)
		}

		w := submitVote(handler, pollID, vote)
		testutil.AssertStatus(t, w, http.StatusConflict)
	})
}

func TestGetVotes(t *testing.T) {
	db := testutil.SetupTestDB(t)
	cfg := testutil.GetTestConfig()
	handler := NewVotingHandler(db, cfg)

	pollID, _, _ := testutil.CreateTestPoll(t, db, cfg, models.EventGeneral,
		[]string{"2024-06-01"}, models.EventOptions{})

	hash := "deadbeefdeadbeef"
	testutil.SubmitTestVote(t, db, pollID, models.Vote{
		DisplayName: "Alice",
		Email:       "alice@example.com",
		Votes:       map[string]string{"2024-06-01": "yes"},
		IPHash:      &hash,
		CreatedAt:   time.Now().Add(-time.Minute).UTC(),
	})
	testutil.SubmitTestVote(t, db, pollID, models.Vote{
		DisplayName: "Bob",
		Votes:       map[string]string{"2024-06-01": "maybe"},
	})

	req := httptest.NewRequest("GET", "/polls/"+pollID+"/votes", nil)
	req.SetPathValue("id", pollID)
	w := httptest.NewRecorder()

	handler.GetVotes(w, req)

	testutil.AssertStatus(t, w, http.StatusOK)

	// IP hashes must never appear in the response body
	if strings.Contains(w.Body.String(), hash) {
		t.Error("Response leaked the IP hash")
	}

	var resp struct {
		Votes     []models.Vote `json:"votes"`
		VoteCount int           `json:"vote_count"`
	}
	testutil.AssertJSON(t, w, &resp)

	if resp.VoteCount != 2 {
		t.Errorf("Expected vote_count 2, got %d", resp.VoteCount)
	}
	if len(resp.Votes) != 2 {
		t.Fatalf("Expected 2 votes, got %d", len(resp.Votes))
	}
	if resp.Votes[0].DisplayName != "Alice" {
		t.Errorf("Expected oldest vote first, got '%s'", resp.Votes[0].DisplayName)
	}
}
