// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	_ "modernc.org/sqlite"

	"github.com/setthedate/planner/auth"
	"github.com/setthedate/planner/cliparse"
	"github.com/setthedate/planner/db"
	"github.com/setthedate/planner/models"
)

var dbSeq atomic.Int64

// SetupTestDB opens a fresh in-memory SQLite database with the full
// schema. Each call gets its own database; it lives until Close.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	name := fmt.Sprintf("testdb_%d", dbSeq.Add(1))
	conn, err := sql.Open("sqlite", fmt.Sprintf("file:%s?mode=memory&cache=shared", name))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	// A single connection keeps the shared-cache memory database alive
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	t.Cleanup(func() { conn.Close() })
	return conn
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:          4217,
		DatabaseURL:   "file:test?mode=memory",
		DatabaseType:  "sqlite",
		EditTokenSalt: "test-edit-salt",
		ShareSlugSalt: "test-slug-salt",
	}
}

// CreateTestPoll creates a poll and returns its ID, edit token, and share slug
func CreateTestPoll(t *testing.T, conn *sql.DB, cfg cliparse.Config, eventType string, dates []string, opts models.EventOptions) (pollID, editToken, shareSlug string) {
	t.Helper()

	pollID, _ = auth.GenerateID(16)
	editToken = auth.GenerateEditToken(pollID, cfg.EditTokenSalt)
	shareSlug = auth.GenerateShareSlug(pollID, cfg.ShareSlugSalt)

	datesJSON, _ := json.Marshal(dates)
	optsJSON, _ := json.Marshal(opts)

	_, err := conn.Exec(`
		INSERT INTO poll (id, title, location, organiser_name, event_type, dates, event_options, share_slug, created_at)
		VALUES ($1, 'Test Poll', 'Testville', 'TestUser', $2, $3, $4, $5, $6)
	`, pollID, eventType, string(datesJSON), string(optsJSON), shareSlug, time.Now().UTC())
	if err != nil {
		t.Fatalf("Failed to create test poll: %v", err)
	}

	return pollID, editToken, shareSlug
}

// SubmitTestVote inserts a vote row directly and returns its ID.
// Zero-value fields in v fall back to sensible defaults.
func SubmitTestVote(t *testing.T, conn *sql.DB, pollID string, v models.Vote) string {
	t.Helper()

	voteID := v.ID
	if voteID == "" {
		voteID, _ = auth.GenerateID(16)
	}
	createdAt := v.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	choicesJSON, _ := json.Marshal(v.Votes)
	mealJSON, _ := json.Marshal(v.MealVotes)
	holidayJSON, _ := json.Marshal(v.HolidayChoices)

	_, err := conn.Exec(`
		INSERT INTO vote (id, poll_id, display_name, email, message, choices, meal_choices, holiday_choices, ip_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, voteID, pollID, v.DisplayName, v.Email, v.Message,
		string(choicesJSON), string(mealJSON), string(holidayJSON), v.IPHash, createdAt)
	if err != nil {
		t.Fatalf("Failed to create test vote: %v", err)
	}

	return voteID
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
