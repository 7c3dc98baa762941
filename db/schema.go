// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// The DDL is restricted to the dialect both SQLite and PostgreSQL accept:
// TEXT columns for JSON payloads, CURRENT_TIMESTAMP defaults.
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Polls
CREATE TABLE IF NOT EXISTS poll (
    id TEXT PRIMARY KEY,
    title TEXT NOT NULL,
    location TEXT,
    organiser_name TEXT NOT NULL,
    event_type TEXT NOT NULL CHECK (event_type IN ('general', 'meal', 'holiday')),
    dates TEXT NOT NULL,
    event_options TEXT NOT NULL DEFAULT '{}',
    share_slug TEXT UNIQUE,
    deadline TIMESTAMP,
    final_date TEXT,
    final_meal TEXT,
    finalised_at TIMESTAMP,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_poll_share_slug ON poll(share_slug);

-- Votes (one row per submission; the engine deduplicates per voter)
CREATE TABLE IF NOT EXISTS vote (
    id TEXT PRIMARY KEY,
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    display_name TEXT NOT NULL,
    email TEXT,
    message TEXT,
    choices TEXT NOT NULL DEFAULT '{}',
    meal_choices TEXT NOT NULL DEFAULT '{}',
    holiday_choices TEXT NOT NULL DEFAULT '[]',
    ip_hash TEXT,
    created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_vote_poll_id ON vote(poll_id);

-- Maybe nudges: one claim row per (poll, date), inserted inside the
-- sending transaction so each date is nudged at most once
CREATE TABLE IF NOT EXISTS maybe_nudge (
    poll_id TEXT NOT NULL REFERENCES poll(id) ON DELETE CASCADE,
    date_option TEXT NOT NULL,
    sent_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
    sent_count INTEGER NOT NULL DEFAULT 0,
    PRIMARY KEY (poll_id, date_option)
);
`
