// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables and indexes.

# Portability

The same DDL runs on SQLite (modernc.org/sqlite) and PostgreSQL (lib/pq):
JSON payloads live in TEXT columns and timestamps default to
CURRENT_TIMESTAMP. Which driver is used comes from cliparse.Config.

# Tables

The schema includes:

  - poll: Poll metadata, candidate dates (JSON), event options (JSON),
    and the finalisation fields
  - vote: One row per submission with per-date choices, per-slot meal
    choices, and holiday windows, all as JSON
  - maybe_nudge: One claim row per (poll, date) guarding nudge sends

# Relationships

	poll 1──* vote
	poll 1──* maybe_nudge

All foreign keys use ON DELETE CASCADE.
*/
package db
