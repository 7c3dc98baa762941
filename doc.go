// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the planner API server.

Planner is a group scheduling service: organisers propose candidate
dates for a general get-together, a meal, or a multi-day trip, and the
engine turns everyone's yes/maybe/no answers into a ranked, tie-broken
recommendation.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=file:planner.db go run main.go

Or with flags:

	go run main.go -p 4217 -d "postgres://..." -t postgres

A .env file in the working directory is loaded if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - EDIT_TOKEN_SALT (-edit-salt): Secret for organiser token HMAC
  - SHARE_SLUG_SALT (-slug-salt): Secret for share slug generation

Optional settings:

  - PORT (-p): Server port (default: 4217)
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - engine: Vote normalization, date scoring, meal tie-breaks, trip
    window search, heat map projection
  - handlers: HTTP request handlers (polls, voting, results, nudges)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response types
  - auth: Token generation and validation
  - notify: Nudge delivery
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
