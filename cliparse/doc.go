// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 4217)
  - DatabaseURL: Database connection string (required)
  - DatabaseType: "sqlite" or "postgres" (default: sqlite)
  - EditTokenSalt: Secret for organiser edit token HMAC (required)
  - ShareSlugSalt: Secret for share slug generation (required)

# CLI Flags

	-p          Server port
	-d          Database URL
	-t          Database type
	-edit-salt  Edit token salt
	-slug-salt  Share slug salt

# Environment Variables

Flags fall back to environment variables:

	PORT            → -p
	DATABASE_URL    → -d
	DATABASE_TYPE   → -t
	EDIT_TOKEN_SALT → -edit-salt
	SHARE_SLUG_SALT → -slug-salt

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - DATABASE_URL must be provided
  - DATABASE_TYPE must be sqlite or postgres
  - EDIT_TOKEN_SALT must be provided
  - SHARE_SLUG_SALT must be provided

# Example

	// In main.go
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	db, err := sql.Open(cfg.DatabaseType, cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(db, cfg)
*/
package cliparse
