package cliparse

import (
	"errors"
	"flag"
	"os"
	"strconv"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	EditTokenSalt string
	ShareSlugSalt string
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("planner", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.EditTokenSalt, "edit-salt", "", "Edit token salt (prefer env)")
	fs.StringVar(&cfg.ShareSlugSalt, "slug-salt", "", "Share slug salt (prefer env)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 4217 // default
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = "sqlite"
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, errors.New("DATABASE_TYPE must be sqlite or postgres")
	}

	// Secrets - MUST be provided
	if cfg.EditTokenSalt == "" {
		cfg.EditTokenSalt = os.Getenv("EDIT_TOKEN_SALT")
	}
	if cfg.EditTokenSalt == "" {
		return Config{}, errors.New("EDIT_TOKEN_SALT required")
	}

	if cfg.ShareSlugSalt == "" {
		cfg.ShareSlugSalt = os.Getenv("SHARE_SLUG_SALT")
	}
	if cfg.ShareSlugSalt == "" {
		return Config{}, errors.New("SHARE_SLUG_SALT required")
	}

	return cfg, nil
}
