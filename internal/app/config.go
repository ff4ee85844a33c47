package app

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/staticpipe/internal/render"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	// Paths are the description files or directories to load.
	Paths []string

	LogFormat string
	LogLevel  string
	// Format is the output format of plans and listings.
	Format render.Format
	// Reserved names are never generated for unnamed columns.
	Reserved []string
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}
	if cfg.Format == "" {
		cfg.Format = render.Table
	}

	cfg.LogFormat = strings.ToLower(cfg.LogFormat)
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, errors.New("invalid log-format: must be 'text' or 'json'")
	}

	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, errors.New("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	format, err := render.ParseFormat(string(cfg.Format))
	if err != nil {
		return nil, err
	}
	cfg.Format = format

	for _, name := range cfg.Reserved {
		if name == "" {
			return nil, fmt.Errorf("reserved column names cannot be empty")
		}
	}
	return &cfg, nil
}
