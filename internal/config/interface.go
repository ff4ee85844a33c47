package config

import "context"

// Loader is the interface for a format-specific description loader.
type Loader interface {
	// Load reads the descriptions found at paths and merges them into one
	// format-agnostic model.
	Load(ctx context.Context, paths ...string) (*Model, error)
}
