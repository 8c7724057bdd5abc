package config

import (
	"fmt"
	"os"
)

// BodyMode selects which text a page embeds for each post.
type BodyMode string

const (
	// BodyModeCurrent renders the table's current rendered Body.
	BodyModeCurrent BodyMode = "current"
	// BodyModeHistory renders the body source reconstructed from the
	// PostHistory table.
	BodyModeHistory BodyMode = "history"
)

// IndexOrder selects how the question index page is ordered.
type IndexOrder string

const (
	IndexOrderByID    IndexOrder = "id"
	IndexOrderByScore IndexOrder = "score"
)

type Config struct {
	DataDir    string
	OutDir     string
	BodyMode   BodyMode
	IndexOrder IndexOrder
	Addr       string
	Debug      bool
}

// FromEnv builds the configuration from environment variables, with the
// same fallback-to-default pattern used across the env surface.
func FromEnv() (*Config, error) {
	cfg := &Config{
		DataDir:    getenv("SEARCHIVE_DATA_DIR", "data"),
		OutDir:     getenv("SEARCHIVE_OUT_DIR", "."),
		BodyMode:   BodyMode(getenv("SEARCHIVE_BODY_MODE", string(BodyModeHistory))),
		IndexOrder: IndexOrder(getenv("SEARCHIVE_INDEX_ORDER", string(IndexOrderByScore))),
		Addr:       getenv("SEARCHIVE_ADDR", ":8080"),
		Debug:      os.Getenv("SEARCHIVE_DEBUG") != "",
	}

	switch cfg.BodyMode {
	case BodyModeCurrent, BodyModeHistory:
	default:
		return nil, fmt.Errorf("config: invalid SEARCHIVE_BODY_MODE %q (want %q or %q)",
			cfg.BodyMode, BodyModeCurrent, BodyModeHistory)
	}

	switch cfg.IndexOrder {
	case IndexOrderByID, IndexOrderByScore:
	default:
		return nil, fmt.Errorf("config: invalid SEARCHIVE_INDEX_ORDER %q (want %q or %q)",
			cfg.IndexOrder, IndexOrderByID, IndexOrderByScore)
	}

	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
