// Package config loads engine configuration from a TOML file, falling back
// to defaults for anything the file omits or when no file is given.
package config

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds the engine's runtime options: thinking time, transposition
// table sizing, and the paths to the Zobrist mask and opening book the
// engine loads at startup.
type Config struct {
	Search SearchConfig
	Log    LogConfig
}

// SearchConfig controls the search harness.
type SearchConfig struct {
	// ThinkingTimeMillis bounds how long a search may run per move. Zero
	// means unbounded (depth-limited only).
	ThinkingTimeMillis int `toml:"thinking_time_millis"`
	// DepthLimit bounds the iterative-deepening depth. Zero means
	// unbounded (deadline-limited only).
	DepthLimit int `toml:"depth_limit"`
	// TranspositionCapacity is the number of entries in the transposition
	// table. Zero falls back to search.DefaultTranspositionCapacity.
	TranspositionCapacity int `toml:"transposition_capacity"`
	// BookPly is the full-move number up to which the opening book is
	// consulted before falling back to search.
	BookPly int `toml:"book_ply"`
	// ZobristMaskPath points to a saved mask file. Empty generates a fresh
	// mask at startup with ZobristSeed, which is fine for play but means
	// any opening book must have been built against the same seed.
	ZobristMaskPath string `toml:"zobrist_mask_path"`
	ZobristSeed     int64  `toml:"zobrist_seed"`
	// BookPath points to a JSON opening book built by the openingbook
	// command. Empty disables the opening book.
	BookPath string `toml:"book_path"`
}

// LogConfig holds the configured log level. Nothing in this module reads
// it: neither the engine nor the CLI changes logging verbosity from it.
type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file is loaded.
func Default() Config {
	return Config{
		Search: SearchConfig{
			ThinkingTimeMillis:    3000,
			TranspositionCapacity: 500_000,
			BookPly:               15,
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads and decodes a TOML config file at path, starting from
// Default() so any field the file omits keeps its default value.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: decoding %v: %w", path, err)
	}
	return cfg, nil
}
