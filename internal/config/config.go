// Package config loads the optional ensime.toml session configuration.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the CLI-facing session configuration.
type Config struct {
	// SourceRoots are directories whose Go files seed the working set.
	SourceRoots []string `toml:"source_roots"`
	// Lint is the frontend lint category; empty disables promotion of soft
	// findings.
	Lint string `toml:"lint"`
	// IndexDB is the symbol index database path.
	IndexDB string `toml:"index_db"`
	// MaxCompletions bounds completion results when the caller passes no
	// explicit limit.
	MaxCompletions int `toml:"max_completions"`
}

// Default returns the configuration used when no file is present.
func Default() Config {
	return Config{
		IndexDB:        ".ensime/index.db",
		MaxCompletions: 50,
	}
}

// Load reads path, layering the file's values over the defaults. A missing
// file is not an error: the defaults are returned unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return cfg, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if cfg.MaxCompletions <= 0 {
		cfg.MaxCompletions = Default().MaxCompletions
	}
	if cfg.IndexDB == "" {
		cfg.IndexDB = Default().IndexDB
	}
	return cfg, nil
}
