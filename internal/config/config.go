// Package config resolves where the optimizer reads and writes. Values come
// from the environment, optionally seeded from a .env file. The module list
// itself is fixed in package bundle and is not configurable.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/notnot-ext/bundleopt/kit/colorlog"
)

// Environment variable keys
const (
	EnvRoot     = "NOTNOT_ROOT"
	EnvOutDir   = "NOTNOT_OUT_DIR"
	EnvLogLevel = "NOTNOT_LOG_LEVEL"
)

const (
	DefaultRoot   = "."
	DefaultOutDir = "dist-optimized"
)

type Config struct {
	Root     string
	OutDir   string
	LogLevel slog.Level
	Layout   Layout
}

// Load reads dotenvPath (if it exists) into the process environment without
// overriding variables that are already set, then builds the Config.
func Load(dotenvPath string) (*Config, error) {
	if dotenvPath != "" {
		if err := godotenv.Load(dotenvPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config.Load: failed to read %s: %w", dotenvPath, err)
		}
	}
	return FromEnv(), nil
}

// FromEnv builds a Config from the current environment.
func FromEnv() *Config {
	root := getenv(EnvRoot, DefaultRoot)
	out := getenv(EnvOutDir, DefaultOutDir)
	return &Config{
		Root:     filepath.Clean(root),
		OutDir:   out,
		LogLevel: colorlog.ParseLevel(os.Getenv(EnvLogLevel)),
		Layout:   NewLayout(root, out),
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
