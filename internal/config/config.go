package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Environment variables read by Load.
const (
	EnvJobs     = "PLAYDETAILS_JOBS"
	EnvOutput   = "PLAYDETAILS_OUTPUT"
	EnvLogLevel = "PLAYDETAILS_LOG_LEVEL"
	EnvType     = "PLAYDETAILS_TYPE"
)

// Config holds defaults for the CLI. Flags override these values.
type Config struct {
	Jobs        int // 0 means GOMAXPROCS
	Output      string
	LogLevel    slog.Level
	ProductType string
}

// EnvLookup looks up an environment variable.
type EnvLookup func(string) string

// Option configures Load.
type Option func(*loader)

// WithEnvLookup sets the function used to read environment variables.
// Defaults to os.Getenv.
func WithEnvLookup(fn EnvLookup) Option {
	return func(l *loader) {
		if fn != nil {
			l.getenv = fn
		}
	}
}

type loader struct {
	getenv EnvLookup
}

// Load reads the configuration from the environment.
func Load(opts ...Option) (Config, error) {
	l := &loader{getenv: os.Getenv}

	for _, opt := range opts {
		opt(l)
	}

	cfg := Config{
		Output:      "text",
		LogLevel:    slog.LevelWarn,
		ProductType: "inapp",
	}

	if v := strings.TrimSpace(l.getenv(EnvJobs)); v != "" {
		jobs, err := strconv.Atoi(v)
		if err != nil || jobs < 0 {
			return Config{}, fmt.Errorf("parsing %s=%q: expected a non-negative integer", EnvJobs, v)
		}

		cfg.Jobs = jobs
	}

	if v := strings.TrimSpace(l.getenv(EnvOutput)); v != "" {
		cfg.Output = v
	}

	if v := strings.TrimSpace(l.getenv(EnvLogLevel)); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return Config{}, fmt.Errorf("parsing %s=%q: %w", EnvLogLevel, v, err)
		}
	}

	if v := strings.TrimSpace(l.getenv(EnvType)); v != "" {
		cfg.ProductType = v
	}

	return cfg, nil
}
