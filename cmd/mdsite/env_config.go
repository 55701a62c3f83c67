package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-mdsite/internal/config"
)

// envPrefix is the prefix of every recognized environment variable.
const envPrefix = "MDSITE_"

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath    string        // MDSITE_CONFIG: config file name or path
	Addr          string        // MDSITE_ADDR: listen address
	ContentDir    string        // MDSITE_CONTENT_DIR: local content directory
	ContentRemote string        // MDSITE_CONTENT_REMOTE: remote content base URL
	OutputDir     string        // MDSITE_OUTPUT_DIR: build output directory
	AssetPath     string        // MDSITE_ASSET_PATH: custom asset directory
	Workers       int           // MDSITE_WORKERS: parallel build workers
	Timeout       time.Duration // MDSITE_TIMEOUT: page check timeout
}

// knownEnvVars lists valid MDSITE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDSITE_CONFIG":         true,
	"MDSITE_ADDR":           true,
	"MDSITE_CONTENT_DIR":    true,
	"MDSITE_CONTENT_REMOTE": true,
	"MDSITE_OUTPUT_DIR":     true,
	"MDSITE_ASSET_PATH":     true,
	"MDSITE_WORKERS":        true,
	"MDSITE_TIMEOUT":        true,
	"MDSITE_CONTAINER":      true,
}

// loadEnvConfig reads configuration from environment variables.
// Malformed numbers and durations are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:    getenv("MDSITE_CONFIG"),
		Addr:          getenv("MDSITE_ADDR"),
		ContentDir:    getenv("MDSITE_CONTENT_DIR"),
		ContentRemote: getenv("MDSITE_CONTENT_REMOTE"),
		OutputDir:     getenv("MDSITE_OUTPUT_DIR"),
		AssetPath:     getenv("MDSITE_ASSET_PATH"),
	}

	if timeout := getenv("MDSITE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := getenv("MDSITE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars writes a warning for every unrecognized MDSITE_* variable.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, kv := range environ {
		if !strings.HasPrefix(kv, envPrefix) {
			continue
		}
		name, _, _ := strings.Cut(kv, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig applies set environment values over the loaded config.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeSiteFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.ContentDir != "" {
		cfg.Content.Dir = env.ContentDir
	}
	if env.ContentRemote != "" {
		cfg.Content.Remote = env.ContentRemote
	}
	if env.OutputDir != "" {
		cfg.Output.Dir = env.OutputDir
	}
	if env.AssetPath != "" {
		cfg.Assets.BasePath = env.AssetPath
	}
}
