// Package config loads runtime settings from SYLLABUS_* environment
// variables over built-in defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// GitHubConfig locates the user data file in a GitHub repository.
type GitHubConfig struct {
	API        string
	RawURL     string // read-only access without a token
	Owner      string
	Repo       string
	Branch     string
	Path       string
	Token      string
	RatePerSec float64
	TimeoutMs  int
	MaxRetries int
}

// Configured reports whether a repository has been named.
func (g GitHubConfig) Configured() bool {
	return g.Owner != "" && g.Repo != ""
}

// Config holds all runtime settings.
type Config struct {
	DBPath       string
	CatalogPath  string // empty uses the embedded catalog
	GitHub       GitHubConfig
	AutoSync     bool
	SyncInterval time.Duration
	SyncOnExit   bool
	LogEvents    bool
	Theme        string
}

// Default returns the built-in settings. DBPath is left empty when the
// home directory cannot be determined.
func Default() Config {
	cfg := Config{
		GitHub: GitHubConfig{
			API:        "https://api.github.com",
			RawURL:     "https://raw.githubusercontent.com",
			Branch:     "main",
			Path:       "data/user-data.json",
			RatePerSec: 5,
			TimeoutMs:  10000,
			MaxRetries: 1,
		},
		AutoSync:     true,
		SyncInterval: 5 * time.Minute,
		SyncOnExit:   true,
		Theme:        "dark",
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.DBPath = filepath.Join(home, ".syllabus", "syllabus.db")
	}
	return cfg
}

// Load reads configuration from environment variables, falling back to
// defaults for any unset or malformed values.
func Load() Config {
	cfg := Default()

	if v := os.Getenv("SYLLABUS_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("SYLLABUS_CATALOG"); v != "" {
		cfg.CatalogPath = v
	}
	if v := os.Getenv("SYLLABUS_GITHUB_API"); v != "" {
		cfg.GitHub.API = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("SYLLABUS_GITHUB_RAW"); v != "" {
		cfg.GitHub.RawURL = strings.TrimRight(v, "/")
	}
	if v := os.Getenv("SYLLABUS_GITHUB_OWNER"); v != "" {
		cfg.GitHub.Owner = v
	}
	if v := os.Getenv("SYLLABUS_GITHUB_REPO"); v != "" {
		cfg.GitHub.Repo = v
	}
	if v := os.Getenv("SYLLABUS_GITHUB_BRANCH"); v != "" {
		cfg.GitHub.Branch = v
	}
	if v := os.Getenv("SYLLABUS_GITHUB_PATH"); v != "" {
		cfg.GitHub.Path = strings.TrimPrefix(v, "/")
	}
	if v := os.Getenv("SYLLABUS_GITHUB_TOKEN"); v != "" {
		cfg.GitHub.Token = v
	}
	if v := os.Getenv("SYLLABUS_RATE_PER_SEC"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.GitHub.RatePerSec = f
		}
	}
	if v := os.Getenv("SYLLABUS_GITHUB_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.GitHub.TimeoutMs = n
		}
	}
	if v := os.Getenv("SYLLABUS_GITHUB_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.GitHub.MaxRetries = n
		}
	}
	if v := os.Getenv("SYLLABUS_AUTOSYNC"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.AutoSync = b
		}
	}
	if v := os.Getenv("SYLLABUS_AUTOSYNC_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.SyncInterval = d
		}
	}
	if v := os.Getenv("SYLLABUS_SYNC_ON_EXIT"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.SyncOnExit = b
		}
	}
	if v := os.Getenv("SYLLABUS_LOG"); v != "" {
		cfg.LogEvents, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("SYLLABUS_THEME"); v == "light" || v == "dark" {
		cfg.Theme = v
	}

	return cfg
}

// Validate checks settings that cannot be defaulted.
func (c Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("no cache database path: set SYLLABUS_DB")
	}
	if c.GitHub.Token != "" && !c.GitHub.Configured() {
		return fmt.Errorf("SYLLABUS_GITHUB_TOKEN is set but SYLLABUS_GITHUB_OWNER or SYLLABUS_GITHUB_REPO is missing")
	}
	return nil
}
