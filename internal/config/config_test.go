package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "https://api.github.com", cfg.GitHub.API)
	assert.Equal(t, "main", cfg.GitHub.Branch)
	assert.Equal(t, "data/user-data.json", cfg.GitHub.Path)
	assert.Equal(t, 5*time.Minute, cfg.SyncInterval)
	assert.True(t, cfg.AutoSync)
	assert.True(t, cfg.SyncOnExit)
	assert.False(t, cfg.GitHub.Configured())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SYLLABUS_DB", "/tmp/s.db")
	t.Setenv("SYLLABUS_GITHUB_API", "http://localhost:8080/")
	t.Setenv("SYLLABUS_GITHUB_OWNER", "ada")
	t.Setenv("SYLLABUS_GITHUB_REPO", "notes")
	t.Setenv("SYLLABUS_GITHUB_PATH", "/progress.json")
	t.Setenv("SYLLABUS_AUTOSYNC_INTERVAL", "90s")
	t.Setenv("SYLLABUS_AUTOSYNC", "false")
	t.Setenv("SYLLABUS_RATE_PER_SEC", "2.5")
	t.Setenv("SYLLABUS_LOG", "1")

	cfg := Load()

	assert.Equal(t, "/tmp/s.db", cfg.DBPath)
	assert.Equal(t, "http://localhost:8080", cfg.GitHub.API)
	assert.Equal(t, "progress.json", cfg.GitHub.Path)
	assert.True(t, cfg.GitHub.Configured())
	assert.Equal(t, 90*time.Second, cfg.SyncInterval)
	assert.False(t, cfg.AutoSync)
	assert.Equal(t, 2.5, cfg.GitHub.RatePerSec)
	assert.True(t, cfg.LogEvents)
}

func TestLoad_MalformedValuesIgnored(t *testing.T) {
	t.Setenv("SYLLABUS_AUTOSYNC_INTERVAL", "soon")
	t.Setenv("SYLLABUS_RATE_PER_SEC", "-1")
	t.Setenv("SYLLABUS_GITHUB_MAX_RETRIES", "many")
	t.Setenv("SYLLABUS_THEME", "sepia")

	cfg := Load()

	assert.Equal(t, 5*time.Minute, cfg.SyncInterval)
	assert.Equal(t, 5.0, cfg.GitHub.RatePerSec)
	assert.Equal(t, 1, cfg.GitHub.MaxRetries)
	assert.Equal(t, "dark", cfg.Theme)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.DBPath = "/tmp/x.db"
	require.NoError(t, cfg.Validate())

	cfg.GitHub.Token = "ghp_x"
	assert.ErrorContains(t, cfg.Validate(), "SYLLABUS_GITHUB_OWNER")

	cfg.DBPath = ""
	assert.ErrorContains(t, cfg.Validate(), "SYLLABUS_DB")
}
