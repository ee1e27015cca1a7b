package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func clearOptional(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"STORE_BACKEND", "DB_NAME", "TURSO_PRIMARY_URL", "TURSO_AUTH_TOKEN",
		"FIREBASE_DATABASE_URL", "FIREBASE_CREDENTIALS_FILE", "FIREBASE_API_KEY",
		"SESSION_TTL", "SLACK_BOT_TOKEN", "SLACK_CHANNEL_ID", "GCP_PROJECT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearOptional(t)
	t.Setenv("PORT", "8080")
	t.Setenv("SESSION_SECRET", "s3cret")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, "cricscore.db", cfg.DBName)
	assert.Equal(t, "s3cret", cfg.Session.Secret)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.SlackEnabled())
	assert.Empty(t, cfg.ProjectID)
}

func TestLoad_Overrides(t *testing.T) {
	clearOptional(t)
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_SECRET", "s3cret")
	t.Setenv("STORE_BACKEND", BackendFirebase)
	t.Setenv("FIREBASE_DATABASE_URL", "https://cricscore-default-rtdb.example.com")
	t.Setenv("FIREBASE_API_KEY", "key")
	t.Setenv("SESSION_TTL", "90m")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb-1")
	t.Setenv("SLACK_CHANNEL_ID", "C1")
	t.Setenv("GCP_PROJECT", "cricscore")

	cfg := Load()

	assert.Equal(t, BackendFirebase, cfg.StoreBackend)
	assert.Equal(t, "https://cricscore-default-rtdb.example.com", cfg.Firebase.DatabaseURL)
	assert.Equal(t, "key", cfg.Firebase.APIKey)
	assert.Equal(t, 90*time.Minute, cfg.Session.TTL)
	assert.True(t, cfg.SlackEnabled())
	assert.Equal(t, "cricscore", cfg.ProjectID)
}
