package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	Port         string
	StoreBackend string
	DBName       string
	Turso        TursoConfig
	Firebase     FirebaseConfig
	Session      SessionConfig
	Slack        SlackConfig
	ProjectID    string
}
type SlackConfig struct {
	Token     string
	ChannelID string
}
type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}
type FirebaseConfig struct {
	DatabaseURL     string
	CredentialsFile string
	APIKey          string
}
type SessionConfig struct {
	Secret string
	TTL    time.Duration
}

// SlackEnabled reports whether team selections can be posted to Slack.
func (c Config) SlackEnabled() bool {
	return c.Slack.Token != "" && c.Slack.ChannelID != ""
}
