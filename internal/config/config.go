package config

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

const (
	BackendSQLite   = "sqlite"
	BackendLibSQL   = "libsql"
	BackendFirebase = "firebase"
	BackendMemory   = "memory"
)

// Load reads configuration from environment variables and .env file.
func Load() Config {
	err := godotenv.Load()
	if err != nil {
		log.Info("No .env file found, reading from environment variables")
	}

	// A helper function to get a required env var. It will fail if the env var is not set.
	getEnv := func(key string) string {
		if value, ok := os.LookupEnv(key); ok {
			return value
		}
		log.Fatalf("Error: Required environment variable %s is not set.", key)
		return "" // This line is never reached
	}
	getEnvOr := func(key, fallback string) string {
		if value, ok := os.LookupEnv(key); ok && value != "" {
			return value
		}
		return fallback
	}

	ttl, err := time.ParseDuration(getEnvOr("SESSION_TTL", "24h"))
	if err != nil || ttl <= 0 {
		log.Fatalf("Error: SESSION_TTL must be a positive duration, got %q.", os.Getenv("SESSION_TTL"))
	}

	cfg := Config{
		Port:         getEnv("PORT"),
		StoreBackend: getEnvOr("STORE_BACKEND", BackendSQLite),
		DBName:       getEnvOr("DB_NAME", "cricscore.db"),
		Turso: TursoConfig{
			PrimaryURL: os.Getenv("TURSO_PRIMARY_URL"),
			AuthToken:  os.Getenv("TURSO_AUTH_TOKEN"),
		},
		Firebase: FirebaseConfig{
			DatabaseURL:     os.Getenv("FIREBASE_DATABASE_URL"),
			CredentialsFile: os.Getenv("FIREBASE_CREDENTIALS_FILE"),
			APIKey:          os.Getenv("FIREBASE_API_KEY"),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET"),
			TTL:    ttl,
		},
		Slack: SlackConfig{
			Token:     os.Getenv("SLACK_BOT_TOKEN"),
			ChannelID: os.Getenv("SLACK_CHANNEL_ID"),
		},
		ProjectID: os.Getenv("GCP_PROJECT"),
	}

	switch cfg.StoreBackend {
	case BackendSQLite, BackendMemory:
	case BackendLibSQL:
		if cfg.Turso.PrimaryURL == "" {
			log.Fatal("Error: STORE_BACKEND=libsql requires TURSO_PRIMARY_URL.")
		}
	case BackendFirebase:
		if cfg.Firebase.DatabaseURL == "" {
			log.Fatal("Error: STORE_BACKEND=firebase requires FIREBASE_DATABASE_URL.")
		}
	default:
		log.Fatalf("Error: unknown STORE_BACKEND %q.", cfg.StoreBackend)
	}
	return cfg
}
