package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/cricscore/internal/auth"
	"github.com/mauv0809/cricscore/internal/config"
	"github.com/mauv0809/cricscore/internal/database"
	"github.com/mauv0809/cricscore/internal/docstore"
	server "github.com/mauv0809/cricscore/internal/http"
	"github.com/mauv0809/cricscore/internal/metrics"
	"github.com/mauv0809/cricscore/internal/notifier"
	"github.com/mauv0809/cricscore/internal/notifier/slack"
	"github.com/mauv0809/cricscore/internal/pubsub"
	"github.com/mauv0809/cricscore/internal/squad"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	ctx := context.Background()

	docs, storeTeardown, err := openStore(ctx, cfg)
	storeInitDuration := time.Since(startTime)
	log.Info("Store initialization time recorded", "backend", cfg.StoreBackend, "duration_ms", storeInitDuration.Milliseconds())
	if err != nil {
		log.Fatalf("Failed to initialize store: %s", err)
	}
	defer func() {
		log.Info("Closing store")
		storeTeardown()
	}()

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()

	events := pubsub.NewNoop()
	if cfg.ProjectID != "" {
		events, err = pubsub.New(ctx, cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
	} else {
		log.Info("GCP_PROJECT not set, stats events are not published")
	}
	defer events.Close()

	var notif notifier.Notifier = notifier.Noop{}
	if cfg.SlackEnabled() {
		notif = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	} else {
		log.Info("Slack not configured, team sharing is disabled")
	}

	if cfg.Firebase.APIKey == "" {
		log.Warn("FIREBASE_API_KEY not set, registration and login will fail")
	}
	authSvc := auth.NewService(
		auth.NewIdentityToolkit(cfg.Firebase.APIKey),
		docs,
		auth.NewSessions([]byte(cfg.Session.Secret), cfg.Session.TTL),
	)

	players := squad.New(docs, metricsSvc, events)

	s := server.NewServer(
		players,
		authSvc,
		metricsSvc,
		metricsHandler,
		cfg,
		notif,
	)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}

// openStore connects the document store selected by STORE_BACKEND.
func openStore(ctx context.Context, cfg config.Config) (docstore.Store, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendMemory:
		log.Warn("Using in-memory store, data is lost on restart")
		return docstore.NewMemory(), func() {}, nil
	case config.BackendFirebase:
		store, err := docstore.NewFirebase(ctx, cfg.Firebase.DatabaseURL, cfg.Firebase.CredentialsFile)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil
	case config.BackendSQLite, config.BackendLibSQL:
		primaryURL := ""
		if cfg.StoreBackend == config.BackendLibSQL {
			primaryURL = cfg.Turso.PrimaryURL
		}
		db, teardown, err := database.InitDB(cfg.DBName, primaryURL, cfg.Turso.AuthToken)
		if err != nil {
			return nil, nil, err
		}
		return docstore.NewSQL(db), teardown, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
