package pubsub

import "cloud.google.com/go/pubsub"

type client struct {
	client *pubsub.Client
}

// noop drops outgoing messages. It is used when no GCP project is configured.
type noop struct{}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventPlayerStatsUpdated EventType = "player-stats-updated"
	EventPlayerDeleted      EventType = "player-deleted"
)
