package squad

import (
	"sync"

	"github.com/mauv0809/cricscore/internal/docstore"
	"github.com/mauv0809/cricscore/internal/metrics"
	"github.com/mauv0809/cricscore/internal/pubsub"
	"github.com/mauv0809/cricscore/internal/stats"
)

// store coordinates player and match documents in a docstore.Store.
type store struct {
	docs    docstore.Store
	metrics metrics.Metrics
	events  pubsub.PubSubClient
	locks   *keyedMutex
}

// Player is a squad member with aggregates over all recorded matches.
type Player struct {
	Name string     `json:"name"`
	Role stats.Role `json:"role"`
	stats.Aggregate
}

// StatsUpdatedEvent is published after a player's aggregate is rebuilt.
type StatsUpdatedEvent struct {
	CoachID    string  `msgpack:"coach_id"`
	Player     string  `msgpack:"player"`
	Role       string  `msgpack:"role"`
	Efficiency float64 `msgpack:"efficiency"`
	TotalRuns  int     `msgpack:"total_runs"`
	Wickets    int     `msgpack:"total_wickets"`
	Catches    int     `msgpack:"total_catches"`
	Matches    int     `msgpack:"matches"`
}

// PlayerDeletedEvent is published when a player and its history are removed.
type PlayerDeletedEvent struct {
	CoachID string `msgpack:"coach_id"`
	Player  string `msgpack:"player"`
}

// keyedMutex hands out one mutex per key and forgets keys nobody holds.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*refLock
}

type refLock struct {
	mu   sync.Mutex
	refs int
}
