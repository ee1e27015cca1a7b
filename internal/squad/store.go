package squad

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/cricscore/internal/docstore"
	"github.com/mauv0809/cricscore/internal/metrics"
	"github.com/mauv0809/cricscore/internal/pubsub"
	"github.com/mauv0809/cricscore/internal/stats"
)

// New creates a PlayerStore over docs. events may be nil.
func New(docs docstore.Store, metricsSvc metrics.Metrics, events pubsub.PubSubClient) PlayerStore {
	if events == nil {
		events = pubsub.NewNoop()
	}
	return &store{
		docs:    docs,
		metrics: metricsSvc,
		events:  events,
		locks:   newKeyedMutex(),
	}
}

func playersPath(coachID string) string {
	return docstore.Join("coach_data", coachID, "players")
}

func playerPath(coachID, name string) string {
	return docstore.Join(playersPath(coachID), name)
}

func matchesPath(coachID, name string) string {
	return docstore.Join(playerPath(coachID, name), "matches")
}

func matchPath(coachID, name, matchID string) string {
	return docstore.Join(matchesPath(coachID, name), matchID)
}

func (s *store) AddPlayer(ctx context.Context, coachID, name string, role stats.Role) (player *Player, err error) {
	defer func() { s.record("add_player", err) }()

	name = strings.TrimSpace(name)
	if err := validateKeys(coachID, name, "Player name"); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(playerKey(coachID, name))
	defer unlock()

	existing, err := s.docs.Get(ctx, playerPath(coachID, name))
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, newError(ErrDuplicateKey, "Player with this name already exists.")
	}

	if err := s.createPlayerLocked(ctx, coachID, name, role); err != nil {
		return nil, err
	}
	log.Info("Added player", "coachID", coachID, "player", name, "role", role)
	return &Player{Name: name, Role: role}, nil
}

func (s *store) createPlayerLocked(ctx context.Context, coachID, name string, role stats.Role) error {
	doc := stats.Aggregate{}.Fields()
	doc["role"] = string(role)
	return s.docs.Set(ctx, playerPath(coachID, name), doc)
}

func (s *store) DeletePlayer(ctx context.Context, coachID, name string) (err error) {
	defer func() { s.record("delete_player", err) }()

	name = strings.TrimSpace(name)
	if err := validateKeys(coachID, name, "Player name"); err != nil {
		return err
	}

	unlock := s.locks.Lock(playerKey(coachID, name))
	defer unlock()

	return s.deletePlayerLocked(ctx, coachID, name)
}

func (s *store) deletePlayerLocked(ctx context.Context, coachID, name string) error {
	if err := s.docs.Remove(ctx, playerPath(coachID, name)); err != nil {
		return err
	}
	log.Info("Deleted player and match history", "coachID", coachID, "player", name)
	s.publish(ctx, pubsub.EventPlayerDeleted, PlayerDeletedEvent{CoachID: coachID, Player: name})
	return nil
}

func (s *store) RenamePlayer(ctx context.Context, coachID, oldName, newName string, role stats.Role) (player *Player, err error) {
	defer func() { s.record("rename_player", err) }()

	oldName = strings.TrimSpace(oldName)
	newName = strings.TrimSpace(newName)
	if err := validateKeys(coachID, oldName, "Player name"); err != nil {
		return nil, err
	}
	if err := validateKeys(coachID, newName, "Player name"); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(playerKey(coachID, oldName), playerKey(coachID, newName))
	defer unlock()

	if newName != oldName {
		existing, err := s.docs.Get(ctx, playerPath(coachID, newName))
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, newError(ErrDuplicateKey, "Player with this name already exists.")
		}
	}

	log.Warn("Recreating player, match history is discarded", "coachID", coachID, "from", oldName, "to", newName)
	if err := s.deletePlayerLocked(ctx, coachID, oldName); err != nil {
		return nil, err
	}
	if err := s.createPlayerLocked(ctx, coachID, newName, role); err != nil {
		return nil, err
	}
	return &Player{Name: newName, Role: role}, nil
}

func (s *store) GetPlayer(ctx context.Context, coachID, name string) (*Player, error) {
	name = strings.TrimSpace(name)
	if err := validateKeys(coachID, name, "Player name"); err != nil {
		return nil, err
	}
	return s.loadPlayer(ctx, coachID, name)
}

func (s *store) loadPlayer(ctx context.Context, coachID, name string) (*Player, error) {
	v, err := s.docs.Get(ctx, playerPath(coachID, name))
	if err != nil {
		return nil, err
	}
	player, ok := decodePlayer(name, v)
	if !ok {
		return nil, newError(ErrPlayerNotFound, "Player not found")
	}
	return &player, nil
}

func (s *store) ListPlayers(ctx context.Context, coachID string) ([]Player, error) {
	if err := docstore.ValidateKey(coachID); err != nil {
		return nil, newError(ErrValidation, "Invalid coach id")
	}
	v, err := s.docs.Get(ctx, playersPath(coachID))
	if err != nil {
		return nil, err
	}

	collection := stats.NormalizeCollection(v)
	players := make([]Player, 0, len(collection))
	for _, name := range stats.SortedKeys(collection) {
		player, ok := decodePlayer(name, collection[name])
		if !ok {
			log.Warn("Skipping malformed player document", "coachID", coachID, "player", name)
			continue
		}
		players = append(players, player)
	}
	return players, nil
}

func (s *store) AddMatch(ctx context.Context, coachID, playerName, matchID string, raw stats.RawInputs) (rec *stats.MatchRecord, err error) {
	defer func() { s.record("add_match", err) }()
	return s.writeMatch(ctx, coachID, playerName, matchID, raw, true)
}

func (s *store) UpdateMatch(ctx context.Context, coachID, playerName, matchID string, raw stats.RawInputs) (rec *stats.MatchRecord, err error) {
	defer func() { s.record("update_match", err) }()
	return s.writeMatch(ctx, coachID, playerName, matchID, raw, false)
}

// writeMatch stores a match with freshly derived metrics and rebuilds the
// player's aggregate. With mustBeNew an existing match id is rejected;
// otherwise the stored match is replaced whole.
func (s *store) writeMatch(ctx context.Context, coachID, playerName, matchID string, raw stats.RawInputs, mustBeNew bool) (*stats.MatchRecord, error) {
	matchID = strings.TrimSpace(matchID)
	playerName = strings.TrimSpace(playerName)
	if err := validateKeys(coachID, playerName, "Player name"); err != nil {
		return nil, err
	}
	if err := validateKeys(coachID, matchID, "Match ID"); err != nil {
		return nil, err
	}
	if err := raw.Validate(); err != nil {
		return nil, newError(ErrValidation, "%s", err.Error())
	}

	unlock := s.locks.Lock(playerKey(coachID, playerName))
	defer unlock()

	player, err := s.loadPlayer(ctx, coachID, playerName)
	if err != nil {
		return nil, err
	}

	if mustBeNew {
		existing, err := s.docs.Get(ctx, matchPath(coachID, playerName, matchID))
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, newError(ErrDuplicateKey, "Match ID already exists for this player.")
		}
	}

	rec := stats.NewMatchRecord(matchID, player.Role, raw)
	if err := s.docs.Set(ctx, matchPath(coachID, playerName, matchID), rec.Document()); err != nil {
		return nil, err
	}
	log.Info("Stored match", "coachID", coachID, "player", playerName, "matchID", matchID, "efficiency", rec.Efficiency)

	if _, err := s.recalculateLocked(ctx, coachID, playerName, player.Role); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (s *store) DeleteMatch(ctx context.Context, coachID, playerName, matchID string) (err error) {
	defer func() { s.record("delete_match", err) }()

	playerName = strings.TrimSpace(playerName)
	if err := validateKeys(coachID, playerName, "Player name"); err != nil {
		return err
	}
	matchID = strings.TrimSpace(matchID)
	if err := validateKeys(coachID, matchID, "Match ID"); err != nil {
		return err
	}

	unlock := s.locks.Lock(playerKey(coachID, playerName))
	defer unlock()

	if err := s.docs.Remove(ctx, matchPath(coachID, playerName, matchID)); err != nil {
		return err
	}

	player, err := s.loadPlayer(ctx, coachID, playerName)
	if errors.Is(err, ErrPlayerNotFound) {
		// Nothing left to aggregate, and writing totals would resurrect the
		// player document.
		return nil
	}
	if err != nil {
		return err
	}
	_, err = s.recalculateLocked(ctx, coachID, playerName, player.Role)
	return err
}

func (s *store) ListMatches(ctx context.Context, coachID, playerName string) ([]stats.MatchRecord, error) {
	playerName = strings.TrimSpace(playerName)
	if err := validateKeys(coachID, playerName, "Player name"); err != nil {
		return nil, err
	}
	records, _, err := s.loadMatches(ctx, coachID, playerName)
	return records, err
}

func (s *store) Recalculate(ctx context.Context, coachID, playerName string) (player *Player, err error) {
	defer func() { s.record("recalculate", err) }()

	playerName = strings.TrimSpace(playerName)
	if err := validateKeys(coachID, playerName, "Player name"); err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(playerKey(coachID, playerName))
	defer unlock()

	player, err = s.loadPlayer(ctx, coachID, playerName)
	if err != nil {
		return nil, err
	}
	agg, err := s.recalculateLocked(ctx, coachID, playerName, player.Role)
	if err != nil {
		return nil, err
	}
	player.Aggregate = agg
	return player, nil
}

// loadMatches reads and decodes a player's match history. skipped counts
// stored values that could not be decoded.
func (s *store) loadMatches(ctx context.Context, coachID, playerName string) ([]stats.MatchRecord, int, error) {
	v, err := s.docs.Get(ctx, matchesPath(coachID, playerName))
	if err != nil {
		return nil, 0, err
	}

	collection := stats.NormalizeCollection(v)
	records := make([]stats.MatchRecord, 0, len(collection))
	skipped := 0
	for _, id := range stats.SortedKeys(collection) {
		value := collection[id]
		if value == nil {
			continue
		}
		rec, ok := stats.DecodeMatch(id, value)
		if !ok {
			skipped++
			log.Warn("Skipping malformed match record", "coachID", coachID, "player", playerName, "matchID", id)
			continue
		}
		records = append(records, rec)
	}
	return records, skipped, nil
}

// recalculateLocked rebuilds the aggregate from the stored match history and
// merges it into the player document. The caller holds the player's lock.
func (s *store) recalculateLocked(ctx context.Context, coachID, playerName string, role stats.Role) (stats.Aggregate, error) {
	start := time.Now()

	records, skipped, err := s.loadMatches(ctx, coachID, playerName)
	if err != nil {
		return stats.Aggregate{}, err
	}
	s.metrics.AddMalformedMatches(skipped)

	agg := stats.Recalculate(records)
	if err := s.docs.Update(ctx, playerPath(coachID, playerName), agg.Fields()); err != nil {
		return stats.Aggregate{}, err
	}
	s.metrics.ObserveRecalculationDuration(time.Since(start).Seconds())
	log.Debug("Recalculated player aggregate", "coachID", coachID, "player", playerName, "matches", len(records), "skipped", skipped, "efficiency", agg.Efficiency)

	s.publish(ctx, pubsub.EventPlayerStatsUpdated, StatsUpdatedEvent{
		CoachID:    coachID,
		Player:     playerName,
		Role:       string(role),
		Efficiency: agg.Efficiency,
		TotalRuns:  agg.TotalRuns,
		Wickets:    agg.TotalWickets,
		Catches:    agg.TotalCatches,
		Matches:    len(records),
	})
	return agg, nil
}

// publish never fails the mutation that triggered it.
func (s *store) publish(ctx context.Context, topic pubsub.EventType, event any) {
	if err := s.events.SendMessage(ctx, topic, event); err != nil {
		log.Error("Failed to publish event", "topic", topic, "error", err)
	}
}

func (s *store) record(operation string, err error) {
	switch {
	case err == nil:
		s.metrics.IncMutation(operation, metrics.ResultSuccess)
	case IsBusinessError(err):
		s.metrics.IncMutation(operation, metrics.ResultRejected)
	default:
		s.metrics.IncMutation(operation, metrics.ResultError)
		log.Error("Store operation failed", "operation", operation, "error", err)
	}
}

func validateKeys(coachID, key, label string) error {
	if err := docstore.ValidateKey(coachID); err != nil {
		return newError(ErrValidation, "Invalid coach id")
	}
	if strings.TrimSpace(key) == "" {
		return newError(ErrValidation, "%s cannot be empty", label)
	}
	if err := docstore.ValidateKey(key); err != nil {
		return newError(ErrValidation, "%s %q contains characters that are not allowed", label, key)
	}
	return nil
}

func decodePlayer(name string, v any) (Player, bool) {
	m, ok := v.(map[string]any)
	if !ok {
		return Player{}, false
	}
	role, _ := m["role"].(string)
	return Player{
		Name: name,
		Role: stats.ParseRole(role),
		Aggregate: stats.Aggregate{
			Efficiency:                stats.Float(m["efficiency"]),
			TotalRuns:                 stats.Int(m["total_runs"]),
			TotalWickets:              stats.Int(m["total_wickets"]),
			TotalCatches:              stats.Int(m["total_catches"]),
			TotalMissedCatches:        stats.Int(m["total_missed_catches"]),
			TotalMissedCatchesBatsman: stats.Int(m["total_missed_catches_batsman"]),
			TotalMissedCatchesBowler:  stats.Int(m["total_missed_catches_bowler"]),
			TotalOverthrows:           stats.Int(m["total_overthrows"]),
			TotalMisfields:            stats.Int(m["total_misfields"]),
		},
	}, true
}

