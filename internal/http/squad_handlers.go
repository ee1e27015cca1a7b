package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/cricscore/internal/notifier"
	"github.com/mauv0809/cricscore/internal/squad"
	"github.com/mauv0809/cricscore/internal/stats"
)

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coach := coachFromRequest(r)
		players, err := s.Players.ListPlayers(r.Context(), coach.ID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		byName := make(map[string]squad.Player, len(players))
		for _, p := range players {
			byName[p.Name] = p
		}
		writeJSON(w, http.StatusOK, playersResponse{response: response{Success: true}, Players: byName})
	}
}

func (s *Server) AddPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addPlayerRequest
		if err := decodeJSON(r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
			return
		}
		coach := coachFromRequest(r)
		if _, err := s.Players.AddPlayer(r.Context(), coach.ID, req.Name, stats.ParseRole(req.Role)); err != nil {
			writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, true, "Player added.")
	}
}

func (s *Server) DeletePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := r.PathValue("name")
		coach := coachFromRequest(r)
		if err := s.Players.DeletePlayer(r.Context(), coach.ID, name); err != nil {
			writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, true, fmt.Sprintf("Player %s deleted successfully", name))
	}
}

func (s *Server) UpdatePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updatePlayerRequest
		if err := decodeJSON(r, &req); err != nil {
			writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
			return
		}
		coach := coachFromRequest(r)
		_, err := s.Players.RenamePlayer(r.Context(), coach.ID, r.PathValue("name"), req.NewName, stats.ParseRole(req.NewRole))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, true, "Player updated successfully")
	}
}

func (s *Server) RecalculateHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coach := coachFromRequest(r)
		player, err := s.Players.Recalculate(r.Context(), coach.ID, r.PathValue("name"))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, playerResponse{response: response{Success: true, Message: "Player recalculated"}, Player: player})
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coach := coachFromRequest(r)
		matches, err := s.Players.ListMatches(r.Context(), coach.ID, r.PathValue("player"))
		if err != nil {
			writeError(w, r, err)
			return
		}

		byID := make(map[string]stats.MatchRecord, len(matches))
		for _, m := range matches {
			byID[m.MatchID] = m
		}
		writeJSON(w, http.StatusOK, matchesResponse{response: response{Success: true}, Matches: byID})
	}
}

// AddMatchHandler accepts the player, the match id and the raw counters in
// one flat object. Counters may be numbers or numeric strings.
func (s *Server) AddMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := decodeJSON(r, &body); err != nil {
			writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
			return
		}
		coach := coachFromRequest(r)
		playerName := stringField(body, "player_name")
		matchID := stringField(body, "match_id")

		if _, err := s.Players.AddMatch(r.Context(), coach.ID, playerName, matchID, stats.RawInputsFromMap(body)); err != nil {
			writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, true, "Match added successfully.")
	}
}

func (s *Server) UpdateMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		if err := decodeJSON(r, &body); err != nil {
			writeMessage(w, http.StatusBadRequest, false, "Invalid request body")
			return
		}
		coach := coachFromRequest(r)
		rec, err := s.Players.UpdateMatch(r.Context(), coach.ID, r.PathValue("player"), r.PathValue("matchID"), stats.RawInputsFromMap(body))
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, matchResponse{response: response{Success: true, Message: "Match updated successfully."}, Match: rec})
	}
}

func (s *Server) DeleteMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coach := coachFromRequest(r)
		if err := s.Players.DeleteMatch(r.Context(), coach.ID, r.PathValue("player"), r.PathValue("matchID")); err != nil {
			writeError(w, r, err)
			return
		}
		writeMessage(w, http.StatusOK, true, "Match deleted successfully")
	}
}

func (s *Server) TeamResultsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coach := coachFromRequest(r)
		players, err := s.Ranker.SelectBestEleven(r.Context(), coach.ID)
		if err != nil {
			writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, teamResponse{response: response{Success: true}, Players: teamEntries(players)})
	}
}

func (s *Server) ShareTeamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coach := coachFromRequest(r)
		players, err := s.Ranker.SelectBestEleven(r.Context(), coach.ID)
		if err != nil {
			writeError(w, r, err)
			return
		}

		err = s.Notifier.SendTeamSelection(r.Context(), coach.Team, players, isDryRunFromContext(r))
		switch {
		case errors.Is(err, notifier.ErrNotConfigured):
			writeMessage(w, http.StatusServiceUnavailable, false, "Slack is not configured")
			return
		case err != nil:
			log.Error("Failed to share team selection", "requestID", requestIDFromContext(r), "coachID", coach.ID, "error", err)
			writeMessage(w, http.StatusBadGateway, false, "Failed to share team selection")
			return
		}
		writeMessage(w, http.StatusOK, true, fmt.Sprintf("Shared %d players", len(players)))
	}
}

func teamEntries(players []squad.Player) []teamEntry {
	entries := make([]teamEntry, 0, len(players))
	for _, p := range players {
		entries = append(entries, teamEntry{
			Name:         p.Name,
			Role:         p.Role,
			Efficiency:   p.Efficiency,
			TotalRuns:    p.TotalRuns,
			TotalWickets: p.TotalWickets,
			TotalCatches: p.TotalCatches,
		})
	}
	return entries
}

// stringField reads a string or number from a loosely typed body.
func stringField(m map[string]any, key string) string {
	switch v := m[key].(type) {
	case string:
		return strings.TrimSpace(v)
	case float64:
		return fmt.Sprint(v)
	default:
		return ""
	}
}
