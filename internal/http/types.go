package http

import (
	"net/http"

	"github.com/mauv0809/cricscore/internal/auth"
	"github.com/mauv0809/cricscore/internal/config"
	"github.com/mauv0809/cricscore/internal/metrics"
	"github.com/mauv0809/cricscore/internal/notifier"
	"github.com/mauv0809/cricscore/internal/squad"
	"github.com/mauv0809/cricscore/internal/stats"
)

type Server struct {
	Players        squad.PlayerStore
	Ranker         *squad.Ranker
	Auth           *auth.Service
	Metrics        metrics.Metrics
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux
}

// response is the envelope every JSON endpoint answers with.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	response
	Token     string `json:"token"`
	ExpiresAt int64  `json:"expires_at"`
	Username  string `json:"username"`
	Team      string `json:"team"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type addPlayerRequest struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type updatePlayerRequest struct {
	NewName string `json:"new_name"`
	NewRole string `json:"new_role"`
}

type playersResponse struct {
	response
	Players map[string]squad.Player `json:"players"`
}

type playerResponse struct {
	response
	Player *squad.Player `json:"player"`
}

type matchesResponse struct {
	response
	Matches map[string]stats.MatchRecord `json:"matches"`
}

type matchResponse struct {
	response
	Match *stats.MatchRecord `json:"match"`
}

// teamEntry is one row of the team selection view.
type teamEntry struct {
	Name         string     `json:"name"`
	Role         stats.Role `json:"role"`
	Efficiency   float64    `json:"efficiency"`
	TotalRuns    int        `json:"total_runs"`
	TotalWickets int        `json:"total_wickets"`
	TotalCatches int        `json:"total_catches"`
}

type teamResponse struct {
	response
	Players []teamEntry `json:"players"`
}
