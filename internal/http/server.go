package http

import (
	"net/http"

	"github.com/mauv0809/cricscore/internal/auth"
	"github.com/mauv0809/cricscore/internal/config"
	"github.com/mauv0809/cricscore/internal/metrics"
	"github.com/mauv0809/cricscore/internal/notifier"
	"github.com/mauv0809/cricscore/internal/squad"
)

func NewServer(players squad.PlayerStore, authSvc *auth.Service, metricsSvc metrics.Metrics, metricsHandler http.Handler, cfg config.Config, notifier notifier.Notifier) *Server {
	server := &Server{
		Players:        players,
		Ranker:         squad.NewRanker(players),
		Auth:           authSvc,
		Metrics:        metricsSvc,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// API routes additionally require a session.
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("POST /register", Chain(s.RegisterHandler(), paramsMiddleware))
	s.Router.Handle("POST /login", Chain(s.LoginHandler(), paramsMiddleware))
	s.Router.Handle("POST /forgot-password", Chain(s.ForgotPasswordHandler(), paramsMiddleware))
	s.Router.Handle("POST /logout", Chain(s.LogoutHandler(), paramsMiddleware))

	s.Router.Handle("GET /api/players", Chain(s.ListPlayersHandler(), paramsMiddleware, s.authMiddleware))
	s.Router.Handle("POST /api/players", Chain(s.AddPlayerHandler(), paramsMiddleware, s.authMiddleware))
	s.Router.Handle("DELETE /api/players/{name}", Chain(s.DeletePlayerHandler(), paramsMiddleware, s.authMiddleware))
	s.Router.Handle("POST /api/players/{name}/update", Chain(s.UpdatePlayerHandler(), paramsMiddleware, s.authMiddleware))
	s.Router.Handle("POST /api/players/{name}/recalculate", Chain(s.RecalculateHandler(), paramsMiddleware, s.authMiddleware))

	s.Router.Handle("GET /api/matches/{player}", Chain(s.ListMatchesHandler(), paramsMiddleware, s.authMiddleware))
	s.Router.Handle("POST /api/matches", Chain(s.AddMatchHandler(), paramsMiddleware, s.authMiddleware))
	s.Router.Handle("PUT /api/matches/{player}/{matchID}", Chain(s.UpdateMatchHandler(), paramsMiddleware, s.authMiddleware))
	s.Router.Handle("DELETE /api/matches/{player}/{matchID}", Chain(s.DeleteMatchHandler(), paramsMiddleware, s.authMiddleware))

	s.Router.Handle("GET /api/team-results", Chain(s.TeamResultsHandler(), paramsMiddleware, s.authMiddleware))
	s.Router.Handle("POST /api/team-results/share", Chain(s.ShareTeamHandler(), paramsMiddleware, s.authMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}
