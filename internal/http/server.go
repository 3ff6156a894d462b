package http

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/spikeware/courtside/internal/config"
	"github.com/spikeware/courtside/internal/identity"
	"github.com/spikeware/courtside/internal/metrics"
	"github.com/spikeware/courtside/internal/notification"
	"github.com/spikeware/courtside/internal/notifier"
	"github.com/spikeware/courtside/internal/pubsub"
	"github.com/spikeware/courtside/internal/roster"
	"github.com/spikeware/courtside/internal/schedule"
	"github.com/spikeware/courtside/internal/stats"
)

func NewServer(
	users identity.UserStore,
	rosterStore roster.RosterStore,
	matches schedule.MatchStore,
	aggregator stats.Aggregator,
	notifications notification.NotificationStore,
	metricsSvc metrics.Metrics,
	metricsStore metrics.MetricsStore,
	metricsHandler http.Handler,
	cfg config.Config,
	notifier notifier.Notifier,
	pubsubClient pubsub.PubSubClient,
) *Server {
	server := &Server{
		Users:          users,
		Roster:         rosterStore,
		Matches:        matches,
		Stats:          aggregator,
		Notifications:  notifications,
		Metrics:        metricsSvc,
		MetricsStore:   metricsStore,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Notifier:       notifier,
		Router:         http.NewServeMux(),
		pubsub:         pubsubClient,
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// This makes it easy to add more middlewares in the future, like an authentication middleware.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	limiter := newIPRateLimiter()

	s.Router.Handle("/metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))

	s.Router.Handle("GET /api/users", Chain(s.ListUsersHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/users/{userID}/stats", Chain(s.UserStatsHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/matches/week", Chain(s.WeekMatchesHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/matches", Chain(s.CreateMatchHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/matches/{matchID}", Chain(s.GetMatchHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/matches/{matchID}/join", Chain(s.JoinMatchHandler(), paramsMiddleware, limiter.middleware))
	s.Router.Handle("DELETE /api/matches/{matchID}/leave", Chain(s.LeaveMatchHandler(), paramsMiddleware, limiter.middleware))
	s.Router.Handle("POST /api/matches/{matchID}/cancel", Chain(s.CancelMatchHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/leaderboard", Chain(s.LeaderboardHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/notifications/{userID}", Chain(s.ListNotificationsHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/slots/ensure", Chain(s.EnsureSlotsHandler(), paramsMiddleware))

	s.Router.Handle("POST /tasks/notifications", Chain(s.NotificationTaskHandler(), paramsMiddleware))

	s.Router.Handle("POST /slack/command/leaderboard", Chain(s.LeaderboardCommandHandler(), paramsMiddleware, s.slackSignatureMiddleware))
	s.Router.Handle("POST /slack/command/player-stats", Chain(s.PlayerStatsCommandHandler(), paramsMiddleware, s.slackSignatureMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

// Handler wraps the router with CORS for browser clients.
func (s *Server) Handler() http.Handler {
	return cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(s.Router)
}
