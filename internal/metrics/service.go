package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		Joins: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_joins_total",
			Help: "The total number of successful match joins.",
		}),
		Leaves: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_leaves_total",
			Help: "The total number of successful match leaves.",
		}),
		Promotions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_waitlist_promotions_total",
			Help: "The total number of players promoted from a waitlist.",
		}),
		Waitlisted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_waitlisted_total",
			Help: "The total number of joins that landed on a waitlist.",
		}),
		SlackCommands: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_slack_commands_total",
			Help: "The total number of Slack slash commands handled.",
		}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "courtside_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "courtside_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.Joins,
		s.Leaves,
		s.Promotions,
		s.Waitlisted,
		s.SlackCommands,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncJoins() {
	s.Joins.Inc()
}

func (s *Service) IncLeaves() {
	s.Leaves.Inc()
}

func (s *Service) IncPromotions() {
	s.Promotions.Inc()
}

func (s *Service) IncWaitlisted() {
	s.Waitlisted.Inc()
}

func (s *Service) IncSlackCommands() {
	s.SlackCommands.Inc()
}

func (s *Service) IncSlackNotifSent() {
	s.SlackNotifSent.Inc()
}

func (s *Service) IncSlackNotifFailed() {
	s.SlackNotifFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
