package http

import (
	"fmt"
	"net/http"

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

type Server struct {
	Users          identity.UserStore
	Roster         roster.RosterStore
	Matches        schedule.MatchStore
	Stats          stats.Aggregator
	Notifications  notification.NotificationStore
	Metrics        metrics.Metrics
	MetricsStore   metrics.MetricsStore
	MetricsHandler http.Handler
	Cfg            config.Config
	Notifier       notifier.Notifier
	Router         *http.ServeMux
	pubsub         pubsub.PubSubClient
}

// ValidationError reports a bad request parameter.
type ValidationError struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}
