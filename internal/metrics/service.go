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
		PlayersJoined: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "court_queue_players_joined_total",
			Help: "The total number of players that joined the queue.",
		}),
		CourtAssignments: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "court_queue_court_assignments_total",
			Help: "The total number of successful court assignments.",
		}),
		GamesCompleted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "court_queue_player_games_completed_total",
			Help: "The total number of player games completed on courts.",
		}),
		RejectedActions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "court_queue_rejected_actions_total",
			Help: "The total number of organizer actions rejected, by reason.",
		}, []string{"reason"}),
		QueueSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "court_queue_waiting_players",
			Help: "The number of players waiting in the queue.",
		}),
		OccupiedCourts: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "court_queue_occupied_courts",
			Help: "The number of courts with at least one player.",
		}),
		ActionDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "court_queue_action_duration_seconds",
			Help:    "The duration of organizer actions.",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"action"}),
		SlackNotifSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "court_queue_slack_notifications_sent_total",
			Help: "The total number of Slack notifications successfully sent.",
		}),
		SlackNotifFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "court_queue_slack_notifications_failed_total",
			Help: "The total number of Slack notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "court_queue_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.PlayersJoined,
		s.CourtAssignments,
		s.GamesCompleted,
		s.RejectedActions,
		s.QueueSize,
		s.OccupiedCourts,
		s.ActionDuration,
		s.SlackNotifSent,
		s.SlackNotifFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncPlayersJoined() {
	s.PlayersJoined.Inc()
}

func (s *Service) IncCourtAssignments() {
	s.CourtAssignments.Inc()
}

func (s *Service) AddGamesCompleted(n int) {
	s.GamesCompleted.Add(float64(n))
}

func (s *Service) IncRejectedActions(reason string) {
	s.RejectedActions.WithLabelValues(reason).Inc()
}

func (s *Service) SetQueueSize(n int) {
	s.QueueSize.Set(float64(n))
}

func (s *Service) SetOccupiedCourts(n int) {
	s.OccupiedCourts.Set(float64(n))
}

func (s *Service) ObserveActionDuration(action string, seconds float64) {
	s.ActionDuration.WithLabelValues(action).Observe(seconds)
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
