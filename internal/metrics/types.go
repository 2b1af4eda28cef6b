package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	PlayersJoined      prometheus.Counter
	CourtAssignments   prometheus.Counter
	GamesCompleted     prometheus.Counter
	RejectedActions    *prometheus.CounterVec
	QueueSize          prometheus.Gauge
	OccupiedCourts     prometheus.Gauge
	ActionDuration     *prometheus.HistogramVec
	SlackNotifSent     prometheus.Counter
	SlackNotifFailed   prometheus.Counter
	StartupTimeSeconds prometheus.Gauge
}
