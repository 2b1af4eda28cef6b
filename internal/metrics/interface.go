package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncPlayersJoined()
	IncCourtAssignments()
	AddGamesCompleted(n int)
	IncRejectedActions(reason string)
	SetQueueSize(n int)
	SetOccupiedCourts(n int)
	ObserveActionDuration(action string, seconds float64)
	IncSlackNotifSent()
	IncSlackNotifFailed()
	SetStartupTime(duration float64)
}
