package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu               sync.Mutex
	playersJoined    int
	courtAssignments int
	gamesCompleted   int
	rejected         map[string]int
	queueSize        int
	occupiedCourts   int
	actions          map[string]int
	slackNotifSent   int
	slackNotifFailed int
	startupTime      float64
}

var _ Metrics = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		rejected: make(map[string]int),
		actions:  make(map[string]int),
	}
}

func (m *Mock) IncPlayersJoined() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playersJoined++
}

func (m *Mock) IncCourtAssignments() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.courtAssignments++
}

func (m *Mock) AddGamesCompleted(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.gamesCompleted += n
}

func (m *Mock) IncRejectedActions(reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rejected[reason]++
}

func (m *Mock) SetQueueSize(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queueSize = n
}

func (m *Mock) SetOccupiedCourts(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.occupiedCourts = n
}

func (m *Mock) ObserveActionDuration(action string, seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.actions[action]++
}

func (m *Mock) IncSlackNotifSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifSent++
}

func (m *Mock) IncSlackNotifFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.slackNotifFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// PlayersJoined returns the number of times IncPlayersJoined was called.
func (m *Mock) PlayersJoined() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playersJoined
}

// CourtAssignments returns the number of times IncCourtAssignments was called.
func (m *Mock) CourtAssignments() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.courtAssignments
}

// GamesCompleted returns the sum passed to AddGamesCompleted.
func (m *Mock) GamesCompleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.gamesCompleted
}

// Rejected returns how many actions were rejected for reason.
func (m *Mock) Rejected(reason string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rejected[reason]
}

// QueueSize returns the last value passed to SetQueueSize.
func (m *Mock) QueueSize() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.queueSize
}

// OccupiedCourts returns the last value passed to SetOccupiedCourts.
func (m *Mock) OccupiedCourts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.occupiedCourts
}

// Actions returns how many durations were observed for action.
func (m *Mock) Actions(action string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.actions[action]
}

// SlackNotifSent returns the number of times IncSlackNotifSent was called.
func (m *Mock) SlackNotifSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifSent
}

// SlackNotifFailed returns the number of times IncSlackNotifFailed was called.
func (m *Mock) SlackNotifFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slackNotifFailed
}
