package notifier

import (
	"sync"

	"github.com/mauv0809/court-queue/internal/history"
	"github.com/mauv0809/court-queue/internal/session"
)

var _ Notifier = (*Mock)(nil)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SendCourtCallFunc         func(call CourtCall, dryRun bool) error
	FormatQueueResponseFunc   func(snap session.Snapshot) (any, error)
	LastQueueResponseSnapshot *session.Snapshot

	// Call records
	SendCourtCallCalls    []CourtCall
	SendCourtReleaseCalls []CourtRelease
	SendPricingCalls      []struct {
		Mode    history.PriceMode
		Records []history.Record
	}
	DryRuns int
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) SendCourtCall(call CourtCall, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendCourtCallCalls = append(m.SendCourtCallCalls, call)
	if dryRun {
		m.DryRuns++
	}
	if m.SendCourtCallFunc != nil {
		return m.SendCourtCallFunc(call, dryRun)
	}
	return nil
}

func (m *Mock) SendCourtRelease(release CourtRelease, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendCourtReleaseCalls = append(m.SendCourtReleaseCalls, release)
	if dryRun {
		m.DryRuns++
	}
	return nil
}

func (m *Mock) SendPricing(mode history.PriceMode, records []history.Record, dryRun bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendPricingCalls = append(m.SendPricingCalls, struct {
		Mode    history.PriceMode
		Records []history.Record
	}{mode, records})
	if dryRun {
		m.DryRuns++
	}
	return nil
}

func (m *Mock) FormatQueueResponse(snap session.Snapshot) (any, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastQueueResponseSnapshot = &snap
	if m.FormatQueueResponseFunc != nil {
		return m.FormatQueueResponseFunc(snap)
	}
	return map[string]string{"text": "queue"}, nil
}

// CourtCalls returns a copy of the recorded court calls.
func (m *Mock) CourtCalls() []CourtCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CourtCall(nil), m.SendCourtCallCalls...)
}

// CourtReleases returns a copy of the recorded releases.
func (m *Mock) CourtReleases() []CourtRelease {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CourtRelease(nil), m.SendCourtReleaseCalls...)
}
