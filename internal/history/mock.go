package history

import (
	"sync"
)

// Mock is a mock implementation of the Ledger interface for testing.
// It keeps records in memory and is safe for concurrent use.
type Mock struct {
	mu      sync.Mutex
	records []Record

	// Spies for method calls
	RecordFunc        func(entries ...Entry) error
	RecordReleaseFunc func(release Release) error

	// Call records
	RecordCalls        [][]Entry
	RecordReleaseCalls []Release
}

var _ Ledger = (*Mock)(nil)

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) Record(entries ...Entry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordCalls = append(m.RecordCalls, entries)
	if m.RecordFunc != nil {
		if err := m.RecordFunc(entries...); err != nil {
			return err
		}
	}
	m.mergeLocked(entries)
	return nil
}

func (m *Mock) RecordRelease(release Release) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RecordReleaseCalls = append(m.RecordReleaseCalls, release)
	if m.RecordReleaseFunc != nil {
		if err := m.RecordReleaseFunc(release); err != nil {
			return err
		}
	}
	m.mergeLocked(release.Entries)
	return nil
}

// mergeLocked keeps the latest cumulative values; it does not track deltas.
func (m *Mock) mergeLocked(entries []Entry) {
	for _, e := range entries {
		found := false
		for i := range m.records {
			if m.records[i].Name == e.Name {
				m.records[i].GamesPlayed = e.CumulativeGames
				m.records[i].FeatherCount = e.ShuttlecockUsage
				m.records[i].Rank = e.Rank
				found = true
			}
		}
		if !found {
			m.records = append(m.records, Record{Name: e.Name, GamesPlayed: e.CumulativeGames, FeatherCount: e.ShuttlecockUsage, Rank: e.Rank})
		}
	}
}

func (m *Mock) Get(name string) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.records {
		if r.Name == name {
			cp := r
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *Mock) GetAll() ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Record, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *Mock) Update(record Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.records {
		if m.records[i].Name == record.Name {
			m.records[i] = record
			return nil
		}
	}
	return ErrNotFound
}

func (m *Mock) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	kept := m.records[:0]
	for _, r := range m.records {
		if r.Name != name {
			kept = append(kept, r)
		}
	}
	m.records = kept
	return nil
}

func (m *Mock) ClearAll() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
	return nil
}

func (m *Mock) ApplyPricing(mode PriceMode, params PricingParams) ([]Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	priced, err := Price(m.records, mode, params)
	if err != nil {
		return nil, err
	}
	m.records = priced
	return priced, nil
}

func (m *Mock) GamesFor(name string) ([]Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var games []Game
	for i, r := range m.RecordReleaseCalls {
		for _, e := range r.Entries {
			if e.Name == name {
				names := make([]string, len(r.Entries))
				for j, entry := range r.Entries {
					names[j] = entry.Name
				}
				games = append(games, Game{ID: int64(i + 1), CourtID: r.CourtID, Players: names, FinishedAt: r.FinishedAt})
				break
			}
		}
	}
	return games, nil
}

func (m *Mock) Export() (Payload, error) {
	records, _ := m.GetAll()
	return Payload{Version: PayloadVersion, PlayerHistory: records}, nil
}
