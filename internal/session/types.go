package session

import (
	"sync"
	"time"

	"github.com/mauv0809/court-queue/internal/history"
	"github.com/mauv0809/court-queue/internal/metrics"
	"github.com/mauv0809/court-queue/internal/roster"
)

// CourtCapacity is the number of player slots on a court.
const CourtCapacity = 4

// Court is a playing location with up to four occupants. Checked is keyed by
// slot index into Players.
type Court struct {
	ID      int
	Players []string
	Checked map[int]bool
}

// GroupMember is the snapshot of a player taken when a group is filled.
type GroupMember struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Rank roster.Rank `json:"rank"`
}

// Group is a staged set of players waiting to be committed to a court.
type Group struct {
	Members []GroupMember
	CourtID *int
}

// Direction of a shuttlecock usage adjustment.
type Direction int

const (
	Decrement Direction = -1
	Increment Direction = 1
)

// ParseDirection accepts "increment" or "decrement".
func ParseDirection(s string) (Direction, error) {
	switch s {
	case "increment":
		return Increment, nil
	case "decrement":
		return Decrement, nil
	}
	return 0, ErrInvalidDirection
}

// Session owns the live state of one organizer session: the roster, the
// waiting queue, the courts and the staging buffer. Every public method is
// one atomic action.
type Session struct {
	mu      sync.Mutex
	state   *state
	ledger  history.Ledger
	metrics metrics.Metrics
	now     func() time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithClock replaces the wall clock used for queue timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// WithCourts starts the session with n empty courts numbered from 1.
func WithCourts(n int) Option {
	return func(s *Session) {
		s.state.courts = nil
		for i := 1; i <= n; i++ {
			s.state.courts = append(s.state.courts, newCourt(i))
		}
	}
}

type state struct {
	roster   *roster.Roster
	queue    []string
	courts   []*Court
	selected []string
	groups   []*Group
}

func newCourt(id int) *Court {
	return &Court{ID: id, Checked: make(map[int]bool)}
}
