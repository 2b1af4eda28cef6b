package session

import (
	"slices"
	"time"

	"github.com/elliotchance/pie/v2"
	"github.com/mauv0809/court-queue/internal/history"
	"github.com/mauv0809/court-queue/internal/roster"
)

// Snapshot is a read-only view of the session for rendering.
type Snapshot struct {
	Queue    []QueueEntry     `json:"queue"`
	Courts   []CourtView      `json:"courts"`
	Groups   []GroupView      `json:"groups"`
	Selected []string         `json:"selected"`
	History  []history.Record `json:"history"`
}

// QueueEntry is one waiting player in queue order.
type QueueEntry struct {
	Position         int          `json:"position"`
	Name             string       `json:"name"`
	Rank             roster.Rank  `json:"rank"`
	RankGroup        string       `json:"rankGroup"`
	Stats            roster.Stats `json:"stats"`
	ShuttlecockUsage float64      `json:"shuttlecockUsage"`
	Timestamp        time.Time    `json:"timestamp"`
	Selected         bool         `json:"selected"`
	Groups           []int        `json:"groups"`
}

// CourtView is a court with its occupants in slot order.
type CourtView struct {
	ID                 int          `json:"id"`
	Players            []CourtEntry `json:"players"`
	FreeSlots          int          `json:"freeSlots"`
	ShuttlecocksActive bool         `json:"shuttlecocksActive"`
}

// CourtEntry is one occupied slot.
type CourtEntry struct {
	Slot             int         `json:"slot"`
	Name             string      `json:"name"`
	Rank             roster.Rank `json:"rank"`
	ShuttlecockUsage float64     `json:"shuttlecockUsage"`
	Current          int         `json:"current"`
	Checked          bool        `json:"checked"`
}

// GroupView is a staging group.
type GroupView struct {
	Index   int           `json:"index"`
	Members []GroupMember `json:"members"`
	CourtID *int          `json:"courtId,omitempty"`
}

// Snapshot derives the current view of the session, including the history
// table.
func (s *Session) Snapshot() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.state.view()
	records, err := s.ledger.GetAll()
	if err != nil {
		return Snapshot{}, err
	}
	snap.History = records
	return snap, nil
}

func (st *state) view() Snapshot {
	snap := Snapshot{
		Queue:    make([]QueueEntry, 0, len(st.queue)),
		Courts:   make([]CourtView, 0, len(st.courts)),
		Groups:   make([]GroupView, 0, len(st.groups)),
		Selected: append([]string{}, st.selected...),
		History:  []history.Record{},
	}
	if snap.Selected == nil {
		snap.Selected = []string{}
	}

	for i, name := range st.queue {
		p, _ := st.roster.Get(name)
		snap.Queue = append(snap.Queue, QueueEntry{
			Position:         i + 1,
			Name:             name,
			Rank:             p.Rank,
			RankGroup:        p.Rank.Base(),
			Stats:            p.Stats,
			ShuttlecockUsage: p.ShuttlecockUsage,
			Timestamp:        p.Timestamp,
			Selected:         slices.Contains(st.selected, name),
			Groups:           st.groupsOf(name),
		})
	}

	for _, c := range st.courts {
		view := CourtView{
			ID:                 c.ID,
			Players:            make([]CourtEntry, 0, len(c.Players)),
			FreeSlots:          CourtCapacity - len(c.Players),
			ShuttlecocksActive: len(c.Players) == 2 || len(c.Players) == CourtCapacity,
		}
		for slot, name := range c.Players {
			p, _ := st.roster.Get(name)
			view.Players = append(view.Players, CourtEntry{
				Slot:             slot,
				Name:             name,
				Rank:             p.Rank,
				ShuttlecockUsage: p.ShuttlecockUsage,
				Current:          p.Stats.Current,
				Checked:          c.Checked[slot],
			})
		}
		snap.Courts = append(snap.Courts, view)
	}

	for i, g := range st.groups {
		view := GroupView{Index: i, Members: slices.Clone(g.Members)}
		if view.Members == nil {
			view.Members = []GroupMember{}
		}
		if g.CourtID != nil {
			id := *g.CourtID
			view.CourtID = &id
		}
		snap.Groups = append(snap.Groups, view)
	}
	return snap
}

// groupsOf lists the indexes of the staging groups that contain name.
func (st *state) groupsOf(name string) []int {
	groups := []int{}
	for i, g := range st.groups {
		if pie.Any(g.Members, func(m GroupMember) bool { return m.Name == name }) {
			groups = append(groups, i)
		}
	}
	return groups
}
