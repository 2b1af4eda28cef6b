package session

import (
	"fmt"
	"maps"
	"slices"
	"sort"
	"time"

	"github.com/elliotchance/pie/v2"
	"github.com/mauv0809/court-queue/internal/history"
	"github.com/mauv0809/court-queue/internal/roster"
)

// Shuttlecock usage added per player for one adjustment.
const (
	PairShuttlecockStep    = 0.5
	DoublesShuttlecockStep = 0.25
)

func stamp(now time.Time, i int) *time.Time {
	t := now.Add(time.Duration(i) * time.Millisecond)
	return &t
}

func (st *state) addCourt() int {
	id := 1
	for _, c := range st.courts {
		if c.ID >= id {
			id = c.ID + 1
		}
	}
	st.courts = append(st.courts, newCourt(id))
	return id
}

func (st *state) removeCourt(id int) error {
	court, err := st.court(id)
	if err != nil {
		return err
	}
	if len(court.Players) > 0 {
		return fmt.Errorf("%w: court %d has %d players", ErrCourtOccupied, id, len(court.Players))
	}
	st.courts = pie.FilterNot(st.courts, func(c *Court) bool { return c.ID == id })
	for _, g := range st.groups {
		if g.CourtID != nil && *g.CourtID == id {
			g.CourtID = nil
		}
	}
	return nil
}

func (st *state) toggleChecked(courtID, slot int) (bool, error) {
	court, err := st.court(courtID)
	if err != nil {
		return false, err
	}
	if slot < 0 || slot >= len(court.Players) {
		return false, fmt.Errorf("%w: court %d slot %d", ErrInvalidSlot, courtID, slot)
	}
	if court.Checked[slot] {
		delete(court.Checked, slot)
		return false, nil
	}
	court.Checked[slot] = true
	return true, nil
}

// candidates resolves who an assignment would place, before truncation.
func (st *state) candidates(names []string) []string {
	if len(names) > 0 {
		return unique(names)
	}
	if len(st.selected) > 0 {
		return slices.Clone(st.selected)
	}
	return slices.Clone(st.queue)
}

func (st *state) assign(courtID int, names []string, now time.Time) ([]string, error) {
	court, err := st.court(courtID)
	if err != nil {
		return nil, err
	}
	fromSelection := len(names) == 0 && len(st.selected) > 0
	candidates := st.candidates(names)
	if free := CourtCapacity - len(court.Players); len(candidates) > free {
		candidates = candidates[:free]
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: court %d", ErrNoAvailablePlayers, courtID)
	}
	for _, name := range candidates {
		p, ok := st.roster.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPlayer, name)
		}
		if p.Stats.OnCourt() {
			return nil, fmt.Errorf("%w: %q is on court %d", ErrPlayerAlreadyAssigned, name, *p.Stats.CurrentCourt)
		}
	}

	one := 1
	for i, name := range candidates {
		st.roster.Upsert(name, roster.Patch{
			Current:      &one,
			CurrentCourt: roster.CourtRef(&courtID),
			Timestamp:    stamp(now, i),
		})
	}
	court.Players = append(court.Players, candidates...)
	placed := func(n string) bool { return slices.Contains(candidates, n) }
	st.queue = pie.FilterNot(st.queue, placed)
	if fromSelection {
		// The pick is spent even when some of it did not fit.
		st.selected = []string{}
	} else {
		st.selected = pie.FilterNot(st.selected, placed)
	}
	st.resort()
	return candidates, nil
}

// release takes players off a court and returns the ledger write describing
// the finished game. The caller persists it before committing the state.
func (st *state) release(courtID, count int, now time.Time) (history.Release, error) {
	court, err := st.court(courtID)
	if err != nil {
		return history.Release{}, err
	}
	var slots []int
	switch count {
	case 2:
		slots = slices.Collect(maps.Keys(court.Checked))
		sort.Ints(slots)
		if len(slots) != 2 {
			return history.Release{}, fmt.Errorf("%w: exactly 2 players must be checked, got %d", ErrInvalidRelease, len(slots))
		}
	case 4:
		for i := range court.Players {
			slots = append(slots, i)
		}
	default:
		return history.Release{}, fmt.Errorf("%w: count must be 2 or 4, got %d", ErrInvalidRelease, count)
	}
	if len(slots) == 0 {
		return history.Release{}, fmt.Errorf("%w: court %d is empty", ErrInvalidRelease, courtID)
	}

	released := make([]string, 0, len(slots))
	for _, slot := range slots {
		released = append(released, court.Players[slot])
	}
	remaining := pie.FilterNot(court.Players, func(n string) bool { return slices.Contains(released, n) })

	rel := history.Release{CourtID: courtID, FinishedAt: now}
	zero := 0
	for i, name := range released {
		p, _ := st.roster.Get(name)
		completed := p.Stats.Completed + 1
		st.roster.Upsert(name, roster.Patch{
			Completed:    &completed,
			Current:      &zero,
			CurrentCourt: roster.CourtRef(nil),
			Timestamp:    stamp(now, i),
		})
		rel.Entries = append(rel.Entries, history.Entry{
			Name:             name,
			JoinID:           p.JoinID,
			ShuttlecockUsage: p.ShuttlecockUsage,
			Rank:             string(p.Rank),
			CumulativeGames:  completed,
		})
	}
	for j, name := range remaining {
		p, _ := st.roster.Get(name)
		current := p.Stats.Current + 1
		st.roster.Upsert(name, roster.Patch{
			Current:   &current,
			Timestamp: stamp(now, len(released)+j),
		})
	}

	court.Players = remaining
	court.Checked = make(map[int]bool)
	for _, name := range released {
		if !slices.Contains(st.queue, name) {
			st.queue = append(st.queue, name)
		}
	}
	st.resort()
	return rel, nil
}

func (st *state) adjustShuttlecocks(courtID int, dir Direction) error {
	court, err := st.court(courtID)
	if err != nil {
		return err
	}
	var step float64
	switch len(court.Players) {
	case 2:
		step = PairShuttlecockStep
	case 4:
		step = DoublesShuttlecockStep
	default:
		return fmt.Errorf("%w: court %d has %d players", ErrShuttlecockDisabled, courtID, len(court.Players))
	}
	for _, name := range court.Players {
		p, _ := st.roster.Get(name)
		usage := max(p.ShuttlecockUsage+float64(dir)*step, 0)
		st.roster.Upsert(name, roster.Patch{ShuttlecockUsage: &usage})
	}
	return nil
}

func (st *state) renameCourt(oldID, newID int) error {
	court, err := st.court(oldID)
	if err != nil {
		return err
	}
	if newID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidCourtID, newID)
	}
	if newID == oldID {
		return nil
	}
	if _, err := st.court(newID); err == nil {
		return fmt.Errorf("%w: %d", ErrDuplicateCourtID, newID)
	}

	court.ID = newID
	for _, name := range court.Players {
		st.roster.Upsert(name, roster.Patch{CurrentCourt: roster.CourtRef(&newID)})
	}
	for _, g := range st.groups {
		if g.CourtID != nil && *g.CourtID == oldID {
			id := newID
			g.CourtID = &id
		}
	}
	return nil
}

// undoAssignment puts one player back at the front of the queue without
// resorting.
func (st *state) undoAssignment(courtID int, name string) error {
	court, err := st.court(courtID)
	if err != nil {
		return err
	}
	if !slices.Contains(court.Players, name) {
		return fmt.Errorf("%w: %q on court %d", ErrPlayerNotOnCourt, name, courtID)
	}
	zero := 0
	st.roster.Upsert(name, roster.Patch{
		Current:      &zero,
		CurrentCourt: roster.CourtRef(nil),
	})
	court.Players = pie.FilterNot(court.Players, func(n string) bool { return n == name })
	court.Checked = make(map[int]bool)
	st.queue = append([]string{name}, st.queue...)
	return nil
}

func unique(names []string) []string {
	seen := make(map[string]bool, len(names))
	out := make([]string, 0, len(names))
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return out
}
