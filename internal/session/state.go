package session

import (
	"fmt"
	"maps"
	"slices"
)

func (st *state) clone() *state {
	c := &state{
		roster:   st.roster.Clone(),
		queue:    slices.Clone(st.queue),
		selected: slices.Clone(st.selected),
	}
	for _, court := range st.courts {
		c.courts = append(c.courts, &Court{
			ID:      court.ID,
			Players: slices.Clone(court.Players),
			Checked: maps.Clone(court.Checked),
		})
	}
	for _, g := range st.groups {
		cg := &Group{Members: slices.Clone(g.Members)}
		if g.CourtID != nil {
			id := *g.CourtID
			cg.CourtID = &id
		}
		c.groups = append(c.groups, cg)
	}
	return c
}

func (st *state) court(id int) (*Court, error) {
	for _, c := range st.courts {
		if c.ID == id {
			return c, nil
		}
	}
	return nil, fmt.Errorf("%w: %d", ErrCourtNotFound, id)
}

func (st *state) group(index int) (*Group, error) {
	if index < 0 || index >= len(st.groups) {
		return nil, fmt.Errorf("%w: %d", ErrGroupNotFound, index)
	}
	return st.groups[index], nil
}

func (st *state) occupiedCourts() int {
	n := 0
	for _, c := range st.courts {
		if len(c.Players) > 0 {
			n++
		}
	}
	return n
}

// checkInvariants panics when the state is corrupt. A failure here is a bug,
// never a user error.
func (st *state) checkInvariants() {
	seen := make(map[string]string, st.roster.Len())
	for _, name := range st.queue {
		if prev, ok := seen[name]; ok {
			panic(fmt.Sprintf("session: %q in queue and %s", name, prev))
		}
		seen[name] = "queue"
	}
	for _, c := range st.courts {
		if len(c.Players) > CourtCapacity {
			panic(fmt.Sprintf("session: court %d has %d players", c.ID, len(c.Players)))
		}
		for _, name := range c.Players {
			if prev, ok := seen[name]; ok {
				panic(fmt.Sprintf("session: %q on court %d and %s", name, c.ID, prev))
			}
			seen[name] = fmt.Sprintf("court %d", c.ID)
		}
	}
	for _, name := range st.roster.Names() {
		if _, ok := seen[name]; !ok {
			panic(fmt.Sprintf("session: %q is neither queued nor on a court", name))
		}
	}
	if len(seen) != st.roster.Len() {
		panic(fmt.Sprintf("session: roster has %d players, placed %d", st.roster.Len(), len(seen)))
	}
}
