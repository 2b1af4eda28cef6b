package session

import (
	"fmt"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/elliotchance/pie/v2"
	"github.com/google/uuid"
	"github.com/mauv0809/court-queue/internal/roster"
)

// MinNameLength is the minimum number of characters in a trimmed name.
const MinNameLength = 2

// Compare orders two players for the waiting queue: fewer completed games
// first, then players off court, then the earlier timestamp.
func Compare(a, b roster.Player) int {
	if a.Stats.Completed != b.Stats.Completed {
		if a.Stats.Completed < b.Stats.Completed {
			return -1
		}
		return 1
	}
	if a.Stats.OnCourt() != b.Stats.OnCourt() {
		if !a.Stats.OnCourt() {
			return -1
		}
		return 1
	}
	return a.Timestamp.Compare(b.Timestamp)
}

func (st *state) resort() {
	players := make(map[string]roster.Player, len(st.queue))
	for _, name := range st.queue {
		p, _ := st.roster.Get(name)
		players[name] = p
	}
	slices.SortStableFunc(st.queue, func(a, b string) int {
		return Compare(players[a], players[b])
	})
}

func (st *state) join(name, rank string, now time.Time) (roster.Player, error) {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < MinNameLength {
		return roster.Player{}, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	if st.roster.Has(name) {
		return roster.Player{}, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}
	r, err := roster.ParseRank(rank)
	if err != nil {
		return roster.Player{}, fmt.Errorf("%w: %q", ErrInvalidRank, rank)
	}

	zero := 0
	usage := 0.0
	joinID := uuid.NewString()
	p := st.roster.Upsert(name, roster.Patch{
		JoinID:           &joinID,
		Rank:             &r,
		Completed:        &zero,
		Current:          &zero,
		CurrentCourt:     roster.CourtRef(nil),
		Timestamp:        &now,
		ShuttlecockUsage: &usage,
	})
	st.queue = append(st.queue, name)
	st.resort()
	return p, nil
}

// remove drops a waiting player. Players on a court and unknown names are
// left alone.
func (st *state) remove(name string) bool {
	if !slices.Contains(st.queue, name) {
		return false
	}
	st.queue = pie.FilterNot(st.queue, func(n string) bool { return n == name })
	st.selected = pie.FilterNot(st.selected, func(n string) bool { return n == name })
	st.roster.Remove(name)
	return true
}
