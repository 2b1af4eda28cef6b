package session

import (
	"fmt"
	"slices"
	"time"

	"github.com/elliotchance/pie/v2"
	"github.com/google/uuid"
)

// SelectionLimit is the most players that can be selected at once.
const SelectionLimit = CourtCapacity

// selectPlayer toggles the selection flag and reports the new value.
func (st *state) selectPlayer(name string) (bool, error) {
	if slices.Contains(st.selected, name) {
		st.selected = pie.FilterNot(st.selected, func(n string) bool { return n == name })
		return false, nil
	}
	p, ok := st.roster.Get(name)
	if !ok {
		return false, fmt.Errorf("%w: %q", ErrUnknownPlayer, name)
	}
	if p.Stats.OnCourt() {
		return false, fmt.Errorf("%w: %q is on court %d", ErrPlayerAlreadyAssigned, name, *p.Stats.CurrentCourt)
	}
	if len(st.selected) >= SelectionLimit {
		return false, fmt.Errorf("%w: %q", ErrSelectionLimit, name)
	}
	st.selected = append(st.selected, name)
	return true, nil
}

func (st *state) createGroup() int {
	st.groups = append(st.groups, &Group{})
	return len(st.groups) - 1
}

func (st *state) fillGroup(index int) error {
	g, err := st.group(index)
	if err != nil {
		return err
	}
	if len(st.selected) != CourtCapacity {
		return fmt.Errorf("%w: %d selected", ErrInvalidGroupSize, len(st.selected))
	}
	members := make([]GroupMember, 0, CourtCapacity)
	for _, name := range st.selected {
		p, _ := st.roster.Get(name)
		members = append(members, GroupMember{ID: uuid.NewString(), Name: name, Rank: p.Rank})
	}
	g.Members = members
	st.selected = nil
	return nil
}

func (st *state) bindGroupCourt(index, courtID int) error {
	g, err := st.group(index)
	if err != nil {
		return err
	}
	if _, err := st.court(courtID); err != nil {
		return err
	}
	g.CourtID = &courtID
	return nil
}

// commitGroup places all four members on a court, or none of them.
func (st *state) commitGroup(index, courtID int, now time.Time) (int, []string, error) {
	g, err := st.group(index)
	if err != nil {
		return 0, nil, err
	}
	if courtID == 0 && g.CourtID != nil {
		courtID = *g.CourtID
	}
	if courtID == 0 {
		return 0, nil, fmt.Errorf("%w: no court chosen for group %d", ErrInvalidAssignment, index)
	}
	if len(g.Members) != CourtCapacity {
		return 0, nil, fmt.Errorf("%w: group %d has %d members", ErrInvalidAssignment, index, len(g.Members))
	}
	court, err := st.court(courtID)
	if err != nil {
		return 0, nil, err
	}
	if len(court.Players) > 0 {
		return 0, nil, fmt.Errorf("%w: court %d has %d players", ErrInvalidAssignment, courtID, len(court.Players))
	}

	names := pie.Map(g.Members, func(m GroupMember) string { return m.Name })
	assigned, err := st.assign(courtID, names, now)
	if err != nil {
		return 0, nil, err
	}
	st.groups = slices.Delete(st.groups, index, index+1)
	return courtID, assigned, nil
}

func (st *state) removeGroup(index int) error {
	if _, err := st.group(index); err != nil {
		return err
	}
	st.groups = slices.Delete(st.groups, index, index+1)
	return nil
}
