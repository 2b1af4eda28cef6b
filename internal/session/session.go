package session

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/court-queue/internal/history"
	"github.com/mauv0809/court-queue/internal/metrics"
	"github.com/mauv0809/court-queue/internal/roster"
)

var _ Service = (*Session)(nil)

// New creates a session with a single empty court.
func New(ledger history.Ledger, m metrics.Metrics, opts ...Option) *Session {
	s := &Session{
		state: &state{
			roster: roster.New(),
			courts: []*Court{newCourt(1)},
		},
		ledger:  ledger,
		metrics: m,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// apply runs fn against a copy of the state and swaps it in only when fn
// succeeds, so a rejected action never leaves a partial mutation behind.
func (s *Session) apply(action string, fn func(st *state, now time.Time) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	defer func() {
		s.metrics.ObserveActionDuration(action, time.Since(start).Seconds())
	}()

	next := s.state.clone()
	if err := fn(next, s.now()); err != nil {
		if reason := Reason(err); reason != "" {
			s.metrics.IncRejectedActions(reason)
			log.Warn("Action rejected", "action", action, "reason", reason, "error", err)
		} else {
			log.Error("Action failed", "action", action, "error", err)
		}
		return err
	}
	next.checkInvariants()
	s.state = next
	s.metrics.SetQueueSize(len(next.queue))
	s.metrics.SetOccupiedCourts(next.occupiedCourts())
	log.Debug("Action applied", "action", action, "queue", len(next.queue))
	return nil
}

// Join adds a new player to the back of the waiting queue and resorts it.
func (s *Session) Join(name, rank string) (roster.Player, error) {
	var p roster.Player
	err := s.apply("join", func(st *state, now time.Time) error {
		var err error
		p, err = st.join(name, rank, now)
		return err
	})
	if err != nil {
		return roster.Player{}, err
	}
	s.metrics.IncPlayersJoined()
	log.Info("Player joined", "name", p.Name, "rank", p.Rank)
	return p, nil
}

// Remove takes a waiting player out of the session. It reports whether the
// player was removed; players on a court are left alone.
func (s *Session) Remove(name string) bool {
	var removed bool
	_ = s.apply("remove", func(st *state, _ time.Time) error {
		removed = st.remove(name)
		return nil
	})
	return removed
}

// Resort reapplies the queue order.
func (s *Session) Resort() {
	_ = s.apply("resort", func(st *state, _ time.Time) error {
		st.resort()
		return nil
	})
}

// AddCourt creates an empty court and returns its id.
func (s *Session) AddCourt() int {
	var id int
	_ = s.apply("add_court", func(st *state, _ time.Time) error {
		id = st.addCourt()
		return nil
	})
	return id
}

// RemoveCourt deletes an empty court.
func (s *Session) RemoveCourt(id int) error {
	return s.apply("remove_court", func(st *state, _ time.Time) error {
		return st.removeCourt(id)
	})
}

// ToggleChecked flips the checked flag of an occupied slot and returns the
// new value.
func (s *Session) ToggleChecked(courtID, slot int) (bool, error) {
	var checked bool
	err := s.apply("toggle_checked", func(st *state, _ time.Time) error {
		var err error
		checked, err = st.toggleChecked(courtID, slot)
		return err
	})
	return checked, err
}

// Assign places players on a court. With no names it takes the current
// selection, or the front of the queue when nothing is selected.
func (s *Session) Assign(courtID int, names []string) ([]string, error) {
	var assigned []string
	err := s.apply("assign", func(st *state, now time.Time) error {
		var err error
		assigned, err = st.assign(courtID, names, now)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.metrics.IncCourtAssignments()
	log.Info("Players assigned", "court", courtID, "players", assigned)
	return assigned, nil
}

// Release finishes a game for 2 checked players or for the whole court. The
// history ledger is written before the new state is committed.
func (s *Session) Release(courtID, count int) ([]string, error) {
	var rel history.Release
	err := s.apply("release", func(st *state, now time.Time) error {
		var err error
		rel, err = st.release(courtID, count, now)
		if err != nil {
			return err
		}
		if err := s.ledger.RecordRelease(rel); err != nil {
			return fmt.Errorf("failed to record history for court %d: %w", courtID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(rel.Entries))
	for _, e := range rel.Entries {
		names = append(names, e.Name)
	}
	s.metrics.AddGamesCompleted(len(names))
	log.Info("Players released", "court", courtID, "players", names)
	return names, nil
}

// AdjustShuttlecockUsage changes the usage of every occupant of a court with
// exactly 2 or 4 players.
func (s *Session) AdjustShuttlecockUsage(courtID int, dir Direction) error {
	return s.apply("adjust_shuttlecocks", func(st *state, _ time.Time) error {
		return st.adjustShuttlecocks(courtID, dir)
	})
}

// RenameCourt changes a court's id.
func (s *Session) RenameCourt(oldID, newID int) error {
	return s.apply("rename_court", func(st *state, _ time.Time) error {
		return st.renameCourt(oldID, newID)
	})
}

// UndoAssignment sends one player back to the front of the queue.
func (s *Session) UndoAssignment(courtID int, name string) error {
	return s.apply("undo_assignment", func(st *state, _ time.Time) error {
		return st.undoAssignment(courtID, name)
	})
}

// SelectPlayer toggles a waiting player's selection and returns the new value.
func (s *Session) SelectPlayer(name string) (bool, error) {
	var selected bool
	err := s.apply("select_player", func(st *state, _ time.Time) error {
		var err error
		selected, err = st.selectPlayer(name)
		return err
	})
	return selected, err
}

// CreateGroup appends an empty staging group and returns its index.
func (s *Session) CreateGroup() int {
	var index int
	_ = s.apply("create_group", func(st *state, _ time.Time) error {
		index = st.createGroup()
		return nil
	})
	return index
}

// FillGroup moves the 4 selected players into a group.
func (s *Session) FillGroup(index int) error {
	return s.apply("fill_group", func(st *state, _ time.Time) error {
		return st.fillGroup(index)
	})
}

// BindGroupCourt records the court a group will be committed to.
func (s *Session) BindGroupCourt(index, courtID int) error {
	return s.apply("bind_group_court", func(st *state, _ time.Time) error {
		return st.bindGroupCourt(index, courtID)
	})
}

// CommitGroup assigns a group to a court and discards it. A zero courtID
// uses the court bound to the group. It returns the court used and the
// players placed.
func (s *Session) CommitGroup(index, courtID int) (int, []string, error) {
	var (
		used     int
		assigned []string
	)
	err := s.apply("commit_group", func(st *state, now time.Time) error {
		var err error
		used, assigned, err = st.commitGroup(index, courtID, now)
		return err
	})
	if err != nil {
		return 0, nil, err
	}
	s.metrics.IncCourtAssignments()
	log.Info("Group committed", "group", index, "court", used, "players", assigned)
	return used, assigned, nil
}

// RemoveGroup discards a group without committing it.
func (s *Session) RemoveGroup(index int) error {
	return s.apply("remove_group", func(st *state, _ time.Time) error {
		return st.removeGroup(index)
	})
}

// History returns every ledger record.
func (s *Session) History() ([]history.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.GetAll()
}

// Games returns the finished games a player took part in.
func (s *Session) Games(name string) ([]history.Game, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.GamesFor(name)
}

// ExportHistory returns the versioned history payload.
func (s *Session) ExportHistory() (history.Payload, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ledger.Export()
}

// UpdateHistory overwrites one ledger record.
func (s *Session) UpdateHistory(rec history.Record) error {
	return s.apply("update_history", func(_ *state, _ time.Time) error {
		return s.ledger.Update(rec)
	})
}

// RemoveHistory deletes one ledger record. Live players are not affected.
func (s *Session) RemoveHistory(name string) error {
	return s.apply("remove_history", func(_ *state, _ time.Time) error {
		return s.ledger.Remove(name)
	})
}

// ClearHistory deletes every ledger record.
func (s *Session) ClearHistory() error {
	return s.apply("clear_history", func(_ *state, _ time.Time) error {
		return s.ledger.ClearAll()
	})
}

// ApplyPricing prices every ledger record.
func (s *Session) ApplyPricing(mode history.PriceMode, params history.PricingParams) ([]history.Record, error) {
	var records []history.Record
	err := s.apply("apply_pricing", func(_ *state, _ time.Time) error {
		var err error
		records, err = s.ledger.ApplyPricing(mode, params)
		return err
	})
	return records, err
}
