package session_test

import (
	"testing"

	"github.com/mauv0809/court-queue/internal/roster"
	"github.com/mauv0809/court-queue/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func selectAll(t *testing.T, s *session.Session, names ...string) {
	t.Helper()
	for _, name := range names {
		selected, err := s.SelectPlayer(name)
		require.NoError(t, err)
		require.True(t, selected, name)
	}
}

func TestSelectPlayer(t *testing.T) {
	s, _, _ := setupSession(t)
	joinAll(t, s, "Anna", "Ben", "Cleo", "Dan", "Eve", "Finn")
	selectAll(t, s, "Anna", "Ben", "Cleo", "Dan")

	_, err := s.SelectPlayer("Eve")
	assert.ErrorIs(t, err, session.ErrSelectionLimit)

	selected, err := s.SelectPlayer("Ben")
	require.NoError(t, err)
	assert.False(t, selected, "second select toggles off")

	_, err = s.SelectPlayer("Ghost")
	assert.ErrorIs(t, err, session.ErrUnknownPlayer)

	_, err = s.Assign(1, []string{"Finn"})
	require.NoError(t, err)
	_, err = s.SelectPlayer("Finn")
	assert.ErrorIs(t, err, session.ErrPlayerAlreadyAssigned)

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, []string{"Anna", "Cleo", "Dan"}, snap.Selected)
	assert.Len(t, snap.Queue, 5, "selected players stay in the queue")
	assert.True(t, snap.Queue[0].Selected)
}

func TestFillGroup(t *testing.T) {
	s, _, _ := setupSession(t)
	joinAll(t, s, "Anna", "Ben", "Cleo")
	_, err := s.Join("Dan", "A+")
	require.NoError(t, err)

	assert.ErrorIs(t, s.FillGroup(0), session.ErrGroupNotFound)

	g := s.CreateGroup()
	assert.Equal(t, 0, g)
	selectAll(t, s, "Anna", "Ben", "Cleo")
	assert.ErrorIs(t, s.FillGroup(g), session.ErrInvalidGroupSize)

	selectAll(t, s, "Dan")
	require.NoError(t, s.FillGroup(g))

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap.Selected)
	require.Len(t, snap.Groups, 1)
	members := snap.Groups[0].Members
	require.Len(t, members, 4)
	assert.Equal(t, "Dan", members[3].Name)
	assert.Equal(t, roster.Rank("A+"), members[3].Rank)
	assert.NotEmpty(t, members[0].ID)
	assert.NotEqual(t, members[0].ID, members[1].ID)
	assert.Equal(t, []int{0}, snap.Queue[0].Groups)
}

func TestCommitGroup(t *testing.T) {
	s, _, m := setupSession(t, session.WithCourts(2))
	joinAll(t, s, "Anna", "Ben", "Cleo", "Dan", "Eve")
	g := s.CreateGroup()
	selectAll(t, s, "Eve", "Dan", "Cleo", "Ben")
	require.NoError(t, s.FillGroup(g))

	_, _, err := s.CommitGroup(g, 0)
	assert.ErrorIs(t, err, session.ErrInvalidAssignment, "no court chosen")

	require.NoError(t, s.BindGroupCourt(g, 2))
	court, assigned, err := s.CommitGroup(g, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, court)
	assert.Equal(t, []string{"Eve", "Dan", "Cleo", "Ben"}, assigned)
	assert.Equal(t, assigned, courtNames(t, s, 2))
	assert.Equal(t, []string{"Anna"}, queueNames(t, s))
	assert.Equal(t, 1, m.CourtAssignments())

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap.Groups, "committed group is discarded")

	require.NoError(t, s.UndoAssignment(2, "Eve"))
	snap, err = s.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap.Groups, "undo does not recreate the group")
}

func TestCommitGroupRejections(t *testing.T) {
	s, _, _ := setupSession(t, session.WithCourts(2))
	joinAll(t, s, "Anna", "Ben", "Cleo", "Dan", "Eve")
	empty := s.CreateGroup()
	full := s.CreateGroup()
	selectAll(t, s, "Anna", "Ben", "Cleo", "Dan")
	require.NoError(t, s.FillGroup(full))
	_, err := s.Assign(1, []string{"Eve"})
	require.NoError(t, err)

	_, _, err = s.CommitGroup(empty, 2)
	assert.ErrorIs(t, err, session.ErrInvalidAssignment, "group without members")

	before, err := s.Snapshot()
	require.NoError(t, err)
	_, _, err = s.CommitGroup(full, 1)
	assert.ErrorIs(t, err, session.ErrInvalidAssignment, "court lacks 4 free slots")
	after, err := s.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, before, after)

	_, _, err = s.CommitGroup(full, 9)
	assert.ErrorIs(t, err, session.ErrCourtNotFound)

	_, _, err = s.CommitGroup(7, 2)
	assert.ErrorIs(t, err, session.ErrGroupNotFound)

	assert.ErrorIs(t, s.BindGroupCourt(full, 9), session.ErrCourtNotFound)
}

func TestCommitGroupWithMemberAlreadyOnCourt(t *testing.T) {
	s, _, _ := setupSession(t, session.WithCourts(2))
	joinAll(t, s, "Anna", "Ben", "Cleo", "Dan")
	g := s.CreateGroup()
	selectAll(t, s, "Anna", "Ben", "Cleo", "Dan")
	require.NoError(t, s.FillGroup(g))
	_, err := s.Assign(1, []string{"Cleo"})
	require.NoError(t, err)

	_, _, err = s.CommitGroup(g, 2)
	assert.ErrorIs(t, err, session.ErrPlayerAlreadyAssigned)
	assert.Empty(t, courtNames(t, s, 2), "nothing placed")

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Len(t, snap.Groups, 1, "group kept after failed commit")
}

func TestRemoveGroup(t *testing.T) {
	s, _, _ := setupSession(t)
	first := s.CreateGroup()
	second := s.CreateGroup()
	require.NoError(t, s.BindGroupCourt(second, 1))

	require.NoError(t, s.RemoveGroup(first))
	assert.ErrorIs(t, s.RemoveGroup(5), session.ErrGroupNotFound)

	snap, err := s.Snapshot()
	require.NoError(t, err)
	require.Len(t, snap.Groups, 1)
	assert.Equal(t, 0, snap.Groups[0].Index)
	require.NotNil(t, snap.Groups[0].CourtID)
	assert.Equal(t, 1, *snap.Groups[0].CourtID)
}
