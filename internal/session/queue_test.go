package session_test

import (
	"fmt"
	"math/rand"
	"sort"
	"testing"
	"time"

	"github.com/mauv0809/court-queue/internal/roster"
	"github.com/mauv0809/court-queue/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoin(t *testing.T) {
	s, _, _ := setupSession(t)

	p, err := s.Join("  Anna  ", "S+")
	require.NoError(t, err)
	assert.Equal(t, "Anna", p.Name)
	assert.Equal(t, roster.Rank("S+"), p.Rank)
	assert.Equal(t, 0, p.Stats.Completed)
	assert.Equal(t, 0, p.Stats.Current)
	assert.Nil(t, p.Stats.CurrentCourt)
	assert.Equal(t, 0.0, p.ShuttlecockUsage)
	assert.NotEmpty(t, p.JoinID)
	annaJoin := p.JoinID

	p, err = s.Join("Ben", "")
	require.NoError(t, err)
	assert.Equal(t, roster.DefaultRank, p.Rank)
	assert.NotEqual(t, annaJoin, p.JoinID)

	snap, err := s.Snapshot()
	require.NoError(t, err)
	require.Len(t, snap.Queue, 2)
	assert.Equal(t, "S", snap.Queue[0].RankGroup)
	assert.Equal(t, 1, snap.Queue[0].Position)
}

func TestJoinRejections(t *testing.T) {
	testCases := []struct {
		name    string
		player  string
		rank    string
		wantErr error
	}{
		{name: "empty", player: "", wantErr: session.ErrInvalidName},
		{name: "single character after trim", player: "  a ", wantErr: session.ErrInvalidName},
		{name: "duplicate in queue", player: "Anna", wantErr: session.ErrDuplicateName},
		{name: "duplicate after trim", player: " Anna ", wantErr: session.ErrDuplicateName},
		{name: "unknown rank", player: "Ben", rank: "Z", wantErr: session.ErrInvalidRank},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, _, _ := setupSession(t)
			joinAll(t, s, "Anna")

			_, err := s.Join(tc.player, tc.rank)
			assert.ErrorIs(t, err, tc.wantErr)
			assert.True(t, session.IsUserError(err))
			assert.Equal(t, []string{"Anna"}, queueNames(t, s))
		})
	}
}

func TestJoinAcceptsTwoCharacterUnicodeName(t *testing.T) {
	s, _, _ := setupSession(t)

	_, err := s.Join("ปู", "N")
	require.NoError(t, err)
}

func TestJoinRejectsPlayerOnCourt(t *testing.T) {
	s, _, _ := setupSession(t, session.WithCourts(2))
	joinAll(t, s, "Ann", "Bo", "Al")
	_, err := s.Assign(2, []string{"Al"})
	require.NoError(t, err)
	before := queueNames(t, s)

	_, err = s.Join("Al", "")
	assert.ErrorIs(t, err, session.ErrDuplicateName)
	assert.Equal(t, before, queueNames(t, s))
}

func TestRemove(t *testing.T) {
	s, _, _ := setupSession(t)
	joinAll(t, s, "Anna", "Ben", "Cleo")
	_, err := s.SelectPlayer("Ben")
	require.NoError(t, err)

	assert.True(t, s.Remove("Ben"))
	assert.False(t, s.Remove("Ben"))
	assert.False(t, s.Remove("Nobody"))
	assert.Equal(t, []string{"Anna", "Cleo"}, queueNames(t, s))

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap.Selected)

	_, err = s.Join("Ben", "")
	require.NoError(t, err, "removed names can join again")
}

func TestRemoveIgnoresPlayersOnCourt(t *testing.T) {
	s, _, _ := setupSession(t)
	joinAll(t, s, "Anna", "Ben")
	_, err := s.Assign(1, []string{"Anna"})
	require.NoError(t, err)

	assert.False(t, s.Remove("Anna"))
	assert.Equal(t, []string{"Anna"}, courtNames(t, s, 1))
}

func TestQueueHoldsExactlyTheWaitingPlayers(t *testing.T) {
	s, _, _ := setupSession(t)
	rng := rand.New(rand.NewSource(7))
	want := map[string]bool{}

	for i := 0; i < 200; i++ {
		name := fmt.Sprintf("P%02d", rng.Intn(15))
		if rng.Intn(3) == 0 {
			s.Remove(name)
			delete(want, name)
			continue
		}
		_, err := s.Join(name, "")
		if want[name] {
			require.ErrorIs(t, err, session.ErrDuplicateName)
			continue
		}
		require.NoError(t, err)
		want[name] = true
	}

	got := queueNames(t, s)
	wantNames := make([]string, 0, len(want))
	for name := range want {
		wantNames = append(wantNames, name)
	}
	assert.ElementsMatch(t, wantNames, got)
	assert.Len(t, got, len(wantNames), "no duplicates")
}

func TestCompare(t *testing.T) {
	court := 1
	early := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
	late := early.Add(time.Minute)

	testCases := []struct {
		name string
		a, b roster.Player
		want int
	}{
		{
			name: "fewer completed games first",
			a:    roster.Player{Stats: roster.Stats{Completed: 1}, Timestamp: early},
			b:    roster.Player{Stats: roster.Stats{Completed: 0}, Timestamp: late},
			want: 1,
		},
		{
			name: "off court before on court",
			a:    roster.Player{Stats: roster.Stats{Completed: 2}, Timestamp: late},
			b:    roster.Player{Stats: roster.Stats{Completed: 2, CurrentCourt: &court}, Timestamp: early},
			want: -1,
		},
		{
			name: "games outrank court status",
			a:    roster.Player{Stats: roster.Stats{Completed: 0, CurrentCourt: &court}},
			b:    roster.Player{Stats: roster.Stats{Completed: 1}},
			want: -1,
		},
		{
			name: "earlier timestamp first",
			a:    roster.Player{Timestamp: early},
			b:    roster.Player{Timestamp: late},
			want: -1,
		},
		{
			name: "identical",
			a:    roster.Player{Timestamp: early},
			b:    roster.Player{Timestamp: early},
			want: 0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, session.Compare(tc.a, tc.b))
			assert.Equal(t, -tc.want, session.Compare(tc.b, tc.a))
		})
	}
}

func TestQueueOrderAfterRelease(t *testing.T) {
	s, _, _ := setupSession(t)
	joinAll(t, s, "Anna", "Ben", "Cleo", "Dan", "Eve", "Finn")

	_, err := s.Assign(1, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"Eve", "Finn"}, queueNames(t, s))

	_, err = s.Release(1, 4)
	require.NoError(t, err)
	assert.Equal(t, []string{"Eve", "Finn", "Anna", "Ben", "Cleo", "Dan"}, queueNames(t, s),
		"players without games stay ahead, released players keep their court order")
}

func TestEarlierTimestampWinsAmongEqualPlayers(t *testing.T) {
	s, _, _ := setupSession(t)
	names := []string{"Kai", "Ada", "Zoe", "Bob", "Mia"}
	joinAll(t, s, names...)

	assert.Equal(t, names, queueNames(t, s), "join order, not alphabetical")

	s.Resort()
	assert.Equal(t, names, queueNames(t, s))

	snap, err := s.Snapshot()
	require.NoError(t, err)
	assert.True(t, sort.SliceIsSorted(snap.Queue, func(i, j int) bool {
		return snap.Queue[i].Timestamp.Before(snap.Queue[j].Timestamp)
	}))
}

func TestResortIsIdempotent(t *testing.T) {
	s, _, _ := setupSession(t)
	joinAll(t, s, "Anna", "Ben", "Cleo", "Dan", "Eve")
	_, err := s.Assign(1, []string{"Cleo", "Anna"})
	require.NoError(t, err)
	require.NoError(t, s.UndoAssignment(1, "Cleo"))

	s.Resort()
	first := queueNames(t, s)
	s.Resort()
	assert.Equal(t, first, queueNames(t, s))
}
