package roster

import "sort"

// Roster is the single source of truth for per-player state.
// It is not safe for concurrent use; callers serialize access.
type Roster struct {
	players map[string]*Player
}

// New creates an empty roster.
func New() *Roster {
	return &Roster{players: make(map[string]*Player)}
}

// Upsert applies patch to the named player, creating the player if needed.
func (r *Roster) Upsert(name string, patch Patch) Player {
	p, ok := r.players[name]
	if !ok {
		p = &Player{Name: name, Rank: DefaultRank}
		r.players[name] = p
	}
	if patch.Rank != nil {
		p.Rank = *patch.Rank
	}
	if patch.Completed != nil {
		p.Stats.Completed = *patch.Completed
	}
	if patch.Current != nil {
		p.Stats.Current = *patch.Current
	}
	if patch.CurrentCourt != nil {
		if *patch.CurrentCourt == nil {
			p.Stats.CurrentCourt = nil
		} else {
			id := **patch.CurrentCourt
			p.Stats.CurrentCourt = &id
		}
	}
	if patch.Timestamp != nil {
		p.Timestamp = *patch.Timestamp
	}
	if patch.ShuttlecockUsage != nil {
		p.ShuttlecockUsage = *patch.ShuttlecockUsage
	}
	if patch.JoinID != nil {
		p.JoinID = *patch.JoinID
	}
	return p.copy()
}

// Remove deletes the player. Unknown names are ignored.
func (r *Roster) Remove(name string) {
	delete(r.players, name)
}

// Get returns a copy of the player.
func (r *Roster) Get(name string) (Player, bool) {
	p, ok := r.players[name]
	if !ok {
		return Player{}, false
	}
	return p.copy(), true
}

// Has reports whether the name is known.
func (r *Roster) Has(name string) bool {
	_, ok := r.players[name]
	return ok
}

// Names returns all player names in lexical order.
func (r *Roster) Names() []string {
	names := make([]string, 0, len(r.players))
	for name := range r.players {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len is the number of players.
func (r *Roster) Len() int {
	return len(r.players)
}

// Clone returns a deep copy.
func (r *Roster) Clone() *Roster {
	c := New()
	for name, p := range r.players {
		cp := p.copy()
		c.players[name] = &cp
	}
	return c
}

func (p *Player) copy() Player {
	cp := *p
	if p.Stats.CurrentCourt != nil {
		id := *p.Stats.CurrentCourt
		cp.Stats.CurrentCourt = &id
	}
	return cp
}
