package roster

import "time"

// Stats tracks a player's progress through the session.
type Stats struct {
	Completed    int  `json:"completed"`
	Current      int  `json:"current"`
	CurrentCourt *int `json:"current_court,omitempty"`
}

// OnCourt reports whether the player is assigned to a court.
func (s Stats) OnCourt() bool {
	return s.CurrentCourt != nil
}

// Player is the per-player state owned by the roster.
type Player struct {
	Name             string    `json:"name"`
	Rank             Rank      `json:"rank"`
	Stats            Stats     `json:"stats"`
	Timestamp        time.Time `json:"timestamp"`
	ShuttlecockUsage float64   `json:"shuttlecock_usage"`
	// JoinID changes every time the name joins the session.
	JoinID           string    `json:"-"`
}

// Patch is a partial update. Nil fields are left untouched.
type Patch struct {
	Rank             *Rank
	Completed        *int
	Current          *int
	CurrentCourt     **int
	Timestamp        *time.Time
	ShuttlecockUsage *float64
	JoinID           *string
}

// CourtRef builds the CurrentCourt patch value. Pass nil to clear the court.
func CourtRef(id *int) **int {
	if id == nil {
		var none *int
		return &none
	}
	v := *id
	p := &v
	return &p
}
