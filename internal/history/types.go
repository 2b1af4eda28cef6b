package history

import (
	"database/sql"
	"errors"
	"sync"
	"time"
)

// PayloadVersion is the version of the exported history payload.
const PayloadVersion = 1

var (
	ErrNoPlayers        = errors.New("no players in history")
	ErrUnknownPriceMode = errors.New("unknown price mode")
	ErrNotFound         = errors.New("history record not found")
)

// store persists the ledger in SQL.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Record is a player's cumulative play history.
type Record struct {
	Name         string  `json:"name"`
	GamesPlayed  int     `json:"gamesPlayed"`
	FeatherCount float64 `json:"featherCount"`
	Rank         string  `json:"rank"`
	Price        *string `json:"price,omitempty"`
}

// Entry carries the cumulative values reported by the live session.
// JoinID names the roster entry the values belong to; a new JoinID restarts
// the baseline the next delta is taken from.
type Entry struct {
	Name             string
	JoinID           string
	ShuttlecockUsage float64
	Rank             string
	CumulativeGames  int
}

// Release describes players leaving a court after a game.
type Release struct {
	CourtID    int
	FinishedAt time.Time
	Entries    []Entry
}

// Game is one finished game on a court.
type Game struct {
	ID         int64     `json:"id"`
	CourtID    int       `json:"courtId"`
	Players    []string  `json:"players"`
	FinishedAt time.Time `json:"finishedAt"`
}

// PriceMode selects how prices are derived.
type PriceMode string

const (
	PriceModeRegular  PriceMode = "regular"
	PriceModeAmerican PriceMode = "american"
)

// PricingParams holds the fees for both price modes.
type PricingParams struct {
	CourtFee       float64 `json:"courtFee"`
	ShuttlecockFee float64 `json:"shuttlecockFee"`
	CombinedFee    float64 `json:"combinedFee"`
}

// Payload is the versioned export of the ledger.
type Payload struct {
	Version       int      `json:"version"`
	PlayerHistory []Record `json:"playerHistory"`
}
