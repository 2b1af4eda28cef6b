package session

import (
	"errors"

	"github.com/mauv0809/court-queue/internal/history"
)

// Recoverable, user-facing errors. The rejected action leaves state unchanged.
var (
	ErrInvalidName           = errors.New("name must be at least 2 characters long")
	ErrDuplicateName         = errors.New("name is already in the queue or on a court")
	ErrInvalidRank           = errors.New("invalid rank")
	ErrUnknownPlayer         = errors.New("unknown player")
	ErrInvalidCourtID        = errors.New("court id must be a positive integer")
	ErrDuplicateCourtID      = errors.New("court id is already in use")
	ErrCourtNotFound         = errors.New("court not found")
	ErrCourtOccupied         = errors.New("court still has players")
	ErrNoAvailablePlayers    = errors.New("no available players")
	ErrPlayerAlreadyAssigned = errors.New("player is already on a court")
	ErrPlayerNotOnCourt      = errors.New("player is not on this court")
	ErrInvalidSlot           = errors.New("no player in this slot")
	ErrInvalidRelease        = errors.New("invalid release")
	ErrShuttlecockDisabled   = errors.New("shuttlecocks can only be counted with 2 or 4 players on court")
	ErrInvalidDirection      = errors.New("direction must be increment or decrement")
	ErrSelectionLimit        = errors.New("at most 4 players can be selected")
	ErrGroupNotFound         = errors.New("group not found")
	ErrInvalidGroupSize      = errors.New("group must contain exactly 4 selected players")
	ErrInvalidAssignment     = errors.New("invalid group assignment")
)

var reasons = map[error]string{
	ErrInvalidName:              "invalid_name",
	ErrDuplicateName:            "duplicate_name",
	ErrInvalidRank:              "invalid_rank",
	ErrUnknownPlayer:            "unknown_player",
	ErrInvalidCourtID:           "invalid_court_id",
	ErrDuplicateCourtID:         "duplicate_court_id",
	ErrCourtNotFound:            "court_not_found",
	ErrCourtOccupied:            "court_occupied",
	ErrNoAvailablePlayers:       "no_available_players",
	ErrPlayerAlreadyAssigned:    "player_already_assigned",
	ErrPlayerNotOnCourt:         "player_not_on_court",
	ErrInvalidSlot:              "invalid_slot",
	ErrInvalidRelease:           "invalid_release",
	ErrShuttlecockDisabled:      "shuttlecock_disabled",
	ErrInvalidDirection:         "invalid_direction",
	ErrSelectionLimit:           "selection_limit",
	ErrGroupNotFound:            "group_not_found",
	ErrInvalidGroupSize:         "invalid_group_size",
	ErrInvalidAssignment:        "invalid_assignment",
	history.ErrNoPlayers:        "no_players",
	history.ErrUnknownPriceMode: "unknown_price_mode",
	history.ErrNotFound:         "history_not_found",
}

// IsUserError reports whether err is a recoverable organizer mistake
// rather than an infrastructure failure.
func IsUserError(err error) bool {
	return Reason(err) != ""
}

// Reason returns a short label for a user error, or "" for anything else.
func Reason(err error) string {
	for target, reason := range reasons {
		if errors.Is(err, target) {
			return reason
		}
	}
	return ""
}
