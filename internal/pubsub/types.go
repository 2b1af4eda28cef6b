package pubsub

import (
	"time"

	"cloud.google.com/go/pubsub"
)

type client struct {
	client   *pubsub.Client
	topic    string
	teardown func()
}

// EventType represents the type of event/message sent via pubsub.
type EventType string

const (
	EventPlayerJoined   EventType = "player-joined"
	EventPlayerRemoved  EventType = "player-removed"
	EventCourtAssigned  EventType = "court-assigned"
	EventCourtReleased  EventType = "court-released"
	EventGroupCommitted EventType = "group-committed"
	EventHistoryPriced  EventType = "history-priced"
	EventHistoryCleared EventType = "history-cleared"
)

// Event is the payload published for a session change.
type Event struct {
	Type       EventType `msgpack:"type"`
	CourtID    int       `msgpack:"court_id,omitempty"`
	Players    []string  `msgpack:"players,omitempty"`
	Next       []string  `msgpack:"next,omitempty"`
	PriceMode  string    `msgpack:"price_mode,omitempty"`
	OccurredAt time.Time `msgpack:"occurred_at"`
}
