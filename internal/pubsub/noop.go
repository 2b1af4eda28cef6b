package pubsub

import (
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// noop encodes events but sends them nowhere. Used when no project is configured.
type noop struct{}

// NewNoop returns a client that only logs events.
func NewNoop() PubSubClient {
	return noop{}
}

func (noop) SendMessage(eventType EventType, data any) error {
	b, err := msgpack.Marshal(data)
	if err != nil {
		return err
	}
	log.Debug("Event not published, pubsub disabled", "type", eventType, "bytes", len(b))
	return nil
}

func (noop) ProcessMessage(data []byte, returnValue any) error {
	return decode(data, returnValue)
}

func (noop) Close() error {
	return nil
}
