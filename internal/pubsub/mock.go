package pubsub

import (
	"sync"
)

var _ PubSubClient = (*MockPubSubClient)(nil)

// MockPubSubClient is a mock implementation of PubSubClient for testing.
// It is safe for concurrent use.
type MockPubSubClient struct {
	mu sync.Mutex

	// Spies for method calls
	SendMessageFunc func(eventType EventType, data any) error

	// Call records
	SendMessageCalls []SendMessageCall
}

// SendMessageCall holds the arguments for a call to SendMessage.
type SendMessageCall struct {
	Type EventType
	Data any
}

// NewMock creates a new mock PubSubClient.
func NewMock() *MockPubSubClient {
	return &MockPubSubClient{}
}

// SendMessage records the call and executes the mock function if provided.
func (m *MockPubSubClient) SendMessage(eventType EventType, data any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SendMessageCalls = append(m.SendMessageCalls, SendMessageCall{Type: eventType, Data: data})
	if m.SendMessageFunc != nil {
		return m.SendMessageFunc(eventType, data)
	}
	return nil
}

// ProcessMessage decodes data like the real client.
func (m *MockPubSubClient) ProcessMessage(data []byte, returnValue any) error {
	return decode(data, returnValue)
}

func (m *MockPubSubClient) Close() error {
	return nil
}

// Types returns the event types sent so far, in order.
func (m *MockPubSubClient) Types() []EventType {
	m.mu.Lock()
	defer m.mu.Unlock()
	types := make([]EventType, 0, len(m.SendMessageCalls))
	for _, c := range m.SendMessageCalls {
		types = append(types, c.Type)
	}
	return types
}
