package notify

import (
	"context"
	"sync"
)

// MockDispatcher records messages instead of publishing them. Used in tests
// and local development without a broker.
type MockDispatcher struct {
	mu       sync.Mutex
	messages []Message

	// SendErr, when set, is returned by every Send call.
	SendErr error
}

func NewMockDispatcher() *MockDispatcher {
	return &MockDispatcher{}
}

func (d *MockDispatcher) Send(_ context.Context, msg Message) error {
	if d.SendErr != nil {
		return d.SendErr
	}

	d.mu.Lock()
	d.messages = append(d.messages, msg)
	d.mu.Unlock()
	return nil
}

// Messages returns a snapshot of everything sent so far.
func (d *MockDispatcher) Messages() []Message {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Message, len(d.messages))
	copy(out, d.messages)
	return out
}
