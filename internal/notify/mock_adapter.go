package notify

import (
	"context"
	"sync"
)

// MockAdapter implements Adapter for testing. It records posted messages
// and can be primed to fail.
type MockAdapter struct {
	mu     sync.Mutex
	posts  []string
	closed bool
	err    error
}

// NewMockAdapter creates an empty MockAdapter.
func NewMockAdapter() *MockAdapter {
	return &MockAdapter{}
}

// FailWith makes subsequent Post calls return err.
func (m *MockAdapter) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Post records text, or returns the primed error.
func (m *MockAdapter) Post(ctx context.Context, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.posts = append(m.posts, text)
	return nil
}

// Close marks the adapter closed.
func (m *MockAdapter) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Closed reports whether Close was called.
func (m *MockAdapter) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Posts returns a copy of all recorded posts.
func (m *MockAdapter) Posts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.posts))
	copy(out, m.posts)
	return out
}

// LastPost returns the most recent post. Returns "" and false when nothing
// has been posted.
func (m *MockAdapter) LastPost() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.posts) == 0 {
		return "", false
	}
	return m.posts[len(m.posts)-1], true
}
