package engine

import (
	"sync"
	"time"
)

// MockTimeProvider is a manually stepped clock for tests and headless runs
type MockTimeProvider struct {
	mu  sync.Mutex
	now time.Time
}

// NewMockTimeProvider starts the clock at start
func NewMockTimeProvider(start time.Time) *MockTimeProvider {
	return &MockTimeProvider{now: start}
}

// Now returns the stepped time
func (m *MockTimeProvider) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Advance steps the clock; negative steps are ignored so time never runs backwards
func (m *MockTimeProvider) Advance(d time.Duration) time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	if d > 0 {
		m.now = m.now.Add(d)
	}
	return m.now
}
