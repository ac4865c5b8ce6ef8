package core

import (
	"sync"
	"time"
)

// TimeProvider supplies wall time to the tick loop
type TimeProvider interface {
	Now() time.Time
}

// RealTime provides the real system time with monotonic clock readings
type RealTime struct{}

// Now returns the current time with monotonic clock reading
func (RealTime) Now() time.Time {
	return time.Now()
}

// MockTime provides a controllable time source for testing
type MockTime struct {
	mu          sync.RWMutex
	currentTime time.Time
}

// NewMockTime creates a new mock time provider with the given start time
func NewMockTime(startTime time.Time) *MockTime {
	return &MockTime{currentTime: startTime}
}

// Now returns the current mocked time
func (m *MockTime) Now() time.Time {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.currentTime
}

// SetTime sets the current time for the mock
func (m *MockTime) SetTime(t time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = t
}

// Advance advances the current time by the given duration
func (m *MockTime) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}
