package engine

import (
	"sync"
	"time"
)

// PausableClock is a TimeProvider that stops advancing while paused
// Loops driven by it see no elapsed time across a pause, so resuming does not replay it
type PausableClock struct {
	mu sync.RWMutex

	base        TimeProvider
	paused      bool
	pauseStart  time.Time     // Base time when the current pause began
	totalPaused time.Duration // Cumulative completed pauses
}

// NewPausableClock wraps base; nil uses the monotonic clock
func NewPausableClock(base TimeProvider) *PausableClock {
	if base == nil {
		base = NewMonotonicTimeProvider()
	}
	return &PausableClock{base: base}
}

// Now returns base time minus every pause
func (pc *PausableClock) Now() time.Time {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	if pc.paused {
		return pc.pauseStart.Add(-pc.totalPaused)
	}
	return pc.base.Now().Add(-pc.totalPaused)
}

// Pause freezes Now; repeated calls are ignored
func (pc *PausableClock) Pause() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if pc.paused {
		return
	}
	pc.paused = true
	pc.pauseStart = pc.base.Now()
}

// Resume continues from the frozen time
func (pc *PausableClock) Resume() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if !pc.paused {
		return
	}
	pc.totalPaused += pc.base.Now().Sub(pc.pauseStart)
	pc.paused = false
	pc.pauseStart = time.Time{}
}

// IsPaused returns current pause state
func (pc *PausableClock) IsPaused() bool {
	pc.mu.RLock()
	defer pc.mu.RUnlock()
	return pc.paused
}

// TotalPauseDuration returns cumulative pause time including any current pause
func (pc *PausableClock) TotalPauseDuration() time.Duration {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	total := pc.totalPaused
	if pc.paused {
		total += pc.base.Now().Sub(pc.pauseStart)
	}
	return total
}
