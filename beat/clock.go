package beat

import "time"

// Clock accumulates elapsed time for the currently playing track
// Advanced once per tick by the frame delta; has no natural end
type Clock struct {
	elapsed time.Duration
}

// NewClock creates a clock at track start
func NewClock() *Clock {
	return &Clock{}
}

// Advance adds a frame delta to elapsed time
// Negative deltas are ignored, the clock never runs backwards
func (c *Clock) Advance(delta time.Duration) {
	if delta <= 0 {
		return
	}
	c.elapsed += delta
}

// Elapsed returns time since track start
func (c *Clock) Elapsed() time.Duration {
	return c.elapsed
}

// Reset zeroes the clock for a new track
func (c *Clock) Reset() {
	c.elapsed = 0
}
