package beat

import (
	"time"

	"go.uber.org/zap"
)

// State is the cursor lifecycle state
type State int

const (
	// Armed counts down toward the next scheduled beat
	Armed State = iota
	// Exhausted holds the last crossed beat with a zero countdown; ticks are no-ops
	Exhausted
)

func (s State) String() string {
	switch s {
	case Armed:
		return "armed"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Cursor tracks the most recently crossed beat of a schedule as track time advances
// Not safe for concurrent use; owned by a single tick loop
type Cursor struct {
	schedule *Schedule
	log      *zap.Logger

	state     State
	index     int
	countdown time.Duration // Remaining time to beat index+1
	interval  time.Duration // Length of the current beat, index (or arm time, if later) to index+1

	// Indices crossed during the last Tick, reused across ticks
	crossed []int
}

// NewCursor starts a cursor at beat 0 for a track currently at trackTime
// Schedules with fewer than two beats, including nil, start Exhausted
// A trackTime past beat 1 clamps the countdown to zero; the first non-zero
// Tick then catches up boundary by boundary
func NewCursor(schedule *Schedule, trackTime time.Duration, log *zap.Logger) *Cursor {
	c := newCursor(schedule, log)
	c.arm(0, trackTime)
	if c.countdown < 0 {
		c.countdown = 0
	}
	return c
}

// NewCursorAt positions a cursor on the beat most recently passed at trackTime
// without reporting any crossings, used for seek, preview and schedule reload
func NewCursorAt(schedule *Schedule, trackTime time.Duration, log *zap.Logger) *Cursor {
	c := newCursor(schedule, log)
	index := schedule.IndexAt(trackTime)
	if index < 0 {
		index = 0
	}
	c.arm(index, trackTime)
	return c
}

func newCursor(schedule *Schedule, log *zap.Logger) *Cursor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Cursor{
		schedule: schedule,
		log:      log,
		crossed:  make([]int, 0, 4),
	}
}

// arm points the cursor at index and derives the countdown from absolute track time
func (c *Cursor) arm(index int, trackTime time.Duration) {
	c.index = index
	if index+1 >= c.schedule.BeatCount() {
		c.exhaust()
		return
	}
	next := c.schedule.beats[index+1]
	start := c.schedule.beats[index]
	if trackTime < start {
		// Lead-in before the first beat counts as part of the current beat
		start = trackTime
	}
	c.interval = next - start
	c.countdown = next - trackTime
}

func (c *Cursor) exhaust() {
	c.state = Exhausted
	c.countdown = 0
	c.log.Warn("beat schedule exhausted, beat effects stop",
		zap.Int("index", c.index),
		zap.Int("beat_count", c.schedule.BeatCount()),
	)
}

// Tick consumes a frame delta; trackTime is the clock reading after the delta was applied
// Every boundary inside the delta is crossed individually, re-anchoring each
// countdown to trackTime so beats are never skipped and error never accumulates
func (c *Cursor) Tick(delta, trackTime time.Duration) {
	c.crossed = c.crossed[:0]

	if c.state == Exhausted || delta <= 0 {
		return
	}

	c.countdown -= delta
	for c.state == Armed && c.countdown <= 0 {
		c.crossed = append(c.crossed, c.index+1)
		c.arm(c.index+1, trackTime)
	}

	if len(c.crossed) > 1 {
		c.log.Debug("beat catch-up",
			zap.Int("crossings", len(c.crossed)),
			zap.Int("index", c.index),
			zap.Duration("track_time", trackTime),
		)
	}
}

// Index returns the most recently crossed beat
func (c *Cursor) Index() int {
	return c.index
}

// JustCrossed reports whether the last Tick crossed at least one beat
func (c *Cursor) JustCrossed() bool {
	return len(c.crossed) > 0
}

// Crossings returns the number of beats crossed by the last Tick
func (c *Cursor) Crossings() int {
	return len(c.crossed)
}

// CrossedIndices returns the beats crossed by the last Tick in order
// The slice is reused by the next Tick
func (c *Cursor) CrossedIndices() []int {
	return c.crossed
}

// Countdown returns time remaining until the next beat
// Exhaustion zeroes it since no next beat exists; index and interval keep their last values
func (c *Cursor) Countdown() time.Duration {
	return c.countdown
}

// Interval returns the length of the current beat
func (c *Cursor) Interval() time.Duration {
	return c.interval
}

// Ratio returns the elapsed fraction of the current beat in [0,1]
// 0 is the downbeat; an exhausted cursor reports 1
// Before the first beat the lead-in is folded into beat 0, so the ratio rises
// from 0 at arm time instead of pinning intensity at its peak
func (c *Cursor) Ratio() float64 {
	if c.state == Exhausted || c.interval <= 0 {
		return 1
	}
	r := 1 - float64(c.countdown)/float64(c.interval)
	return clamp01(r)
}

// State returns the cursor lifecycle state
func (c *Cursor) State() State {
	return c.state
}

// Exhausted reports whether the schedule has run out
func (c *Cursor) Exhausted() bool {
	return c.state == Exhausted
}

// Schedule returns the shared schedule
func (c *Cursor) Schedule() *Schedule {
	return c.schedule
}
