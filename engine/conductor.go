package engine

import (
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lixenwraith/inkbeat/beat"
	"github.com/lixenwraith/inkbeat/event"
	"github.com/lixenwraith/inkbeat/status"
)

// BeatFrame is the per-tick beat state handed to presentation consumers
// Valid for the tick that produced it; JustCrossed is a one-tick pulse
type BeatFrame struct {
	Frame       int64
	Playing     bool
	Elapsed     time.Duration
	Index       int
	JustCrossed bool
	Crossings   int
	Ratio       float64
	Intensity   float64
	Exhausted   bool
}

// Conductor owns the clock and cursor of the current track
// Not safe for concurrent use; every method runs on the tick goroutine
type Conductor struct {
	baseLog *zap.Logger
	log     *zap.Logger
	queue   *event.EventQueue
	wave    beat.Wave

	schedule *beat.Schedule // Shared read-only
	clock    *beat.Clock
	cursor   *beat.Cursor

	sessionID     string
	frame         int64
	exhaustedSent bool

	// Cached metric pointers
	statIndex     *atomic.Int64
	statCrossings *atomic.Int64
	statMaxBurst  *atomic.Int64
	statPlaying   *atomic.Bool
	statExhausted *atomic.Bool
	statIntensity *status.AtomicFloat
	statElapsed   *status.AtomicFloat
}

// NewConductor creates an idle conductor
// queue and reg may be nil for headless use
func NewConductor(queue *event.EventQueue, reg *status.Registry, wave beat.Wave, log *zap.Logger) *Conductor {
	if log == nil {
		log = zap.NewNop()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	if wave == nil {
		wave = beat.Triangle
	}
	return &Conductor{
		baseLog:       log,
		log:           log,
		queue:         queue,
		wave:          wave,
		statIndex:     reg.Ints.Get("beat.index"),
		statCrossings: reg.Ints.Get("beat.crossings"),
		statMaxBurst:  reg.Ints.Get("beat.max_burst"),
		statPlaying:   reg.Bools.Get("track.playing"),
		statExhausted: reg.Bools.Get("beat.exhausted"),
		statIntensity: reg.Floats.Get("beat.intensity"),
		statElapsed:   reg.Floats.Get("track.elapsed_s"),
	}
}

// StartTrack discards any previous clock and cursor and begins a new track at beat 0
func (c *Conductor) StartTrack(schedule *beat.Schedule) string {
	c.schedule = schedule
	c.clock = beat.NewClock()
	c.sessionID = uuid.NewString()
	c.exhaustedSent = false
	c.log = c.baseLog.With(zap.String("session", c.sessionID))
	c.cursor = beat.NewCursor(schedule, c.clock.Elapsed(), c.log)

	c.statPlaying.Store(true)
	c.statExhausted.Store(false)
	c.statCrossings.Store(0)
	c.statMaxBurst.Store(0)

	c.log.Info("track started", zap.Int("beat_count", schedule.BeatCount()))
	c.push(event.EventTrackStart, &event.TrackStartPayload{
		SessionID: c.sessionID,
		BeatCount: schedule.BeatCount(),
	})
	return c.sessionID
}

// StopTrack drops the clock and cursor; Update then returns idle frames
func (c *Conductor) StopTrack() {
	if c.cursor == nil {
		return
	}
	c.log.Info("track stopped", zap.Duration("elapsed", c.clock.Elapsed()))
	c.clock = nil
	c.cursor = nil
	c.statPlaying.Store(false)
	c.push(event.EventTrackStop, nil)
}

// Reload swaps the schedule mid-track, keeping track time and skipping pulses for passed beats
// When idle the schedule is only stored
func (c *Conductor) Reload(schedule *beat.Schedule) {
	c.schedule = schedule
	if c.cursor == nil {
		return
	}

	c.cursor = beat.NewCursorAt(schedule, c.clock.Elapsed(), c.log)
	c.exhaustedSent = false
	c.log.Info("schedule reloaded",
		zap.Int("beat_count", schedule.BeatCount()),
		zap.Int("index", c.cursor.Index()),
	)
	c.push(event.EventScheduleReloaded, &event.ReloadPayload{
		BeatCount: schedule.BeatCount(),
		Index:     c.cursor.Index(),
	})
}

// Update advances the track by one tick
// Clock advances first, then the cursor reads the new track time, then intensity is derived
func (c *Conductor) Update(delta time.Duration) BeatFrame {
	c.frame++
	if c.cursor == nil {
		return BeatFrame{Frame: c.frame}
	}

	c.clock.Advance(delta)
	elapsed := c.clock.Elapsed()
	c.cursor.Tick(delta, elapsed)

	for i, index := range c.cursor.CrossedIndices() {
		c.push(event.EventBeat, &event.BeatPayload{Index: index, Elapsed: elapsed, Ordinal: i})
	}

	if c.cursor.Exhausted() && !c.exhaustedSent {
		c.exhaustedSent = true
		c.statExhausted.Store(true)
		c.push(event.EventScheduleExhausted, &event.ExhaustedPayload{Index: c.cursor.Index()})
	}

	ratio := c.cursor.Ratio()
	f := BeatFrame{
		Frame:       c.frame,
		Playing:     true,
		Elapsed:     elapsed,
		Index:       c.cursor.Index(),
		JustCrossed: c.cursor.JustCrossed(),
		Crossings:   c.cursor.Crossings(),
		Ratio:       ratio,
		Intensity:   beat.Intensity(c.wave, ratio),
		Exhausted:   c.cursor.Exhausted(),
	}

	c.statIndex.Store(int64(f.Index))
	c.statIntensity.Set(f.Intensity)
	c.statElapsed.Set(elapsed.Seconds())
	if f.Crossings > 0 {
		c.statCrossings.Add(int64(f.Crossings))
		if int64(f.Crossings) > c.statMaxBurst.Load() {
			c.statMaxBurst.Store(int64(f.Crossings))
		}
	}
	return f
}

// SetWave replaces the intensity curve
func (c *Conductor) SetWave(w beat.Wave) {
	if w != nil {
		c.wave = w
	}
}

// Playing reports whether a track is active
func (c *Conductor) Playing() bool {
	return c.cursor != nil
}

// Elapsed returns track time, zero when idle
func (c *Conductor) Elapsed() time.Duration {
	if c.clock == nil {
		return 0
	}
	return c.clock.Elapsed()
}

// Schedule returns the current schedule, possibly nil
func (c *Conductor) Schedule() *beat.Schedule {
	return c.schedule
}

// SessionID returns the id assigned at the last StartTrack
func (c *Conductor) SessionID() string {
	return c.sessionID
}

// Frame returns the number of Update calls
func (c *Conductor) Frame() int64 {
	return c.frame
}

func (c *Conductor) push(t event.EventType, payload any) {
	if c.queue == nil {
		return
	}
	c.queue.Push(event.GameEvent{Type: t, Payload: payload, Frame: c.frame})
}
