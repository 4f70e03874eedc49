package audio

import (
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lixenwraith/inkbeat/event"
	"github.com/lixenwraith/inkbeat/parameter"
)

// Metronome clicks on beat events
type Metronome struct {
	engine  *Engine
	enabled atomic.Bool
	log     *zap.Logger
}

// NewMetronome creates a metronome mixing into engine
func NewMetronome(engine *Engine, enabled bool, log *zap.Logger) *Metronome {
	if log == nil {
		log = zap.NewNop()
	}
	m := &Metronome{engine: engine, log: log}
	m.enabled.Store(enabled)
	return m
}

// SetEnabled toggles clicking
func (m *Metronome) SetEnabled(on bool) {
	m.enabled.Store(on)
}

// Enabled reports whether clicks are produced
func (m *Metronome) Enabled() bool {
	return m.enabled.Load()
}

// EventTypes subscribes to beats
func (m *Metronome) EventTypes() []event.EventType {
	return []event.EventType{event.EventBeat}
}

// HandleEvent clicks once per tick that crossed a beat
// Catch-up bursts produce a single click for their first crossing
func (m *Metronome) HandleEvent(ev event.GameEvent) {
	if ev.Type != event.EventBeat || !m.enabled.Load() {
		return
	}
	p, ok := ev.Payload.(*event.BeatPayload)
	if !ok || p.Ordinal != 0 {
		return
	}
	m.Click(p.Index)
}

// Click plays the click for beat index
func (m *Metronome) Click(index int) {
	click, err := NewClick(m.engine.SampleRate(), ClickFreq(index), parameter.ClickVolume)
	if err != nil {
		m.log.Error("click synthesis failed", zap.Error(err))
		return
	}
	m.engine.Play(click)
}
