package audio

import (
	"errors"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"go.uber.org/zap"

	"github.com/lixenwraith/inkbeat/parameter"
)

// ErrNotInitialized is returned when playback is requested before Init
var ErrNotInitialized = errors.New("audio engine not initialized")

// Engine owns the speaker and a mixer that every sound is added to
// Failures are non-fatal to the game; callers keep running silently
type Engine struct {
	mu          sync.Mutex
	rate        beep.SampleRate
	mixer       *beep.Mixer
	master      *effects.Volume
	initialized bool
	log         *zap.Logger
}

// NewEngine creates an engine at the default sample rate with master volume 0.0-1.0
func NewEngine(volume float64, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	mixer := &beep.Mixer{}
	return &Engine{
		rate:   beep.SampleRate(parameter.AudioSampleRate),
		mixer:  mixer,
		master: newVolume(mixer, volume),
		log:    log,
	}
}

// Init opens the speaker and starts streaming the mixer
func (e *Engine) Init() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		return nil
	}
	if err := speaker.Init(e.rate, e.rate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}
	speaker.Play(e.master)
	e.initialized = true
	e.log.Info("audio engine started", zap.Int("sample_rate", int(e.rate)))
	return nil
}

// Play mixes s into the output
// Before Init sounds are still queued on the mixer so they can be streamed offline
func (e *Engine) Play(s beep.Streamer) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	e.mixer.Add(s)
}

// Locked runs fn while the speaker is not pulling samples
func (e *Engine) Locked(fn func()) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.initialized {
		speaker.Lock()
		defer speaker.Unlock()
	}
	fn()
}

// Active returns the number of streams currently mixed
func (e *Engine) Active() int {
	var n int
	e.Locked(func() { n = e.mixer.Len() })
	return n
}

// Stream pulls mixed output directly for offline rendering
// Only meaningful before Init; afterwards the speaker owns the mixer
func (e *Engine) Stream(samples [][2]float64) (int, bool) {
	var (
		n  int
		ok bool
	)
	e.Locked(func() { n, ok = e.master.Stream(samples) })
	return n, ok
}

// SampleRate returns the output rate
func (e *Engine) SampleRate() beep.SampleRate {
	return e.rate
}

// Initialized reports whether the speaker is open
func (e *Engine) Initialized() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.initialized
}

// Close stops all sounds and closes the speaker
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.initialized {
		e.mixer.Clear()
		return
	}
	speaker.Lock()
	e.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	e.initialized = false
	e.log.Info("audio engine stopped")
}
