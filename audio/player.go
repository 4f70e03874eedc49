package audio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/flac"
	"github.com/gopxl/beep/wav"
	"go.uber.org/zap"
)

// ErrUnsupportedFormat is returned for audio files other than flac and wav
var ErrUnsupportedFormat = errors.New("unsupported audio format")

// Decode opens an audio file by extension
func Decode(path string) (beep.StreamSeekCloser, beep.Format, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("open %s: %w", path, err)
	}

	var (
		s      beep.StreamSeekCloser
		format beep.Format
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".flac":
		s, format, err = flac.Decode(f)
	case ".wav":
		s, format, err = wav.Decode(f)
	default:
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		f.Close()
		return nil, beep.Format{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return s, format, nil
}

// Player streams one track through an Engine
// Every Play builds a fresh decode chain; the mixer holds a single entry that
// forwards to the current chain, so restarts never double the stream
type Player struct {
	engine   *Engine
	source   beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl // Current chain; replaced under the engine lock
	mixed    bool       // Forwarder is on the mixer; guarded by the engine lock
	finished atomic.Bool
	log      *zap.Logger
}

// NewPlayer wraps a decoded source, resampling to the engine rate when needed
func NewPlayer(engine *Engine, source beep.StreamSeekCloser, format beep.Format, log *zap.Logger) *Player {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Player{
		engine: engine,
		source: source,
		format: format,
		log:    log,
	}
	p.ctrl = p.chain()
	return p
}

// chain builds a paused source -> resample -> completion callback pipeline
func (p *Player) chain() *beep.Ctrl {
	var s beep.Streamer = p.source
	if p.format.SampleRate != p.engine.SampleRate() {
		s = beep.Resample(4, p.format.SampleRate, p.engine.SampleRate(), s)
	}
	return &beep.Ctrl{
		Streamer: beep.Seq(s, beep.Callback(func() { p.finished.Store(true) })),
		Paused:   true,
	}
}

// stream is the mixer entry; it follows p.ctrl across restarts and
// notes when the mixer drops it
func (p *Player) stream(samples [][2]float64) (int, bool) {
	n, ok := p.ctrl.Stream(samples)
	if !ok {
		p.mixed = false
	}
	return n, ok
}

// LoadTrack decodes path and prepares a paused player
func (e *Engine) LoadTrack(path string, log *zap.Logger) (*Player, error) {
	source, format, err := Decode(path)
	if err != nil {
		return nil, err
	}
	return NewPlayer(e, source, format, log), nil
}

// Play starts or restarts the track from the beginning
func (p *Player) Play() error {
	var err error
	p.engine.Locked(func() {
		if err = p.source.Seek(0); err != nil {
			return
		}
		p.finished.Store(false)
		p.ctrl = p.chain()
		p.ctrl.Paused = false
		if !p.mixed {
			p.mixed = true
			p.engine.mixer.Add(beep.StreamerFunc(p.stream))
		}
	})
	if err != nil {
		return fmt.Errorf("rewind: %w", err)
	}
	p.log.Info("track playing", zap.Duration("length", p.Length()))
	return nil
}

// Stop pauses the track
func (p *Player) Stop() {
	p.engine.Locked(func() {
		p.ctrl.Paused = true
	})
}

// Resume continues from the current position
func (p *Player) Resume() {
	p.engine.Locked(func() {
		p.ctrl.Paused = false
	})
}

// Position returns playback time from the decoder's sample position
func (p *Player) Position() time.Duration {
	var pos int
	p.engine.Locked(func() { pos = p.source.Position() })
	return p.format.SampleRate.D(pos)
}

// Length returns the full track duration
func (p *Player) Length() time.Duration {
	return p.format.SampleRate.D(p.source.Len())
}

// Finished reports whether the source ran out
func (p *Player) Finished() bool {
	return p.finished.Load()
}

// Close releases the decoder
func (p *Player) Close() error {
	p.Stop()
	return p.source.Close()
}

// Drift returns the audio position minus the track clock and whether it exceeds threshold
func Drift(position, clock, threshold time.Duration) (time.Duration, bool) {
	d := position - clock
	abs := d
	if abs < 0 {
		abs = -abs
	}
	return d, abs > threshold
}
