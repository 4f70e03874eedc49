package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"

	"github.com/lixenwraith/inkbeat/parameter"
)

// envelope fades a stream in and out over a fixed length, then ends it
type envelope struct {
	src     beep.Streamer
	pos     int
	attack  int // Samples
	release int // Samples
	length  int // Samples
}

// NewEnvelope shapes s with a linear attack and release and cuts it at duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	length := rate.N(duration)
	return &envelope{
		src:     s,
		attack:  min(rate.N(attack), length),
		release: min(rate.N(release), length),
		length:  length,
	}
}

// gain returns the envelope level at sample p
func (e *envelope) gain(p int) float64 {
	g := 1.0
	if e.attack > 0 && p < e.attack {
		g = float64(p) / float64(e.attack)
	}
	if left := e.length - p; e.release > 0 && left < e.release {
		g = min(g, float64(left)/float64(e.release))
	}
	return g
}

func (e *envelope) Stream(samples [][2]float64) (int, bool) {
	left := e.length - e.pos
	if left <= 0 {
		return 0, false
	}
	if len(samples) > left {
		samples = samples[:left]
	}

	n, ok := e.src.Stream(samples)
	for i := range samples[:n] {
		g := e.gain(e.pos)
		samples[i][0] *= g
		samples[i][1] *= g
		e.pos++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.src.Err() }

// newVolume wraps s with a linear gain
// math.Log2(0) is -Inf, so 0 volume is made silent explicitly
func newVolume(s beep.Streamer, vol float64) *effects.Volume {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// ClickFreq returns the metronome pitch for a beat; every AccentEvery-th beat is accented
func ClickFreq(index int) float64 {
	if parameter.AccentEvery > 0 && index%parameter.AccentEvery == 0 {
		return parameter.AccentFreq
	}
	return parameter.ClickFreq
}

// NewClick builds a short enveloped sine click
func NewClick(rate beep.SampleRate, freq, vol float64) (beep.Streamer, error) {
	tone, err := generators.SineTone(rate, freq)
	if err != nil {
		return nil, err
	}
	shaped := NewEnvelope(tone, parameter.ClickDuration, parameter.ClickAttack, parameter.ClickRelease, rate)
	return newVolume(shaped, vol), nil
}
