package audio

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/wav"
)

func writeWav(t *testing.T, rate beep.SampleRate, d time.Duration) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "track.wav")
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create wav: %v", err)
	}
	defer f.Close()

	format := beep.Format{SampleRate: rate, NumChannels: 2, Precision: 2}
	if err := wav.Encode(f, beep.Silence(rate.N(d)), format); err != nil {
		t.Fatalf("Failed to encode wav: %v", err)
	}
	return path
}

func TestLoadTrackWav(t *testing.T) {
	e := NewEngine(1, nil)
	path := writeWav(t, beep.SampleRate(22050), 500*time.Millisecond)

	p, err := e.LoadTrack(path, nil)
	if err != nil {
		t.Fatalf("LoadTrack failed: %v", err)
	}
	defer p.Close()

	if p.Length() != 500*time.Millisecond {
		t.Errorf("Expected length 500ms, got %v", p.Length())
	}
	if p.Position() != 0 {
		t.Errorf("Expected position 0, got %v", p.Position())
	}
	if p.Finished() {
		t.Error("Expected unfinished track before playing")
	}
}

func TestPlayerStreamsToCompletion(t *testing.T) {
	e := NewEngine(1, nil)
	path := writeWav(t, e.SampleRate(), 100*time.Millisecond)

	p, err := e.LoadTrack(path, nil)
	if err != nil {
		t.Fatalf("LoadTrack failed: %v", err)
	}
	defer p.Close()

	if err := p.Play(); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	if e.Active() != 1 {
		t.Fatalf("Expected track on mixer, got %d streams", e.Active())
	}

	// Pull samples as the speaker would
	drain(e.mixer, e.SampleRate().N(200*time.Millisecond))

	if !p.Finished() {
		t.Error("Expected track finished after draining")
	}
	if p.Position() != 100*time.Millisecond {
		t.Errorf("Expected position 100ms, got %v", p.Position())
	}
}

func loadTestTrack(t *testing.T, e *Engine, d time.Duration) *Player {
	t.Helper()
	p, err := e.LoadTrack(writeWav(t, e.SampleRate(), d), nil)
	if err != nil {
		t.Fatalf("LoadTrack failed: %v", err)
	}
	t.Cleanup(func() { p.Close() })
	return p
}

func TestPlayerRestartMidTrack(t *testing.T) {
	e := NewEngine(1, nil)
	p := loadTestTrack(t, e, 500*time.Millisecond)

	if err := p.Play(); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	e.Stream(make([][2]float64, e.SampleRate().N(100*time.Millisecond)))

	if err := p.Play(); err != nil {
		t.Fatalf("Restart failed: %v", err)
	}
	if e.Active() != 1 {
		t.Fatalf("Expected one stream after restart, got %d", e.Active())
	}
	if p.Position() != 0 {
		t.Errorf("Expected position 0 after restart, got %v", p.Position())
	}

	n := e.SampleRate().N(50 * time.Millisecond)
	e.Stream(make([][2]float64, n))
	if want := e.SampleRate().D(n); p.Position() != want {
		t.Errorf("Expected position %v after %d samples, got %v", want, n, p.Position())
	}
}

func TestPlayerRestartAfterFinish(t *testing.T) {
	e := NewEngine(1, nil)
	p := loadTestTrack(t, e, 100*time.Millisecond)

	for round := 0; round < 2; round++ {
		if err := p.Play(); err != nil {
			t.Fatalf("round %d: Play failed: %v", round, err)
		}
		if p.Finished() {
			t.Fatalf("round %d: Expected unfinished right after Play", round)
		}
		if e.Active() != 1 {
			t.Fatalf("round %d: Expected one stream, got %d", round, e.Active())
		}

		drain(e.mixer, e.SampleRate().N(200*time.Millisecond))

		if !p.Finished() {
			t.Errorf("round %d: Expected finished after draining", round)
		}
		if p.Position() != 100*time.Millisecond {
			t.Errorf("round %d: Expected position 100ms, got %v", round, p.Position())
		}
	}
}
