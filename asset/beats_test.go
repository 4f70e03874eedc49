package asset

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/lixenwraith/inkbeat/beat"
)

const sampleDoc = `{
    "bpm": 120.0,
    "beats_confidence": 3.2,
    "beats": [0.0, 0.5, 1.0, 1.5],
    "beats_intervals": [0.5, 0.5, 0.5]
}`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func TestLoadSchedule(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.beats.json")
	writeFile(t, path, sampleDoc)

	s, doc, err := LoadSchedule(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if doc.BPM != 120 {
		t.Errorf("Expected bpm 120, got %f", doc.BPM)
	}
	if s.BeatCount() != 4 {
		t.Errorf("Expected 4 beats, got %d", s.BeatCount())
	}
	if ts, _ := s.TimestampAt(3); ts != 1500*time.Millisecond {
		t.Errorf("Expected last beat at 1.5s, got %v", ts)
	}
	if err := doc.CheckIntervals(); err != nil {
		t.Errorf("Expected consistent intervals, got %v", err)
	}
}

func TestLoadScheduleRejectsNonMonotonic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.beats.json")
	writeFile(t, path, `{"beats": [0.0, 1.0, 0.9]}`)

	_, doc, err := LoadSchedule(path)
	if !errors.Is(err, beat.ErrNonMonotonic) {
		t.Errorf("Expected ErrNonMonotonic, got %v", err)
	}
	if doc == nil {
		t.Error("Expected decoded document alongside schedule error")
	}
}

func TestLoadBeatsErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadBeats(filepath.Join(dir, "missing.json")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected ErrNotExist, got %v", err)
	}

	path := filepath.Join(dir, "broken.json")
	writeFile(t, path, `{"beats": [0.0, `)
	if _, err := LoadBeats(path); err == nil {
		t.Error("Expected JSON error")
	}

	empty := filepath.Join(dir, "empty.json")
	writeFile(t, empty, `{"bpm": 90}`)
	if _, _, err := LoadSchedule(empty); !errors.Is(err, beat.ErrEmptySchedule) {
		t.Errorf("Expected ErrEmptySchedule, got %v", err)
	}
}

func TestCheckIntervals(t *testing.T) {
	doc := &BeatsDocument{Beats: []float32{0, 1, 2}, BeatsIntervals: []float32{1}}
	if err := doc.CheckIntervals(); !errors.Is(err, ErrIntervalMismatch) {
		t.Errorf("Expected ErrIntervalMismatch, got %v", err)
	}
	doc.BeatsIntervals = nil
	if err := doc.CheckIntervals(); err != nil {
		t.Errorf("Expected missing intervals to be accepted, got %v", err)
	}
}

func TestBeatsPathFor(t *testing.T) {
	tests := map[string]string{
		"audio/03_Scherzo_Allegro_vivace.flac": "audio/03_Scherzo_Allegro_vivace.beats.json",
		"song.wav":                             "song.beats.json",
		"noext":                                "noext.beats.json",
	}
	for in, want := range tests {
		if got := BeatsPathFor(in); got != want {
			t.Errorf("BeatsPathFor(%q): Expected %q, got %q", in, want, got)
		}
	}
}
