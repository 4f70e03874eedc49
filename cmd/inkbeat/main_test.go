package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/inkbeat/beat"
)

func writeBeats(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "track.beats.json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write beats: %v", err)
	}
	return path
}

func TestInspectPrintsStats(t *testing.T) {
	path := writeBeats(t, `{"bpm": 120, "beats_confidence": 3.1, "beats": [0.5, 1.0, 1.5, 2.25], "beats_intervals": [0.5, 0.5, 0.75]}`)

	var out bytes.Buffer
	if err := inspect(&out, path); err != nil {
		t.Fatalf("inspect failed: %v", err)
	}

	for _, want := range []string{
		"beats:     4",
		"bpm:       120.00",
		"first:     0.500s",
		"last:      2.250s",
		"mean 0.583s",
		"min 0.500s",
		"max 0.750s",
	} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out.String())
		}
	}
}

func TestInspectRejectsUnorderedBeats(t *testing.T) {
	path := writeBeats(t, `{"beats": [0, 1.0, 0.5]}`)
	if err := inspect(&bytes.Buffer{}, path); err == nil {
		t.Error("Expected error for non-monotonic beats")
	}
}

func TestSimulateHeadless(t *testing.T) {
	s, err := beat.NewScheduleSeconds([]float64{0, 0.5, 1.0, 1.5})
	if err != nil {
		t.Fatal(err)
	}

	var out bytes.Buffer
	opts := simOptions{fps: 50, duration: 2 * time.Second}
	if err := simulate(context.Background(), &out, s, opts); err != nil {
		t.Fatalf("simulate failed: %v", err)
	}

	text := out.String()
	if n := strings.Count(text, "crossings 1"); n != 3 {
		t.Errorf("Expected 3 single-crossing pulses, got %d:\n%s", n, text)
	}
	if !strings.Contains(text, "schedule exhausted at beat 3") {
		t.Errorf("Expected exhaustion line, got:\n%s", text)
	}
	if !strings.Contains(text, "ticks 100") {
		t.Errorf("Expected 100 ticks for 2s at 50fps, got:\n%s", text)
	}
}

func TestSimulateCoarseTicksBurst(t *testing.T) {
	s, _ := beat.NewScheduleSeconds([]float64{0, 0.1, 0.2, 0.3, 5})

	var out bytes.Buffer
	// 2 fps: first tick lands at 0.5s, past three beats
	if err := simulate(context.Background(), &out, s, simOptions{fps: 2, duration: time.Second}); err != nil {
		t.Fatalf("simulate failed: %v", err)
	}
	if !strings.Contains(out.String(), "beat     3  crossings 3") {
		t.Errorf("Expected a 3-crossing burst, got:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "max burst 3") {
		t.Errorf("Expected max burst 3, got:\n%s", out.String())
	}
}

func TestSimulateRejectsZeroFPS(t *testing.T) {
	s, _ := beat.NewScheduleSeconds([]float64{0, 1})
	if err := simulate(context.Background(), &bytes.Buffer{}, s, simOptions{fps: 0, duration: time.Second}); err == nil {
		t.Error("Expected error for zero fps")
	}
}

func TestResolveBeatsPath(t *testing.T) {
	got, err := resolveBeatsPath("music/03_Scherzo.flac", "")
	if err != nil || got != "music/03_Scherzo.beats.json" {
		t.Errorf("Expected derived path, got %q (%v)", got, err)
	}
	got, _ = resolveBeatsPath("music/a.flac", "custom.json")
	if got != "custom.json" {
		t.Errorf("Expected explicit path, got %q", got)
	}
	if _, err := resolveBeatsPath("", ""); err == nil {
		t.Error("Expected error without audio or beats path")
	}
}
