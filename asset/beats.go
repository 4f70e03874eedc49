package asset

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lixenwraith/inkbeat/beat"
)

// BeatsSuffix replaces the audio extension to name a track's beats document
const BeatsSuffix = ".beats.json"

// ErrIntervalMismatch flags a beats_intervals list inconsistent with beats
var ErrIntervalMismatch = errors.New("beats_intervals length does not match beats")

// BeatsDocument is the beat-extraction output stored next to each track
type BeatsDocument struct {
	BPM             float64   `json:"bpm"`
	BeatsConfidence float64   `json:"beats_confidence"`
	Beats           []float32 `json:"beats"`
	BeatsIntervals  []float32 `json:"beats_intervals"`
}

// LoadBeats reads and decodes a beats document
func LoadBeats(path string) (*BeatsDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read beats %s: %w", path, err)
	}
	doc, err := ParseBeats(data)
	if err != nil {
		return nil, fmt.Errorf("parse beats %s: %w", path, err)
	}
	return doc, nil
}

// ParseBeats decodes a beats document from JSON
func ParseBeats(data []byte) (*BeatsDocument, error) {
	var doc BeatsDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Schedule validates the beat list and builds a schedule
func (d *BeatsDocument) Schedule() (*beat.Schedule, error) {
	return beat.NewScheduleSeconds(d.Beats)
}

// CheckIntervals reports whether beats_intervals, when present, has one entry per gap
// The interval list is informational; a mismatch is not fatal to playback
func (d *BeatsDocument) CheckIntervals() error {
	if len(d.BeatsIntervals) == 0 || len(d.Beats) == 0 {
		return nil
	}
	if len(d.BeatsIntervals) != len(d.Beats)-1 {
		return fmt.Errorf("%w: %d intervals for %d beats", ErrIntervalMismatch, len(d.BeatsIntervals), len(d.Beats))
	}
	return nil
}

// LoadSchedule loads a document and builds its schedule in one step
func LoadSchedule(path string) (*beat.Schedule, *BeatsDocument, error) {
	doc, err := LoadBeats(path)
	if err != nil {
		return nil, nil, err
	}
	s, err := doc.Schedule()
	if err != nil {
		return nil, doc, fmt.Errorf("schedule %s: %w", path, err)
	}
	return s, doc, nil
}

// BeatsPathFor returns the beats document path for an audio file
// audio/03_Scherzo.flac -> audio/03_Scherzo.beats.json
func BeatsPathFor(audioPath string) string {
	ext := filepath.Ext(audioPath)
	return strings.TrimSuffix(audioPath, ext) + BeatsSuffix
}
