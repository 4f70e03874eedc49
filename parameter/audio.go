package parameter

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 100 * time.Millisecond

	// DefaultVolume is the master volume in percent
	DefaultVolume = 70
)

// Metronome Click
const (
	ClickDuration = 40 * time.Millisecond
	ClickAttack   = 2 * time.Millisecond
	ClickRelease  = 30 * time.Millisecond
	ClickFreq     = 1320.0 // E6
	AccentFreq    = 1760.0 // A6
	ClickVolume   = 0.5
	AccentEvery   = 4 // Beats per accent
)

// Drift Reporting
const (
	// DriftWarnThreshold is the audio position vs track clock gap that is logged
	DriftWarnThreshold = 80 * time.Millisecond

	// DriftCheckEvery is the number of ticks between drift checks
	DriftCheckEvery = 16
)
