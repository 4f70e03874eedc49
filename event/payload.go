package event

import "time"

// TrackStartPayload identifies a playback session
type TrackStartPayload struct {
	SessionID string
	BeatCount int
}

// BeatPayload describes a single crossed beat
type BeatPayload struct {
	Index   int           // Beat index just crossed
	Elapsed time.Duration // Track clock at the tick that crossed it
	Ordinal int           // Position among crossings of the same tick, 0-based
}

// ExhaustedPayload carries the final beat index
type ExhaustedPayload struct {
	Index int
}

// ReloadPayload describes a swapped schedule
type ReloadPayload struct {
	BeatCount int
	Index     int // Cursor position after repositioning
}

// EnemyPayload identifies an enemy by id and cell
type EnemyPayload struct {
	ID   uint64
	X, Y int
}
