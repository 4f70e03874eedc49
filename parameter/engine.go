package parameter

import "time"

// Game Loop & Engine Timing
const (
	// DefaultTickRate is the fixed simulation rate in ticks per second
	DefaultTickRate = 60

	// MaxCatchUpSteps caps simulation steps run per loop wake after a stall
	// Remaining backlog is folded into the last step so a long hitch cannot snowball
	MaxCatchUpSteps = 8

	// LoopIdleSleep is the minimum wait between loop wakes
	LoopIdleSleep = time.Millisecond
)

// Event Queue Limits
const (
	// EventQueueSize is the fixed capacity of the event ring buffer
	EventQueueSize = 1024

	// EventBufferMask is the bitmask for fast modulo operations (1024 - 1)
	EventBufferMask = 1023
)

// Asset Watching
const (
	// ReloadDebounce coalesces bursts of writes to the beats document
	ReloadDebounce = 150 * time.Millisecond
)
