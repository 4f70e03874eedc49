package event

// EventType represents the type of game event
type EventType int

const (
	// === Track Event ===

	// EventTrackStart signals a fresh clock and cursor for a new track
	// Trigger: Conductor.StartTrack
	// Consumer: Game, Metronome | Payload: *TrackStartPayload
	EventTrackStart EventType = iota

	// EventTrackStop signals playback ended or was aborted
	// Trigger: Conductor.StopTrack
	// Consumer: Game | Payload: nil
	EventTrackStop

	// === Beat Event ===

	// EventBeat signals one crossed beat boundary, emitted once per crossing
	// Trigger: Conductor.Update
	// Consumer: Game spawner, Metronome | Payload: *BeatPayload
	EventBeat EventType = iota + 100 // Offset to group beat events

	// EventScheduleExhausted signals the last beat was crossed, effects stop pulsing
	// Trigger: Conductor.Update on Armed -> Exhausted
	// Consumer: Game | Payload: *ExhaustedPayload
	EventScheduleExhausted

	// EventScheduleReloaded signals a hot-swapped schedule
	// Trigger: Conductor.Reload
	// Consumer: Game overlay | Payload: *ReloadPayload
	EventScheduleReloaded

	// === Game Event ===

	// EventEnemySpawned signals an enemy placed on a spawn beat
	// Trigger: Game spawner
	// Consumer: Audio | Payload: *EnemyPayload
	EventEnemySpawned EventType = iota + 200

	// EventEnemyErased signals the quill drew over an enemy
	// Trigger: Game collision
	// Consumer: Audio | Payload: *EnemyPayload
	EventEnemyErased
)

var typeNames = map[EventType]string{
	EventTrackStart:        "TrackStart",
	EventTrackStop:         "TrackStop",
	EventBeat:              "Beat",
	EventScheduleExhausted: "ScheduleExhausted",
	EventScheduleReloaded:  "ScheduleReloaded",
	EventEnemySpawned:      "EnemySpawned",
	EventEnemyErased:       "EnemyErased",
}

func (t EventType) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "Unknown"
}

// GameEvent is a queued event with the simulation frame it was emitted on
type GameEvent struct {
	Type    EventType
	Payload any
	Frame   int64
}
