package parameter

// Quill
const (
	// QuillSpeed is the lerp factor toward the mouse per tick
	QuillSpeed = 0.1

	// QuillMinRadius and QuillMaxRadius bound the reticle size in cells
	QuillMinRadius = 1.0
	QuillMaxRadius = 3.0
)

// Ink
const (
	// InkLifetimeBeats is how many beats a drop survives after its spawn beat
	InkLifetimeBeats = 8

	// MaxInk caps live drops; oldest are recycled first
	MaxInk = 2048
)

// Enemies
const (
	// EnemySpawnEvery spawns on beats whose index is a multiple of this value
	EnemySpawnEvery = 2

	// EnemyLifetimeBeats is how many beats an enemy survives after spawning
	EnemyLifetimeBeats = 6

	// MaxEnemies caps live enemies
	MaxEnemies = 24

	// EnemySafeRadius keeps spawns away from the quill (cells)
	EnemySafeRadius = 6
)
