package game

import (
	"github.com/lixenwraith/inkbeat/core"
	"github.com/lixenwraith/inkbeat/engine"
	"github.com/lixenwraith/inkbeat/event"
	"github.com/lixenwraith/inkbeat/parameter"
	"github.com/lixenwraith/inkbeat/vmath"
)

// Settings are the tunables the world reads each tick
type Settings struct {
	QuillSpeed         float64
	InkLifetimeBeats   int
	EnemyLifetimeBeats int
	EnemySpawnEvery    int
	InkOnBeat          bool
}

// DefaultSettings returns the parameter defaults
func DefaultSettings() Settings {
	return Settings{
		QuillSpeed:         parameter.QuillSpeed,
		InkLifetimeBeats:   parameter.InkLifetimeBeats,
		EnemyLifetimeBeats: parameter.EnemyLifetimeBeats,
		EnemySpawnEvery:    parameter.EnemySpawnEvery,
	}
}

// Quill is the drawing reticle; position in Q32.32 cells
type Quill struct {
	X, Y   int64
	Radius float64
	Color  core.RGB
}

// Cell returns the grid cell under the quill
func (q Quill) Cell() (int, int) {
	return vmath.Round(q.X), vmath.Round(q.Y)
}

// Ink is a drop left by the quill
type Ink struct {
	X, Y  int
	Beat  int // Beat index at spawn
	Color core.RGB
}

// Enemy lives for a fixed number of beats unless erased
type Enemy struct {
	ID   uint64
	X, Y int
	Beat int
}

// World is the tcell-free simulation driven by beat frames
type World struct {
	settings Settings
	queue    *event.EventQueue
	rng      *vmath.FastRand

	width, height    int
	targetX, targetY int64
	drawing          bool

	quill      Quill
	ink        []Ink
	enemies    []Enemy
	nextID     uint64
	background core.RGB
	beat       engine.BeatFrame
}

// NewWorld creates a world of the given size with the quill centered
// queue may be nil
func NewWorld(width, height int, settings Settings, seed uint64, queue *event.EventQueue) *World {
	w := &World{
		settings: settings,
		queue:    queue,
		rng:      vmath.NewFastRand(seed),
		ink:      make([]Ink, 0, 256),
	}
	w.Resize(width, height)
	w.Reset()
	return w
}

// Reset clears ink and enemies and recenters the quill
func (w *World) Reset() {
	w.quill = Quill{
		X:      vmath.FromInt(w.width / 2),
		Y:      vmath.FromInt(w.height / 2),
		Radius: parameter.QuillMinRadius,
		Color:  core.HSL(parameter.QuillHue, parameter.QuillSaturation, parameter.QuillLightness),
	}
	w.targetX, w.targetY = w.quill.X, w.quill.Y
	w.ink = w.ink[:0]
	w.enemies = nil
	w.background = core.Hex(parameter.BackgroundBase)
	w.beat = engine.BeatFrame{}
}

// Resize updates bounds, clamping the quill and dropping off-screen entities
func (w *World) Resize(width, height int) {
	w.width, w.height = max(width, 1), max(height, 1)

	maxX, maxY := vmath.FromInt(w.width-1), vmath.FromInt(w.height-1)
	w.quill.X = vmath.Clamp(w.quill.X, 0, maxX)
	w.quill.Y = vmath.Clamp(w.quill.Y, 0, maxY)
	w.targetX = vmath.Clamp(w.targetX, 0, maxX)
	w.targetY = vmath.Clamp(w.targetY, 0, maxY)

	ink := w.ink[:0]
	for _, d := range w.ink {
		if d.X < w.width && d.Y < w.height {
			ink = append(ink, d)
		}
	}
	w.ink = ink

	enemies := w.enemies[:0]
	for _, e := range w.enemies {
		if e.X < w.width && e.Y < w.height {
			enemies = append(enemies, e)
		}
	}
	w.enemies = enemies
}

// SetTarget points the quill at a cell
func (w *World) SetTarget(x, y int) {
	x = min(max(x, 0), w.width-1)
	y = min(max(y, 0), w.height-1)
	w.targetX, w.targetY = vmath.FromInt(x), vmath.FromInt(y)
}

// SetDrawing toggles ink output
func (w *World) SetDrawing(on bool) {
	w.drawing = on
}

// Update applies one tick of beat state to the world
func (w *World) Update(f engine.BeatFrame) {
	w.beat = f

	w.moveQuill(f.Intensity)
	w.expire(f.Index)
	if f.JustCrossed {
		// One spawn check per crossed index keeps the parity rule under catch-up
		for i := f.Index - f.Crossings + 1; i <= f.Index; i++ {
			w.spawnEnemy(i, f.Frame)
		}
	}
	if w.drawing && (!w.settings.InkOnBeat || f.JustCrossed) {
		w.addInk(f.Index, f.Intensity)
	}
	if w.drawing {
		w.erase(f.Frame)
	}
	w.updateBackground(f)
}

func (w *World) moveQuill(intensity float64) {
	speed := vmath.FromFloat(w.settings.QuillSpeed)
	w.quill.X = vmath.Lerp(w.quill.X, w.targetX, speed)
	w.quill.Y = vmath.Lerp(w.quill.Y, w.targetY, speed)

	w.quill.Radius = parameter.QuillMinRadius + (parameter.QuillMaxRadius-parameter.QuillMinRadius)*intensity
	w.quill.Color = core.HSL(parameter.QuillHue-parameter.HueShift*intensity, parameter.QuillSaturation, parameter.QuillLightness)
}

func (w *World) addInk(index int, intensity float64) {
	x, y := w.quill.Cell()
	if n := len(w.ink); n > 0 && w.ink[n-1].X == x && w.ink[n-1].Y == y && w.ink[n-1].Beat == index {
		return
	}
	if len(w.ink) >= parameter.MaxInk {
		// Recycle oldest
		copy(w.ink, w.ink[1:])
		w.ink = w.ink[:len(w.ink)-1]
	}
	w.ink = append(w.ink, Ink{
		X:     x,
		Y:     y,
		Beat:  index,
		Color: core.HSL(parameter.InkHue-parameter.HueShift*intensity, parameter.InkSaturation, parameter.InkLightness),
	})
}

// expire drops ink and enemies whose beat lifetime has passed
func (w *World) expire(index int) {
	ink := w.ink[:0]
	for _, d := range w.ink {
		if index-d.Beat < w.settings.InkLifetimeBeats {
			ink = append(ink, d)
		}
	}
	w.ink = ink

	enemies := w.enemies[:0]
	for _, e := range w.enemies {
		if index-e.Beat < w.settings.EnemyLifetimeBeats {
			enemies = append(enemies, e)
		}
	}
	w.enemies = enemies
}

func (w *World) spawnEnemy(index int, frame int64) {
	every := max(w.settings.EnemySpawnEvery, 1)
	if index%every != 0 || len(w.enemies) >= parameter.MaxEnemies {
		return
	}

	qx, qy := w.quill.Cell()
	safe := parameter.EnemySafeRadius * parameter.EnemySafeRadius
	for attempt := 0; attempt < 16; attempt++ {
		x, y := w.rng.Intn(w.width), w.rng.Intn(w.height)
		dx, dy := x-qx, y-qy
		if dx*dx+dy*dy <= safe {
			continue
		}
		w.nextID++
		w.enemies = append(w.enemies, Enemy{ID: w.nextID, X: x, Y: y, Beat: index})
		w.push(event.EventEnemySpawned, &event.EnemyPayload{ID: w.nextID, X: x, Y: y}, frame)
		return
	}
}

// erase removes enemies inside the quill radius
func (w *World) erase(frame int64) {
	r := vmath.FromFloat(w.quill.Radius)
	rSq := vmath.Mul(r, r)

	enemies := w.enemies[:0]
	for _, e := range w.enemies {
		if vmath.DistSq(w.quill.X, w.quill.Y, vmath.FromInt(e.X), vmath.FromInt(e.Y)) <= rSq {
			w.push(event.EventEnemyErased, &event.EnemyPayload{ID: e.ID, X: e.X, Y: e.Y}, frame)
			continue
		}
		enemies = append(enemies, e)
	}
	w.enemies = enemies
}

func (w *World) updateBackground(f engine.BeatFrame) {
	base := core.Hex(parameter.BackgroundBase)
	if !f.Playing {
		w.background = base
		return
	}
	flash := core.Hex(parameter.BackgroundFlash)
	alpha := f.Intensity
	if f.JustCrossed {
		alpha = 1
	}
	w.background = base.Blend(flash, alpha)
}

func (w *World) push(t event.EventType, payload any, frame int64) {
	if w.queue == nil {
		return
	}
	w.queue.Push(event.GameEvent{Type: t, Payload: payload, Frame: frame})
}

// Quill returns the reticle state
func (w *World) Quill() Quill { return w.quill }

// Ink returns live drops, oldest first
func (w *World) Ink() []Ink { return w.ink }

// Enemies returns live enemies
func (w *World) Enemies() []Enemy { return w.enemies }

// Background returns the clear color for this tick
func (w *World) Background() core.RGB { return w.background }

// Beat returns the last applied frame
func (w *World) Beat() engine.BeatFrame { return w.beat }

// Size returns the world bounds in cells
func (w *World) Size() (int, int) { return w.width, w.height }
