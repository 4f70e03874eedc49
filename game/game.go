package game

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/inkbeat/audio"
	"github.com/lixenwraith/inkbeat/beat"
	"github.com/lixenwraith/inkbeat/core"
	"github.com/lixenwraith/inkbeat/engine"
	"github.com/lixenwraith/inkbeat/event"
	"github.com/lixenwraith/inkbeat/parameter"
	"github.com/lixenwraith/inkbeat/status"
)

// State is the screen the game is on
type State int

const (
	StateTitle State = iota
	StatePlaying
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateTitle:
		return "title"
	case StatePlaying:
		return "playing"
	case StateFinished:
		return "finished"
	}
	return "unknown"
}

// Options wires the game to its collaborators; only Schedule is required
type Options struct {
	Schedule  *beat.Schedule
	Wave      beat.Wave
	Tick      time.Duration
	Settings  Settings
	Player    *audio.Player    // Nil plays silently
	Metronome *audio.Metronome // Nil disables clicks
	Reloads   <-chan *beat.Schedule
	Clock     engine.TimeProvider
	Registry  *status.Registry
	Log       *zap.Logger
}

// Game is the terminal frontend; all simulation state is touched on the Run goroutine
type Game struct {
	screen    tcell.Screen
	log       *zap.Logger
	reg       *status.Registry
	queue     *event.EventQueue
	router    *event.Router
	clock     *engine.PausableClock
	conductor *engine.Conductor
	loop      *engine.Loop
	world     *World
	schedule  *beat.Schedule
	player    *audio.Player
	metronome *audio.Metronome
	reloads   <-chan *beat.Schedule

	state   State
	overlay bool
	frame   engine.BeatFrame
	score   *scoreboard

	statEvents *status.AtomicFloat
}

// New builds a game on an initialized screen
func New(screen tcell.Screen, opts Options) *Game {
	log := opts.Log
	if log == nil {
		log = zap.NewNop()
	}
	reg := opts.Registry
	if reg == nil {
		reg = status.NewRegistry()
	}
	if opts.Settings == (Settings{}) {
		opts.Settings = DefaultSettings()
	}

	queue := event.NewEventQueue()
	width, height := screen.Size()
	clock := engine.NewPausableClock(opts.Clock)

	g := &Game{
		screen:     screen,
		log:        log,
		reg:        reg,
		queue:      queue,
		router:     event.NewRouter(queue),
		clock:      clock,
		conductor:  engine.NewConductor(queue, reg, opts.Wave, log),
		world:      NewWorld(width, height, opts.Settings, uint64(time.Now().UnixNano()), queue),
		schedule:   opts.Schedule,
		player:     opts.Player,
		metronome:  opts.Metronome,
		reloads:    opts.Reloads,
		state:      StateTitle,
		score:      newScoreboard(log),
		statEvents: reg.Floats.Get("game.events_per_tick"),
	}
	g.router.Register(g.score)
	if g.metronome != nil {
		g.router.Register(g.metronome)
	}
	g.loop = engine.NewLoop(opts.Tick, clock, reg, log)
	g.loop.Step = g.step
	g.loop.Frame = g.draw

	screen.EnableMouse()
	screen.HideCursor()
	return g
}

// Run processes input and ticks until ctx ends or the player quits
func (g *Game) Run(ctx context.Context) error {
	events := make(chan tcell.Event, 100)
	core.Go(func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return
			}
		}
	})

	wake := g.loop.Interval() / 2
	if wake < parameter.LoopIdleSleep {
		wake = parameter.LoopIdleSleep
	}
	ticker := time.NewTicker(wake)
	defer ticker.Stop()

	g.draw()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case ev := <-events:
			if !g.HandleEvent(ev) {
				return nil
			}

		case s := <-g.reloads:
			g.Reload(s)

		case <-ticker.C:
			g.loop.Advance()
		}
	}
}

// HandleEvent applies one input event; false requests quit
func (g *Game) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyF1:
			g.overlay = !g.overlay
		case tcell.KeyRune:
			switch ev.Rune() {
			case ' ':
				if g.state != StatePlaying {
					g.Start()
				}
			case 'r':
				g.Start()
			case 'p':
				g.TogglePause()
			case 'q':
				return false
			}
		}

	case *tcell.EventMouse:
		x, y := ev.Position()
		g.world.SetTarget(x, y)
		g.world.SetDrawing(ev.Buttons()&tcell.Button1 != 0)

	case *tcell.EventResize:
		g.screen.Sync()
		g.world.Resize(g.screen.Size())
	}
	return true
}

// Start begins or restarts the track from zero
func (g *Game) Start() {
	if g.player != nil {
		if err := g.player.Play(); err != nil {
			g.log.Error("track playback failed, continuing silently", zap.Error(err))
			g.player = nil
		}
	}
	g.clock.Resume()
	g.world.Reset()
	g.score.reset()
	g.conductor.StartTrack(g.schedule)
	g.state = StatePlaying
}

// Reload swaps the schedule without restarting the track
func (g *Game) Reload(s *beat.Schedule) {
	if s == nil {
		return
	}
	g.schedule = s
	g.conductor.Reload(s)
}

func (g *Game) step(delta time.Duration) {
	g.frame = g.conductor.Update(delta)
	g.world.Update(g.frame)

	n := g.router.DispatchAll()
	g.statEvents.Set(float64(n))

	if g.state != StatePlaying {
		return
	}
	if g.player != nil && g.frame.Frame%parameter.DriftCheckEvery == 0 {
		g.checkDrift()
	}
	if g.frame.Exhausted && (g.player == nil || g.player.Finished()) {
		g.state = StateFinished
		g.conductor.StopTrack()
	}
}

func (g *Game) checkDrift() {
	d, over := audio.Drift(g.player.Position(), g.conductor.Elapsed(), parameter.DriftWarnThreshold)
	g.reg.Floats.Get("audio.drift_ms").Set(float64(d) / float64(time.Millisecond))
	if over {
		g.log.Warn("audio drift", zap.Duration("drift", d))
	}
}

func (g *Game) draw() {
	bg := g.world.Background()
	base := tcell.StyleDefault.Background(toColor(bg))
	g.screen.Fill(' ', base)

	width, height := g.world.Size()
	for _, d := range g.world.Ink() {
		g.screen.SetContent(d.X, d.Y, '█', nil, base.Foreground(toColor(d.Color)))
	}

	enemyStyle := base.Foreground(toColor(core.Hex(parameter.EnemyColor)))
	for _, e := range g.world.Enemies() {
		g.screen.SetContent(e.X, e.Y, '◆', nil, enemyStyle)
	}

	q := g.world.Quill()
	qx, qy := q.Cell()
	quillStyle := base.Foreground(toColor(q.Color))
	r := int(q.Radius)
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			if dx*dx+dy*dy > r*r {
				continue
			}
			x, y := qx+dx, qy+dy
			if x < 0 || y < 0 || x >= width || y >= height {
				continue
			}
			ch := '·'
			if dx == 0 && dy == 0 {
				ch = '●'
			}
			g.screen.SetContent(x, y, ch, nil, quillStyle)
		}
	}

	hud := base.Foreground(toColor(core.Hex(parameter.HUDColor)))
	switch g.state {
	case StateTitle:
		drawCentered(g.screen, height/2, "inkbeat  -  space to start, esc to quit", hud)
	case StateFinished:
		drawCentered(g.screen, height/2, "track finished  -  r to restart, esc to quit", hud)
	case StatePlaying:
		line := fmt.Sprintf("beat %d  %.2fs  erased %d", g.frame.Index, g.frame.Elapsed.Seconds(), g.score.erased)
		if g.clock.IsPaused() {
			line += "  paused"
		}
		drawText(g.screen, 0, 0, line, hud)
	}

	if g.overlay {
		for i, line := range g.reg.Lines() {
			drawText(g.screen, 0, i+1, line, hud.Reverse(true))
		}
	}

	g.screen.Show()
}

// TogglePause freezes the loop clock and the track while playing
func (g *Game) TogglePause() {
	if g.state != StatePlaying {
		return
	}
	if g.clock.IsPaused() {
		g.clock.Resume()
		if g.player != nil {
			g.player.Resume()
		}
	} else {
		g.clock.Pause()
		if g.player != nil {
			g.player.Stop()
		}
	}
	g.draw()
}

// Paused reports whether the track is paused
func (g *Game) Paused() bool { return g.clock.IsPaused() }

// Score returns enemies erased this track
func (g *Game) Score() int { return g.score.erased }

// State returns the current screen
func (g *Game) State() State { return g.state }

// World exposes the simulation for inspection
func (g *Game) World() *World { return g.world }

// Step runs a single simulation tick and redraws
func (g *Game) Step(delta time.Duration) {
	g.step(delta)
	g.draw()
}

func toColor(c core.RGB) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, ch := range []rune(text) {
		s.SetContent(x+i, y, ch, nil, style)
	}
}

func drawCentered(s tcell.Screen, y int, text string, style tcell.Style) {
	width, _ := s.Size()
	x := (width - len([]rune(text))) / 2
	drawText(s, max(x, 0), y, text, style)
}
