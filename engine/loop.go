package engine

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/inkbeat/parameter"
	"github.com/lixenwraith/inkbeat/status"
)

// Loop runs simulation steps on a fixed timestep measured against a TimeProvider
// Step receives the simulated delta; Frame runs once per wake after all steps
type Loop struct {
	Step  func(delta time.Duration)
	Frame func()

	interval time.Duration
	maxSteps int
	clock    TimeProvider
	log      *zap.Logger

	last        time.Time
	accumulator time.Duration

	stopChan chan struct{}
	stopOnce sync.Once
	running  atomic.Bool

	// Cached metric pointers
	statTicks *atomic.Int64
	statFolds *atomic.Int64
}

// NewLoop creates a loop stepping every interval
func NewLoop(interval time.Duration, clock TimeProvider, reg *status.Registry, log *zap.Logger) *Loop {
	if clock == nil {
		clock = NewMonotonicTimeProvider()
	}
	if log == nil {
		log = zap.NewNop()
	}
	if reg == nil {
		reg = status.NewRegistry()
	}
	if interval <= 0 {
		interval = time.Second / parameter.DefaultTickRate
	}
	return &Loop{
		interval:  interval,
		maxSteps:  parameter.MaxCatchUpSteps,
		clock:     clock,
		log:       log,
		last:      clock.Now(),
		stopChan:  make(chan struct{}),
		statTicks: reg.Ints.Get("engine.ticks"),
		statFolds: reg.Ints.Get("engine.backlog_folds"),
	}
}

// Interval returns the fixed step
func (l *Loop) Interval() time.Duration {
	return l.interval
}

// Advance measures time since the previous call and runs the due steps
// After maxSteps fixed steps any remaining backlog is folded into one final
// step so no track time is lost; the beat cursor catches up inside it
func (l *Loop) Advance() int {
	now := l.clock.Now()
	elapsed := now.Sub(l.last)
	l.last = now
	if elapsed > 0 {
		l.accumulator += elapsed
	}

	steps := 0
	for l.accumulator >= l.interval {
		delta := l.interval
		if steps == l.maxSteps-1 && l.accumulator >= 2*l.interval {
			// Fold remaining whole intervals into a single step
			delta = l.accumulator - l.accumulator%l.interval
			l.statFolds.Add(1)
			l.log.Debug("tick backlog folded",
				zap.Duration("backlog", delta),
				zap.Int("steps", steps+1),
			)
		}
		l.accumulator -= delta
		if l.Step != nil {
			l.Step(delta)
		}
		steps++
		l.statTicks.Add(1)
	}

	if steps > 0 && l.Frame != nil {
		l.Frame()
	}
	return steps
}

// Run drives Advance until ctx is cancelled or Stop is called
func (l *Loop) Run(ctx context.Context) error {
	if !l.running.CompareAndSwap(false, true) {
		return nil
	}
	defer l.running.Store(false)

	l.last = l.clock.Now()
	l.accumulator = 0

	wake := l.interval / 2
	if wake < parameter.LoopIdleSleep {
		wake = parameter.LoopIdleSleep
	}
	ticker := time.NewTicker(wake)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.stopChan:
			return nil
		case <-ticker.C:
			l.Advance()
		}
	}
}

// Stop ends Run; safe to call more than once
func (l *Loop) Stop() {
	l.stopOnce.Do(func() {
		close(l.stopChan)
	})
}

// Running reports whether Run is active
func (l *Loop) Running() bool {
	return l.running.Load()
}
