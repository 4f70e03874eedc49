package engine

import (
	"context"
	"testing"
	"time"

	"github.com/lixenwraith/inkbeat/status"
)

func newTestLoop(interval time.Duration) (*Loop, *MockTimeProvider, *[]time.Duration) {
	mock := NewMockTimeProvider(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	l := NewLoop(interval, mock, status.NewRegistry(), nil)
	var deltas []time.Duration
	l.Step = func(d time.Duration) { deltas = append(deltas, d) }
	return l, mock, &deltas
}

func TestLoopFixedSteps(t *testing.T) {
	l, mock, deltas := newTestLoop(10 * time.Millisecond)

	mock.Advance(35 * time.Millisecond)
	if n := l.Advance(); n != 3 {
		t.Errorf("Expected 3 steps, got %d", n)
	}
	for _, d := range *deltas {
		if d != 10*time.Millisecond {
			t.Errorf("Expected 10ms step, got %v", d)
		}
	}

	// Remainder carries into the next wake
	mock.Advance(5 * time.Millisecond)
	if n := l.Advance(); n != 1 {
		t.Errorf("Expected carried remainder to complete a step, got %d", n)
	}
}

func TestLoopNoStepBeforeInterval(t *testing.T) {
	l, mock, deltas := newTestLoop(10 * time.Millisecond)
	frames := 0
	l.Frame = func() { frames++ }

	mock.Advance(9 * time.Millisecond)
	l.Advance()
	if len(*deltas) != 0 || frames != 0 {
		t.Errorf("Expected no step or frame, got %d steps %d frames", len(*deltas), frames)
	}
}

func TestLoopFoldsBacklogWithoutLosingTime(t *testing.T) {
	l, mock, deltas := newTestLoop(10 * time.Millisecond)
	frames := 0
	l.Frame = func() { frames++ }

	mock.Advance(2*time.Second + 3*time.Millisecond)
	n := l.Advance()

	if n != l.maxSteps {
		t.Errorf("Expected %d steps, got %d", l.maxSteps, n)
	}
	var total time.Duration
	for _, d := range *deltas {
		total += d
	}
	if total != 2*time.Second {
		t.Errorf("Expected 2s simulated, got %v", total)
	}
	if frames != 1 {
		t.Errorf("Expected one frame per wake, got %d", frames)
	}
	if l.statFolds.Load() != 1 {
		t.Errorf("Expected one fold recorded, got %d", l.statFolds.Load())
	}
}

func TestLoopRunStops(t *testing.T) {
	l := NewLoop(time.Millisecond, nil, nil, nil)
	done := make(chan error, 1)
	go func() { done <- l.Run(context.Background()) }()

	time.Sleep(10 * time.Millisecond)
	l.Stop()
	l.Stop()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Expected nil error on Stop, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after Stop")
	}
}

func TestLoopRunContextCancel(t *testing.T) {
	l := NewLoop(time.Millisecond, nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	steps := 0
	l.Step = func(time.Duration) { steps++ }

	done := make(chan error, 1)
	go func() { done <- l.Run(ctx) }()
	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Expected context.Canceled, got %v", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
	if steps == 0 {
		t.Error("Expected steps while running")
	}
}
