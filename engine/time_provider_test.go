package engine

import (
	"testing"
	"time"
)

func TestMonotonicTimeProvider(t *testing.T) {
	provider := NewMonotonicTimeProvider()

	t1 := provider.Now()
	time.Sleep(5 * time.Millisecond)
	t2 := provider.Now()

	if diff := t2.Sub(t1); diff < 5*time.Millisecond {
		t.Errorf("Expected at least 5ms difference, got %v", diff)
	}
}

func TestMockTimeProvider(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	mock := NewMockTimeProvider(start)

	if !mock.Now().Equal(start) {
		t.Errorf("Expected initial time %v, got %v", start, mock.Now())
	}

	mock.Advance(16 * time.Millisecond)
	mock.Advance(4 * time.Millisecond)
	if got := mock.Now().Sub(start); got != 20*time.Millisecond {
		t.Errorf("Expected 20ms advance, got %v", got)
	}

	if got := mock.Advance(-time.Second); got.Sub(start) != 20*time.Millisecond {
		t.Errorf("Expected negative advance ignored, got %v", got.Sub(start))
	}
}

func TestTimeProviderInterface(t *testing.T) {
	var _ TimeProvider = &MonotonicTimeProvider{}
	var _ TimeProvider = &MockTimeProvider{}
}
