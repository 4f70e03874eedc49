package status

import (
	"sync"
	"testing"
)

func TestMetricMapReturnsCachedPointer(t *testing.T) {
	r := NewRegistry()
	a := r.Ints.Get("beat.index")
	b := r.Ints.Get("beat.index")
	if a != b {
		t.Error("Expected the same pointer for repeated Get")
	}
	a.Store(7)
	if b.Load() != 7 {
		t.Errorf("Expected 7, got %d", b.Load())
	}
}

func TestRegistryLinesSorted(t *testing.T) {
	r := NewRegistry()
	r.Floats.Get("beat.intensity").Set(0.5)
	r.Ints.Get("beat.index").Store(3)
	r.Bools.Get("beat.exhausted").Store(true)

	lines := r.Lines()
	want := []string{"beat.exhausted: true", "beat.index: 3", "beat.intensity: 0.500"}
	if len(lines) != len(want) {
		t.Fatalf("Expected %d lines, got %d: %v", len(want), len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("Expected %q at %d, got %q", want[i], i, lines[i])
		}
	}
	if r.TotalCount() != 3 {
		t.Errorf("Expected 3 metrics, got %d", r.TotalCount())
	}
}

func TestMetricMapConcurrentGet(t *testing.T) {
	m := NewMetricMap[AtomicFloat]()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.Get("shared").Set(1)
		}()
	}
	wg.Wait()
	if m.Count() != 1 {
		t.Errorf("Expected a single metric, got %d", m.Count())
	}
}
