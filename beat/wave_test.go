package beat

import (
	"math"
	"testing"
)

func TestWavePeakAndTrough(t *testing.T) {
	for _, name := range WaveNames() {
		w, err := WaveByName(name)
		if err != nil {
			t.Fatalf("Expected wave %q to resolve: %v", name, err)
		}
		if v := Intensity(w, 0); v != 1 {
			t.Errorf("%s: Expected 1 at downbeat, got %f", name, v)
		}
		if v := Intensity(w, 0.5); v != 0 {
			t.Errorf("%s: Expected 0 at midpoint, got %f", name, v)
		}
	}
}

func TestWaveNonIncreasingToMidpoint(t *testing.T) {
	for _, name := range WaveNames() {
		w, _ := WaveByName(name)
		prev := Intensity(w, 0)
		for i := 1; i <= 500; i++ {
			v := Intensity(w, float64(i)/1000)
			if v > prev+1e-12 {
				t.Fatalf("%s: intensity rose from %f to %f at ratio %f", name, prev, v, float64(i)/1000)
			}
			prev = v
		}
	}
}

func TestTriangleSymmetric(t *testing.T) {
	for _, r := range []float64{0.1, 0.2, 0.33, 0.45} {
		a, b := Intensity(Triangle, r), Intensity(Triangle, 1-r)
		if math.Abs(a-b) > 1e-9 {
			t.Errorf("Expected symmetry at %f: %f vs %f", r, a, b)
		}
	}
}

func TestIntensityClamps(t *testing.T) {
	wild := Wave(func(r float64) float64 { return r*10 - 3 })

	tests := []struct {
		ratio float64
		want  float64
	}{
		{-5, 0},     // ratio clamped to 0 -> -3 -> 0
		{0.2, 0},    // -1 -> 0
		{0.35, 0.5}, // 0.5
		{2, 1},      // ratio clamped to 1 -> 7 -> 1
		{math.NaN(), 0},
	}
	for _, tt := range tests {
		if got := Intensity(wild, tt.ratio); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Intensity(%f): Expected %f, got %f", tt.ratio, tt.want, got)
		}
	}

	if got := Intensity(nil, 0); got != 1 {
		t.Errorf("Expected nil wave to fall back to triangle, got %f", got)
	}
}

func TestWaveByNameUnknown(t *testing.T) {
	if _, err := WaveByName("sawtooth"); err == nil {
		t.Error("Expected error for unknown wave")
	}
	if _, err := WaveByName(" Cosine "); err != nil {
		t.Errorf("Expected case-insensitive lookup, got %v", err)
	}
}
