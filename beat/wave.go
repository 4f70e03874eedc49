package beat

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Wave maps the elapsed fraction of a beat to an animation intensity
// Contract: continuous over [0,1], peak at the downbeat (0), trough at 0.5
type Wave func(ratio float64) float64

// Intensity evaluates w with input and output clamped to [0,1]
// A nil wave falls back to Triangle
func Intensity(w Wave, ratio float64) float64 {
	if w == nil {
		w = Triangle
	}
	if math.IsNaN(ratio) {
		ratio = 0
	}
	v := w(clamp01(ratio))
	if math.IsNaN(v) {
		return 0
	}
	return clamp01(v)
}

// Triangle decays linearly from the downbeat to the midpoint and rises toward the next beat
func Triangle(ratio float64) float64 {
	return 2 * math.Abs(0.5-ratio)
}

// Cosine is a smooth raised-cosine pulse
func Cosine(ratio float64) float64 {
	return (1 + math.Cos(2*math.Pi*ratio)) / 2
}

// SquareGate returns a hard flash that is fully on within gate of either downbeat
func SquareGate(gate float64) Wave {
	return func(ratio float64) float64 {
		if ratio <= gate || ratio >= 1-gate {
			return 1
		}
		return 0
	}
}

// DefaultSquareGate is the on-fraction of the named "square" wave
const DefaultSquareGate = 0.1

var waves = map[string]Wave{
	"triangle": Triangle,
	"cosine":   Cosine,
	"square":   SquareGate(DefaultSquareGate),
}

// WaveByName resolves a configured wave shape, case-insensitive
func WaveByName(name string) (Wave, error) {
	if w, ok := waves[strings.ToLower(strings.TrimSpace(name))]; ok {
		return w, nil
	}
	return nil, fmt.Errorf("unknown wave %q (available: %s)", name, strings.Join(WaveNames(), ", "))
}

// WaveNames lists the registered wave shapes in sorted order
func WaveNames() []string {
	names := make([]string, 0, len(waves))
	for name := range waves {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
