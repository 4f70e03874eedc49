package vmath

import "math/bits"

// Q32.32 fixed point constants
const (
	Shift = 32
	Scale = 1 << Shift
	Mask  = Scale - 1
	Half  = 1 << (Shift - 1)
)

// --- Arithmetic ---

func FromInt(i int) int64       { return int64(i) << Shift }
func ToInt(f int64) int         { return int(f >> Shift) }
func FromFloat(f float64) int64 { return int64(f * Scale) }
func ToFloat(f int64) float64   { return float64(f) / Scale }

// Round returns the nearest integer cell
func Round(f int64) int { return int((f + Half) >> Shift) }

// Mul multiplies with a 128-bit intermediate, truncating toward zero
func Mul(a, b int64) int64 {
	if a == 0 || b == 0 {
		return 0
	}
	hi, lo := bits.Mul64(uint64(Abs(a)), uint64(Abs(b)))
	// Q64.64 product back to Q32.32
	r := int64(hi<<Shift | lo>>Shift)
	if (a < 0) != (b < 0) {
		return -r
	}
	return r
}

// Abs returns absolute value
func Abs(x int64) int64 {
	if x < 0 {
		return -x
	}
	return x
}

// Lerp moves a toward b by t (Q32.32, 0..Scale)
func Lerp(a, b, t int64) int64 {
	return a + Mul(b-a, t)
}

// Clamp bounds x to [lo, hi]
func Clamp(x, lo, hi int64) int64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// DistSq returns squared distance between two points in Q32.32
func DistSq(ax, ay, bx, by int64) int64 {
	dx, dy := ax-bx, ay-by
	return Mul(dx, dx) + Mul(dy, dy)
}

// --- Randomness ---

// FastRand is a xorshift64 generator for spawn placement
type FastRand struct {
	state uint64
}

func NewFastRand(seed uint64) *FastRand {
	if seed == 0 {
		seed = 1
	}
	return &FastRand{state: seed}
}

func (r *FastRand) Next() uint64 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}
