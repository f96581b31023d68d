package vmath

import (
	"math"
)

// Tau is one full turn in radians
const Tau = 2 * math.Pi

// Clamp limits v to [lo, hi]
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Lerp interpolates between a and b by t
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Range is a closed float interval
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Contains reports whether v lies inside the closed interval
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Box is an axis-aligned 3D region, one Range per axis
type Box struct {
	X Range `yaml:"x"`
	Y Range `yaml:"y"`
	Z Range `yaml:"z"`
}

// Contains reports whether p lies inside the box, bounds inclusive
func (b Box) Contains(p Vec3F) bool {
	return b.X.Contains(p.X) && b.Y.Contains(p.Y) && b.Z.Contains(p.Z)
}

// --- Randomness ---

// FastRand is a seedable xorshift64 generator
// Not safe for concurrent use, each owner keeps its own instance
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

// Float64 returns a uniform value in [0, 1) from the top 53 bits
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) * (1.0 / (1 << 53))
}

// InRange returns a uniform value in [lo, hi)
func (r *FastRand) InRange(lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

// Intn returns a uniform index in [0, n), 0 when n <= 0
func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	i := int(r.Float64() * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
