// Package vmath holds float64 2D vector helpers built on gonum's r2.Vec and a
// small deterministic random source shared by the simulation
package vmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Epsilon is the magnitude below which a vector or speed is treated as zero
const Epsilon = 1e-9

// Vec constructs an r2.Vec
func Vec(x, y float64) r2.Vec {
	return r2.Vec{X: x, Y: y}
}

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

// NearlyEqual reports whether a and b differ by at most tol
func NearlyEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

// --- Randomness ---

// FastRand is a xorshift64 generator, deterministic per seed
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

// Intn returns a uniform index in [0, n), 0 when n <= 0
func (r *FastRand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint64(n))
}

// Float64 returns a value in [0, 1)
func (r *FastRand) Float64() float64 {
	return float64(r.Next()>>11) / (1 << 53)
}
