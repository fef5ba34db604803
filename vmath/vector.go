package vmath

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// Normalize returns the unit vector of v, zero-safe
func Normalize(v r2.Vec) r2.Vec {
	mag := r2.Norm(v)
	if mag < Epsilon {
		return r2.Vec{}
	}
	return r2.Scale(1/mag, v)
}

// IsZero reports whether v is shorter than Epsilon
func IsZero(v r2.Vec) bool {
	return r2.Norm2(v) < Epsilon*Epsilon
}

// ClampMagnitude limits v to maxMag while preserving direction
// Returns unchanged vector if magnitude <= maxMag
func ClampMagnitude(v r2.Vec, maxMag float64) r2.Vec {
	if maxMag <= 0 {
		return r2.Vec{}
	}
	mag := r2.Norm(v)
	if mag <= maxMag || mag == 0 {
		return v
	}
	return r2.Scale(maxMag/mag, v)
}

// Perpendicular returns v rotated 90° counter-clockwise
func Perpendicular(v r2.Vec) r2.Vec {
	return r2.Vec{X: -v.Y, Y: v.X}
}

// Reject removes the component of v along unit axis
func Reject(v, axis r2.Vec) r2.Vec {
	return r2.Sub(v, r2.Scale(r2.Dot(v, axis), axis))
}

// FromAngle returns the unit vector pointing at angle radians
func FromAngle(angle float64) r2.Vec {
	s, c := math.Sincos(angle)
	return r2.Vec{X: c, Y: s}
}

// Angle returns the heading of v in radians, (-π, π]
func Angle(v r2.Vec) float64 {
	return math.Atan2(v.Y, v.X)
}

// Distance returns |a - b|
func Distance(a, b r2.Vec) float64 {
	return r2.Norm(r2.Sub(a, b))
}
