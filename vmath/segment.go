package vmath

import "gonum.org/v1/gonum/spatial/r2"

// ClosestPointOnSegment returns the point of segment ab nearest to p and its
// parameter t in [0, 1]; degenerate segments return a with t = 0
func ClosestPointOnSegment(p, a, b r2.Vec) (r2.Vec, float64) {
	ab := r2.Sub(b, a)
	lenSq := r2.Norm2(ab)
	if lenSq < Epsilon {
		return a, 0
	}
	t := Clamp(r2.Dot(r2.Sub(p, a), ab)/lenSq, 0, 1)
	return r2.Add(a, r2.Scale(t, ab)), t
}

// ClosestApproach returns the time t >= 0 at which two points moving with
// constant relative position d and relative velocity u are nearest, and the
// separation vector at that time; stationary pairs return t = 0
func ClosestApproach(d, u r2.Vec) (float64, r2.Vec) {
	uu := r2.Norm2(u)
	if uu < Epsilon {
		return 0, d
	}
	t := -r2.Dot(d, u) / uu
	if t < 0 {
		t = 0
	}
	return t, r2.Add(d, r2.Scale(t, u))
}
