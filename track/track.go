// Package track models the closed racetrack: a piecewise-linear centerline
// loop with a corridor radius, and the path-relative queries steering goals
// need (nearest point, tangent, lateral offset, arc length)
package track

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r2"

	"github.com/lixenwraith/pursuit/parameter"
	"github.com/lixenwraith/pursuit/vmath"
)

var (
	// ErrDegenerate is returned when fewer than three distinct points remain
	ErrDegenerate = errors.New("track needs at least three distinct points")

	// ErrRadius is returned for a non-positive corridor radius
	ErrRadius = errors.New("track radius must be positive")
)

// Track is an immutable closed polyline. points[0] == points[n-1]
type Track struct {
	points []r2.Vec
	dirs   []r2.Vec  // unit direction per segment
	lens   []float64 // length per segment
	cum    []float64 // arc length at segment start
	length float64
	radius float64
}

// Projection is the result of projecting a point onto the centerline
type Projection struct {
	Point    r2.Vec  // nearest centerline point
	Segment  int     // segment index holding Point
	T        float64 // parameter along the segment, [0, 1]
	Distance float64 // arc length from the start to Point
	Offset   float64 // unsigned distance from the query point to Point
}

// New builds a track from an ordered point list. The loop is closed if the
// last point differs from the first; zero-length segments are dropped
func New(points []r2.Vec, radius float64) (*Track, error) {
	if !(radius > 0) {
		return nil, fmt.Errorf("%w: %v", ErrRadius, radius)
	}

	pts := make([]r2.Vec, 0, len(points)+1)
	for _, p := range points {
		if len(pts) > 0 && vmath.Distance(pts[len(pts)-1], p) < vmath.Epsilon {
			continue
		}
		pts = append(pts, p)
	}
	if len(pts) > 1 && vmath.Distance(pts[0], pts[len(pts)-1]) < vmath.Epsilon {
		pts = pts[:len(pts)-1]
	}
	if len(pts) < 3 {
		return nil, fmt.Errorf("%w: got %d", ErrDegenerate, len(pts))
	}
	pts = append(pts, pts[0])

	n := len(pts) - 1
	t := &Track{
		points: pts,
		dirs:   make([]r2.Vec, n),
		lens:   make([]float64, n),
		cum:    make([]float64, n),
		radius: radius,
	}
	for i := 0; i < n; i++ {
		seg := r2.Sub(pts[i+1], pts[i])
		l := r2.Norm(seg)
		t.dirs[i] = r2.Scale(1/l, seg)
		t.lens[i] = l
		t.cum[i] = t.length
		t.length += l
	}
	return t, nil
}

// FromPairs builds a track from [x, y] pairs as found in configuration
func FromPairs(pairs [][2]float64, radius float64) (*Track, error) {
	pts := make([]r2.Vec, len(pairs))
	for i, p := range pairs {
		pts[i] = r2.Vec{X: p[0], Y: p[1]}
	}
	return New(pts, radius)
}

// Default returns the built-in racetrack
func Default() *Track {
	t, err := FromPairs(parameter.TrackPoints, parameter.TrackRadius)
	if err != nil {
		panic(fmt.Sprintf("default track: %v", err))
	}
	return t
}

// Segments returns the number of segments in the loop
func (t *Track) Segments() int { return len(t.dirs) }

// Length returns the total arc length of the loop
func (t *Track) Length() float64 { return t.length }

// Radius returns the corridor half-width
func (t *Track) Radius() float64 { return t.radius }

// Points returns a copy of the closed point list (first == last)
func (t *Track) Points() []r2.Vec {
	out := make([]r2.Vec, len(t.points))
	copy(out, t.points)
	return out
}

// Project finds the nearest centerline point to p. The first segment wins ties
func (t *Track) Project(p r2.Vec) Projection {
	best := Projection{Offset: math.Inf(1)}
	for i := range t.dirs {
		q, s := vmath.ClosestPointOnSegment(p, t.points[i], t.points[i+1])
		d := vmath.Distance(p, q)
		if d < best.Offset {
			best = Projection{
				Point:    q,
				Segment:  i,
				T:        s,
				Distance: t.cum[i] + s*t.lens[i],
				Offset:   d,
			}
		}
	}
	return best
}

// NearestPoint returns the centerline point closest to p
func (t *Track) NearestPoint(p r2.Vec) r2.Vec {
	return t.Project(p).Point
}

// Tangent returns the unit traversal direction at the centerline point nearest to p
func (t *Track) Tangent(p r2.Vec) r2.Vec {
	return t.dirs[t.Project(p).Segment]
}

// SignedLateralOffset returns the distance from p to the corridor edge,
// positive outside the corridor, negative inside
func (t *Track) SignedLateralOffset(p r2.Vec) float64 {
	return t.Project(p).Offset - t.radius
}

// Contains reports whether p lies within the corridor
func (t *Track) Contains(p r2.Vec) bool {
	return t.SignedLateralOffset(p) <= 0
}

// wrap maps an arc length onto [0, length)
func (t *Track) wrap(d float64) float64 {
	d = math.Mod(d, t.length)
	if d < 0 {
		d += t.length
	}
	return d
}

// segmentAt returns the segment index containing arc length d (wrapped)
func (t *Track) segmentAt(d float64) (int, float64) {
	d = t.wrap(d)
	// Segment count is small; linear scan from the end keeps ties on the later segment start
	for i := len(t.cum) - 1; i >= 0; i-- {
		if d >= t.cum[i] {
			return i, d - t.cum[i]
		}
	}
	return 0, d
}

// PointAt returns the centerline point at arc length d, wrapping around the loop
func (t *Track) PointAt(d float64) r2.Vec {
	i, along := t.segmentAt(d)
	return r2.Add(t.points[i], r2.Scale(along, t.dirs[i]))
}

// TangentAt returns the traversal direction at arc length d
func (t *Track) TangentAt(d float64) r2.Vec {
	i, _ := t.segmentAt(d)
	return t.dirs[i]
}

// Advance returns the forward arc distance from arc length from to arc length to
func (t *Track) Advance(from, to float64) float64 {
	return t.wrap(to - from)
}

// Bounds returns the axis-aligned box of the corridor
func (t *Track) Bounds() (min, max r2.Vec) {
	min = r2.Vec{X: math.Inf(1), Y: math.Inf(1)}
	max = r2.Vec{X: math.Inf(-1), Y: math.Inf(-1)}
	for _, p := range t.points {
		min.X = math.Min(min.X, p.X-t.radius)
		min.Y = math.Min(min.Y, p.Y-t.radius)
		max.X = math.Max(max.X, p.X+t.radius)
		max.Y = math.Max(max.Y, p.Y+t.radius)
	}
	return min, max
}
