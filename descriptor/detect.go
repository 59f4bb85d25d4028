package descriptor

import (
	"math"

	"github.com/paulhankin/optosketch/paths"
)

// Orientation classifies the direction of a straight line.
type Orientation int

const (
	Unclassified Orientation = iota
	Horizontal
	Vertical
	Diagonal
)

func (o Orientation) String() string {
	switch o {
	case Horizontal:
		return "horizontal"
	case Vertical:
		return "vertical"
	case Diagonal:
		return "diagonal"
	}
	return "unclassified"
}

// Point reports whether the stroke is a dot: either small, or
// scribbled over on itself. Its location is the vertex mean.
// The test is not scale independent.
func (d *Descriptor) Point() (paths.Vec2, bool) {
	if d.Length == 0 {
		return d.Center, true
	}
	value := math.Max(d.Span[0], d.Span[1]) * (d.Span[0] + d.Span[1]) / 2 / d.Length
	return d.Center, value <= d.P.PointMax
}

// StraightLine reports whether the stroke, once simplified, is not
// much longer than the distance between its ends, and if so how it
// is oriented. A straight line in none of the orientation bands is
// still straight, and Unclassified.
func (d *Descriptor) StraightLine() (Orientation, bool) {
	s := d.Simplified(d.P.StraightTolerance)
	a, b := s[0], s[len(s)-1]
	e := a.Dist(b)
	if e == 0 {
		return Unclassified, false
	}
	if (paths.Path{V: s}).Length()/e >= d.P.StraightRatio {
		return Unclassified, false
	}
	return d.orientation(b.Sub(a)), true
}

func (d *Descriptor) orientation(v paths.Vec2) Orientation {
	dx, dy := math.Abs(v[0]), math.Abs(v[1])
	switch {
	case dx < d.P.AxisRatio*dy:
		return Vertical
	case dy < d.P.AxisRatio*dx:
		return Horizontal
	case dy > 0 && dx/dy > d.P.DiagonalMin && dx/dy < d.P.DiagonalMax:
		return Diagonal
	}
	return Unclassified
}

// Closed reports whether either end of the stroke comes back near
// the stretch of stroke at the other end. Distances are measured in
// percent of the minor principal span.
func (d *Descriptor) Closed() bool {
	minor := math.Min(d.Span[0], d.Span[1])
	if minor == 0 || d.Length == 0 {
		return false
	}
	f := d.P.ClosedFraction * d.Length
	head := d.Extract(0, f)
	tail := d.Extract(d.Length-f, d.Length)
	rs := 100 * polylineDist(d.V[0], tail) / minor
	re := 100 * polylineDist(d.V[len(d.V)-1], head) / minor
	return math.Min(rs, re) < d.P.ClosedRatio
}

func polylineDist(v paths.Vec2, p []paths.Vec2) float64 {
	best := v.Dist(p[0])
	for i := 1; i < len(p); i++ {
		best = math.Min(best, paths.SegmentDist(v, p[i-1], p[i]))
	}
	return best
}
