package paths

import "math"

// Vec2 is a 2-dimensional vector.
type Vec2 [2]float64

func (a Vec2) Add(b Vec2) Vec2 {
	return Vec2{a[0] + b[0], a[1] + b[1]}
}

func (a Vec2) Sub(b Vec2) Vec2 {
	return Vec2{a[0] - b[0], a[1] - b[1]}
}

func (a Vec2) Scale(s float64) Vec2 {
	return Vec2{a[0] * s, a[1] * s}
}

func (a Vec2) Dot(b Vec2) float64 {
	return a[0]*b[0] + a[1]*b[1]
}

// Cross returns the z component of the 3d cross product of a and b.
// It's positive when b is counter-clockwise from a.
func (a Vec2) Cross(b Vec2) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// Len returns the euclidean length of a.
func (a Vec2) Len() float64 {
	return math.Hypot(a[0], a[1])
}

// Dist returns the euclidean distance between a and b.
func (a Vec2) Dist(b Vec2) float64 {
	return math.Hypot(a[0]-b[0], a[1]-b[1])
}

// Lerp returns a*(1-s) + b*s.
func (a Vec2) Lerp(b Vec2, s float64) Vec2 {
	return Vec2{a[0]*(1-s) + b[0]*s, a[1]*(1-s) + b[1]*s}
}

// Unit returns a scaled to length 1. The zero vector is returned
// unchanged, with ok false.
func (a Vec2) Unit() (u Vec2, ok bool) {
	l := a.Len()
	if l == 0 {
		return a, false
	}
	return Vec2{a[0] / l, a[1] / l}, true
}

// SegmentDist returns the distance from v to the closed segment s-e.
func SegmentDist(v, s, e Vec2) float64 {
	d := e.Sub(s)
	l2 := d.Dot(d)
	if l2 == 0 {
		return v.Dist(s)
	}
	t := v.Sub(s).Dot(d) / l2
	t = math.Max(0, math.Min(1, t))
	return v.Dist(s.Add(d.Scale(t)))
}
