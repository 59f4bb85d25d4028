// Package paths provides 2d polylines, their bounds, simplification,
// clipping and SVG input/output. It is the geometry layer shared by
// the stroke descriptors and the diagram renderers.
package paths

import "math"

// A Path is a contiguous series of line segments, from the
// first point in the V slice to the last.
type Path struct {
	V []Vec2
}

// Length returns the sum of the segment lengths of the path.
func (p Path) Length() float64 {
	l := 0.0
	for i := 1; i < len(p.V); i++ {
		l += p.V[i].Dist(p.V[i-1])
	}
	return l
}

// Bounds returns the tight bounds of the path's vertices.
func (p Path) Bounds() Bounds {
	return BoundsOf(p.V)
}

// Bounds describes an axis-aligned bounding box.
type Bounds struct {
	Min, Max Vec2
}

// BoundsOf returns the smallest bounds containing all of v.
// The bounds of no points are empty (Min > Max).
func BoundsOf(v []Vec2) Bounds {
	inf := math.Inf(1)
	b := Bounds{Min: Vec2{inf, inf}, Max: Vec2{-inf, -inf}}
	for _, x := range v {
		b.Min[0] = math.Min(b.Min[0], x[0])
		b.Min[1] = math.Min(b.Min[1], x[1])
		b.Max[0] = math.Max(b.Max[0], x[0])
		b.Max[1] = math.Max(b.Max[1], x[1])
	}
	return b
}

// Empty reports whether the bounds contain no points at all.
func (b Bounds) Empty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1]
}

// Size returns the width and height of the bounds.
func (b Bounds) Size() Vec2 {
	return b.Max.Sub(b.Min)
}

// Center returns the middle of the bounds.
func (b Bounds) Center() Vec2 {
	return b.Min.Lerp(b.Max, 0.5)
}

// Intersect returns the overlap of two bounds, and whether
// they overlap at all. Bounds that only touch overlap in a
// degenerate (zero width or height) box.
func (b Bounds) Intersect(o Bounds) (Bounds, bool) {
	r := Bounds{
		Min: Vec2{math.Max(b.Min[0], o.Min[0]), math.Max(b.Min[1], o.Min[1])},
		Max: Vec2{math.Min(b.Max[0], o.Max[0]), math.Min(b.Max[1], o.Max[1])},
	}
	if r.Empty() {
		return Bounds{}, false
	}
	return r, true
}

// Union returns the smallest bounds containing both b and o.
func (b Bounds) Union(o Bounds) Bounds {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}
	return Bounds{
		Min: Vec2{math.Min(b.Min[0], o.Min[0]), math.Min(b.Min[1], o.Min[1])},
		Max: Vec2{math.Max(b.Max[0], o.Max[0]), math.Max(b.Max[1], o.Max[1])},
	}
}

// Inset grows (d > 0) or shrinks (d < 0) the bounds on every side.
func (b Bounds) Inset(d float64) Bounds {
	return Bounds{Min: b.Min.Sub(Vec2{d, d}), Max: b.Max.Add(Vec2{d, d})}
}

// Paths is a set of paths, along with a view bounds.
type Paths struct {
	Bounds Bounds
	P      []Path
}

// TightenBounds adjusts the bounds to exactly contain the paths.
// If there are no paths, the bounds are set to zero.
func (ps *Paths) TightenBounds() {
	b := BoundsOf(nil)
	for _, p := range ps.P {
		b = b.Union(p.Bounds())
	}
	if b.Empty() {
		ps.Bounds = Bounds{}
		return
	}
	ps.Bounds = b
}

// Translate moves all the paths by the given amount.
func (ps *Paths) Translate(dx Vec2) {
	b := ps.Bounds
	nb := Bounds{
		Min: b.Min.Add(dx),
		Max: b.Max.Add(dx),
	}
	ps.Transform(nb)
}

// Transform resizes all paths so that the rectangle forming the
// current bounds is the size of the new bounds. The bounds
// are also updated to the new bounds.
func (ps *Paths) Transform(nb Bounds) {
	ob := ps.Bounds
	for _, p := range ps.P {
		for i, v := range p.V {
			x, y := v[0], v[1]
			x -= ob.Min[0]
			x /= ob.Max[0] - ob.Min[0]
			x *= nb.Max[0] - nb.Min[0]
			x += nb.Min[0]

			y -= ob.Min[1]
			y /= ob.Max[1] - ob.Min[1]
			y *= nb.Max[1] - nb.Min[1]
			y += nb.Min[1]
			p.V[i] = Vec2{x, y}
		}
	}
	ps.Bounds = nb
}

// move adds a new (initially empty) path starting at x,
// unless the last path already ends at x.
func (ps *Paths) move(x Vec2) {
	if len(ps.P) == 0 {
		ps.P = append(ps.P, Path{V: []Vec2{x}})
		return
	}
	p := &ps.P[len(ps.P)-1]
	if len(p.V) > 0 && p.V[len(p.V)-1] == x {
		return
	}
	ps.P = append(ps.P, Path{V: []Vec2{x}})
}

// line extends the last path with an edge that goes to x.
func (ps *Paths) line(x Vec2) {
	p := &ps.P[len(ps.P)-1]
	p.V = append(p.V, x)
}
