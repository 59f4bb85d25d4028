package optics

import (
	"sort"

	"github.com/paulhankin/optosketch/paths"
)

// Reach is how far a ray is drawn past the last lens in each direction.
const Reach = 200

// Trace computes the path of a ray through base with direction unit,
// refracted by each lens it meets. The ray is followed both ways from
// base, and the result runs from the left end to the right end,
// through the lens crossings. Base itself is not a vertex, so with no
// lenses the ray is a single segment. A vertical ray meets no lens.
func Trace(base, unit paths.Vec2, lenses []*Lens) []paths.Vec2 {
	ls := make([]*Lens, len(lenses))
	copy(ls, lenses)
	sort.SliceStable(ls, func(i, j int) bool { return ls[i].X < ls[j].X })

	v, ok := unit.Unit()
	if !ok {
		return []paths.Vec2{base, base}
	}
	if v[0] < 0 {
		v = v.Scale(-1)
	}
	if v[0] == 0 {
		return []paths.Vec2{base.Sub(v.Scale(Reach)), base.Add(v.Scale(Reach))}
	}

	// Lenses at or right of the base refract the rightward ray.
	first := sort.Search(len(ls), func(i int) bool { return ls[i].X >= base[0] })

	var right []paths.Vec2
	p, d := base, v
	for _, l := range ls[first:] {
		p, d = transmit(p, d, l, 1)
		right = append(right, p)
	}
	right = append(right, p.Add(d.Scale(Reach)))

	var left []paths.Vec2
	p, d = base, v
	for i := first - 1; i >= 0; i-- {
		p, d = transmit(p, d, ls[i], -1)
		left = append(left, p)
	}
	left = append(left, p.Sub(d.Scale(Reach)))

	r := make([]paths.Vec2, 0, len(left)+len(right))
	for i := len(left) - 1; i >= 0; i-- {
		r = append(r, left[i])
	}
	return append(r, right...)
}

// transmit carries a ray from p along d (d[0] > 0) to the plane of
// lens l, and returns the point where it meets the lens and its new
// direction, still pointing right. The thin lens bends the slope by
// the height above the lens center over the focal length; sense is
// +1 when the light travels rightwards and -1 when it's being traced
// back leftwards.
func transmit(p, d paths.Vec2, l *Lens, sense float64) (paths.Vec2, paths.Vec2) {
	slope := d[1] / d[0]
	h := p[1] + (l.X-p[0])*slope
	nd, _ := paths.Vec2{1, -sense*(h-l.Y())/l.Focal + slope}.Unit()
	return paths.Vec2{l.X, h}, nd
}
