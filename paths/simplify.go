package paths

import (
	"math"
)

// vec2linedist returns the distance from v to the line through s and e.
// When s and e coincide (a closed path) it's the distance to s.
func vec2linedist(v, s, e Vec2) float64 {
	d := e.Sub(s)
	n := d.Len()
	if n == 0 {
		return v.Dist(s)
	}
	return math.Abs(d.Cross(v.Sub(s))) / n
}

// SimplifyDP computes Douglas-Peucker persistence values for the
// vertices of a polyline. The endpoints have persistence +Inf. An
// interior vertex gets the distance at which it was split off, capped
// by the persistence of the vertex that split its parent interval, so
// that the points kept for a threshold t are always a subset of the
// points kept for any smaller threshold.
func SimplifyDP(v []Vec2) []float64 {
	d := make([]float64, len(v))
	if len(v) == 0 {
		return d
	}
	for i := range d {
		d[i] = math.Inf(-1)
	}
	d[0] = math.Inf(1)
	d[len(d)-1] = math.Inf(1)
	simplifyPath(v, d, 0, len(v)-1, math.Inf(1))
	return d
}

func simplifyPath(v []Vec2, d []float64, n1, n2 int, ceiling float64) {
	if n2-n1 <= 1 {
		return
	}
	worst := n1 + 1
	worstD := -1.0
	for i := n1 + 1; i < n2; i++ {
		dist := vec2linedist(v[i], v[n1], v[n2])
		if dist > worstD {
			worst = i
			worstD = dist
		}
	}
	d[worst] = math.Min(worstD, ceiling)
	simplifyPath(v, d, n1, worst, d[worst])
	simplifyPath(v, d, worst, n2, d[worst])
}

// Filter returns the vertices of v whose persistence is
// strictly greater than t.
func Filter(v []Vec2, d []float64, t float64) []Vec2 {
	var r []Vec2
	for i, x := range v {
		if d[i] > t {
			r = append(r, x)
		}
	}
	return r
}

// Simplify removes points from paths, with the guarantee that
// all removed points are within the given tolerance (distance)
// from the new path.
func (ps *Paths) Simplify(tol float64) {
	for i, p := range ps.P {
		if len(p.V) < 3 {
			continue
		}
		ps.P[i].V = Filter(p.V, SimplifyDP(p.V), tol)
	}
}
