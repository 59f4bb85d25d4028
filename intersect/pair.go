package intersect

import (
	"sort"

	"github.com/paulhankin/optosketch/descriptor"
	"github.com/paulhankin/optosketch/paths"
)

// PairIntersection holds the crossings between two polylines. In
// each Crossing, LA is along A and LB along B.
type PairIntersection struct {
	A, B      *descriptor.Descriptor
	Crossings []Crossing
}

// Pair finds every crossing between the segments of a and those of b.
func Pair(a, b *descriptor.Descriptor) *PairIntersection {
	pi := &PairIntersection{A: a, B: b}
	na, nb := len(a.V)-1, len(b.V)-1
	if bboxIntersecting(a, b, 0, na, 0, nb) {
		pi.cross(0, na, 0, nb)
	}
	return pi
}

func (pi *PairIntersection) cross(n1, p1, n2, p2 int) {
	if p1-n1 == 1 && p2-n2 == 1 {
		a, b := pi.A, pi.B
		x, alpha, beta, ok := crossing(a.V[n1], a.V[p1], b.V[n2], b.V[p2])
		if !ok {
			return
		}
		pi.Crossings = append(pi.Crossings, Crossing{
			P:  x,
			LA: clampLength(a, a.CumLength[n1]+alpha),
			LB: clampLength(b, b.CumLength[n2]+beta),
		})
		return
	}
	if p1-n1 > p2-n2 {
		q := (n1 + p1) / 2
		for _, r := range [2][2]int{{n1, q}, {q, p1}} {
			if bboxIntersecting(pi.A, pi.B, r[0], r[1], n2, p2) {
				pi.cross(r[0], r[1], n2, p2)
			}
		}
		return
	}
	q := (n2 + p2) / 2
	for _, r := range [2][2]int{{n2, q}, {q, p2}} {
		if bboxIntersecting(pi.A, pi.B, n1, p1, r[0], r[1]) {
			pi.cross(n1, p1, r[0], r[1])
		}
	}
}

// Len returns the number of crossings.
func (pi *PairIntersection) Len() int {
	return len(pi.Crossings)
}

// offsets returns the sorted crossing lengths along one polyline.
func (pi *PairIntersection) offsets(onA bool) []float64 {
	ls := make([]float64, len(pi.Crossings))
	for i, c := range pi.Crossings {
		if onA {
			ls[i] = c.LA
		} else {
			ls[i] = c.LB
		}
	}
	sort.Float64s(ls)
	return ls
}

func cut(d *descriptor.Descriptor, ls []float64) [][2]float64 {
	r := make([][2]float64, 0, len(ls)+1)
	prev := 0.0
	for _, l := range ls {
		r = append(r, [2]float64{prev, l})
		prev = l
	}
	return append(r, [2]float64{prev, d.Length})
}

// PartsA returns the arc length intervals that the crossings cut A
// into, in order along A. There is always one more part than there
// are crossings.
func (pi *PairIntersection) PartsA() [][2]float64 {
	return cut(pi.A, pi.offsets(true))
}

// PartsB is PartsA for B.
func (pi *PairIntersection) PartsB() [][2]float64 {
	return cut(pi.B, pi.offsets(false))
}

// PartA returns the polyline of the k'th part of A.
func (pi *PairIntersection) PartA(k int) []paths.Vec2 {
	p := pi.PartsA()[k]
	return pi.A.Extract(p[0], p[1])
}

// PartB returns the polyline of the k'th part of B.
func (pi *PairIntersection) PartB(k int) []paths.Vec2 {
	p := pi.PartsB()[k]
	return pi.B.Extract(p[0], p[1])
}
