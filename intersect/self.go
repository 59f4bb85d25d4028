package intersect

import (
	"math"
	"sort"

	"github.com/paulhankin/optosketch/descriptor"
	"github.com/paulhankin/optosketch/paths"
)

// A Crossing is a point where two pieces of polyline cross. LA and
// LB are its arc lengths along the first and second polyline; for
// self-intersection both are on the same stroke and LA <= LB.
type Crossing struct {
	P      paths.Vec2
	LA, LB float64
}

// A Part is the stretch of a stroke between two consecutive
// crossing locations, or a stroke end. FromX and ToX index the
// crossing at each end, -1 for the stroke ends.
type Part struct {
	From, To   float64
	FromX, ToX int
}

// SelfIntersection holds the crossings of a stroke with itself.
type SelfIntersection struct {
	D         *descriptor.Descriptor
	Crossings []Crossing
	parts     []Part
}

// Self finds every crossing between non-adjacent segments of d.
func Self(d *descriptor.Descriptor) *SelfIntersection {
	s := &SelfIntersection{D: d}
	s.search(0, len(d.V)-1)
	s.parts = s.partition()
	return s
}

// search finds the crossings among vertices n..p.
func (s *SelfIntersection) search(n, p int) {
	if p-n <= 1 {
		return
	}
	q := (n + p) / 2
	s.search(n, q)
	s.search(q, p)
	if bboxIntersecting(s.D, s.D, n, q, q, p) {
		s.cross(n, q, q, p)
	}
}

// cross finds crossings between the ranges n1..p1 and n2..p2, where
// n2 >= p1, by halving the longer range.
func (s *SelfIntersection) cross(n1, p1, n2, p2 int) {
	if p1-n1 == 1 && p2-n2 == 1 {
		if p1 == n2 {
			return
		}
		v := s.D.V
		x, alpha, beta, ok := crossing(v[n1], v[p1], v[n2], v[p2])
		if !ok {
			return
		}
		s.Crossings = append(s.Crossings, Crossing{
			P:  x,
			LA: clampLength(s.D, s.D.CumLength[n1]+alpha),
			LB: clampLength(s.D, s.D.CumLength[n2]+beta),
		})
		return
	}
	if p1-n1 > p2-n2 {
		q := (n1 + p1) / 2
		for _, r := range [2][2]int{{n1, q}, {q, p1}} {
			if bboxIntersecting(s.D, s.D, r[0], r[1], n2, p2) {
				s.cross(r[0], r[1], n2, p2)
			}
		}
		return
	}
	q := (n2 + p2) / 2
	for _, r := range [2][2]int{{n2, q}, {q, p2}} {
		if bboxIntersecting(s.D, s.D, n1, p1, r[0], r[1]) {
			s.cross(n1, p1, r[0], r[1])
		}
	}
}

// bboxIntersecting reports whether the vertex ranges n1..p1 of a and
// n2..p2 of b have overlapping bounds. Neighbouring ranges of one
// stroke always share a vertex; they only count when the overlap has
// some area.
func bboxIntersecting(a, b *descriptor.Descriptor, n1, p1, n2, p2 int) bool {
	r, ok := a.IndexBounds(n1, p1).Intersect(b.IndexBounds(n2, p2))
	if !ok {
		return false
	}
	if a == b && (p1 == n2 || n1 == p2) {
		sz := r.Size()
		return sz[0] > 0 && sz[1] > 0
	}
	return true
}

func clampLength(d *descriptor.Descriptor, l float64) float64 {
	return math.Max(0, math.Min(l, d.Length))
}

type boundary struct {
	l float64
	x int
}

// partition cuts the stroke at every crossing location.
func (s *SelfIntersection) partition() []Part {
	var bs []boundary
	for k, c := range s.Crossings {
		bs = append(bs, boundary{c.LA, k}, boundary{c.LB, k})
	}
	sort.SliceStable(bs, func(i, j int) bool { return bs[i].l < bs[j].l })
	bs = append([]boundary{{0, -1}}, bs...)
	bs = append(bs, boundary{s.D.Length, -1})

	parts := make([]Part, len(bs)-1)
	for i := range parts {
		parts[i] = Part{
			From: bs[i].l, FromX: bs[i].x,
			To: bs[i+1].l, ToX: bs[i+1].x,
		}
	}
	return parts
}

// Parts returns the 2n+1 parts of a stroke with n crossings, in
// order along the stroke.
func (s *SelfIntersection) Parts() []Part {
	return s.parts
}

// Part returns the polyline of the k'th part.
func (s *SelfIntersection) Part(k int) []paths.Vec2 {
	p := s.parts[k]
	return s.D.Extract(p.From, p.To)
}

// Loops returns the arc length intervals of the loops closed by the
// crossings, scanning along the stroke and keeping the first loop
// found at each place so that no two loops overlap. A stroke end
// drawn onto a crossing closes a loop there as well.
func (s *SelfIntersection) Loops() [][2]float64 {
	tol := 1e-9 * math.Max(s.D.Length, 1)
	parts := make([]Part, len(s.parts))
	copy(parts, s.parts)
	if len(s.Crossings) > 0 {
		first, last := &parts[0], &parts[len(parts)-1]
		first.FromX = s.landsOn(s.D.V[0], tol)
		last.ToX = s.landsOn(s.D.V[len(s.D.V)-1], tol)
	}

	var loops [][2]float64
	start := 0
	for p, right := range parts {
		if right.ToX < 0 {
			continue
		}
		if right.FromX == right.ToX {
			if right.To-right.From > tol {
				loops = append(loops, [2]float64{right.From, right.To})
				start = p + 1
			}
			continue
		}
		for _, left := range parts[start:p] {
			if left.FromX == right.ToX {
				loops = append(loops, [2]float64{left.From, right.To})
				start = p + 1
				break
			}
		}
	}
	return loops
}

// landsOn returns the crossing that v lies on, or -1.
func (s *SelfIntersection) landsOn(v paths.Vec2, tol float64) int {
	for k, c := range s.Crossings {
		if c.P.Dist(v) <= tol {
			return k
		}
	}
	return -1
}
