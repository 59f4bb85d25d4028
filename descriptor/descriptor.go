// Package descriptor computes the geometric quantities of a stroke
// (a polyline) that the shape detectors work from: arc length,
// centers, turning angles and a principal component analysis.
package descriptor

import (
	"errors"
	"fmt"
	"math"

	"github.com/paulhankin/optosketch/paths"
)

// ErrTooFewPoints is returned for strokes with fewer than two points.
var ErrTooFewPoints = errors.New("descriptor: need at least two points")

// A Descriptor is computed once from a polyline and never changes.
type Descriptor struct {
	P Params

	V       []paths.Vec2 // the polyline
	Vectors []paths.Vec2 // V[i+1]-V[i]
	Lengths []float64    // |Vectors[i]|
	// CumLength[i] is the arc length from V[0] to V[i].
	CumLength []float64
	Length    float64

	Center     paths.Vec2 // mean of the vertices
	GCenter    paths.Vec2 // mean of the segment midpoints, weighted by length
	BBoxCenter paths.Vec2
	Std        paths.Vec2 // per-axis standard deviation of the vertices

	// Angles[i] is the signed turn at V[i+1], in (-pi, pi]; positive
	// turns are counter-clockwise. Nil for fewer than three points.
	Angles    []float64
	CumAngles []float64
	// MaxRotation is the peak-to-peak range of CumAngles.
	MaxRotation float64
	// AngleRate is the slope of the cumulative angle against arc length.
	AngleRate float64

	// Axes are the principal directions, major first. Axes[0] always
	// points into x >= 0.
	Axes     [2]paths.Vec2
	Singular [2]float64
	// PrincipalAngle is the angle of Axes[0] from the x axis.
	PrincipalAngle float64
	// Span is the extent of the vertices along each principal axis.
	Span [2]float64
	// NormPCA is V about GCenter, rotated onto the principal axes and
	// scaled by 100/Singular.
	NormPCA []paths.Vec2

	// Persistence holds the Douglas-Peucker persistence of each vertex.
	Persistence []float64
}

// New computes the descriptors of v with the default parameters.
func New(v []paths.Vec2) (*Descriptor, error) {
	return NewWithParams(v, DefaultParams())
}

// NewWithParams computes the descriptors of v. The slice is retained
// and must not be modified afterwards.
func NewWithParams(v []paths.Vec2, p Params) (*Descriptor, error) {
	if len(v) < 2 {
		return nil, fmt.Errorf("%w: got %d", ErrTooFewPoints, len(v))
	}
	d := &Descriptor{P: p, V: v}
	d.lengths()
	d.centers()
	if len(v) > 2 {
		d.angles()
	}
	d.pca()
	d.Persistence = paths.SimplifyDP(v)
	return d, nil
}

func (d *Descriptor) lengths() {
	n := len(d.V)
	d.Vectors = make([]paths.Vec2, n-1)
	d.Lengths = make([]float64, n-1)
	d.CumLength = make([]float64, n)
	for i := 0; i < n-1; i++ {
		d.Vectors[i] = d.V[i+1].Sub(d.V[i])
		d.Lengths[i] = d.Vectors[i].Len()
		d.CumLength[i+1] = d.CumLength[i] + d.Lengths[i]
	}
	d.Length = d.CumLength[n-1]
}

func (d *Descriptor) centers() {
	n := float64(len(d.V))
	var sum paths.Vec2
	for _, x := range d.V {
		sum = sum.Add(x)
	}
	d.Center = paths.Vec2{sum[0] / n, sum[1] / n}

	var sq paths.Vec2
	for _, x := range d.V {
		c := x.Sub(d.Center)
		sq = sq.Add(paths.Vec2{c[0] * c[0], c[1] * c[1]})
	}
	d.Std = paths.Vec2{math.Sqrt(sq[0] / n), math.Sqrt(sq[1] / n)}

	if d.Length > 0 {
		var g paths.Vec2
		for i, l := range d.Lengths {
			g = g.Add(d.V[i].Lerp(d.V[i+1], 0.5).Scale(l))
		}
		d.GCenter = g.Scale(1 / d.Length)
	} else {
		d.GCenter = d.Center
	}
	d.BBoxCenter = paths.BoundsOf(d.V).Center()
}

func (d *Descriptor) angles() {
	n := len(d.Vectors) - 1
	d.Angles = make([]float64, n)
	d.CumAngles = make([]float64, n)
	lo, hi := math.Inf(1), math.Inf(-1)
	sum := 0.0
	for i := 0; i < n; i++ {
		a, b := d.Vectors[i], d.Vectors[i+1]
		d.Angles[i] = math.Atan2(a.Cross(b), a.Dot(b))
		sum += d.Angles[i]
		d.CumAngles[i] = sum
		lo = math.Min(lo, sum)
		hi = math.Max(hi, sum)
	}
	d.MaxRotation = hi - lo

	// Least-squares slope of CumAngles[i] against CumLength[i+2].
	var mx, my float64
	for i, a := range d.CumAngles {
		mx += d.CumLength[i+2]
		my += a
	}
	mx /= float64(n)
	my /= float64(n)
	var sxy, sxx float64
	for i, a := range d.CumAngles {
		dx := d.CumLength[i+2] - mx
		sxy += dx * (a - my)
		sxx += dx * dx
	}
	if sxx > 0 {
		d.AngleRate = sxy / sxx
	}
}

// pca solves the 2x2 symmetric eigenproblem of the centered scatter
// matrix in closed form; the singular values of the centered data
// are the square roots of its eigenvalues.
func (d *Descriptor) pca() {
	var a, b, c float64
	for _, x := range d.V {
		p := x.Sub(d.Center)
		a += p[0] * p[0]
		b += p[0] * p[1]
		c += p[1] * p[1]
	}
	theta := 0.5 * math.Atan2(2*b, a-c)
	u := paths.Vec2{math.Cos(theta), math.Sin(theta)}
	w := paths.Vec2{-u[1], u[0]}
	if u[0] < 0 {
		u, w = u.Scale(-1), w.Scale(-1)
	}
	d.Axes = [2]paths.Vec2{u, w}
	mid := (a + c) / 2
	r := math.Hypot((a-c)/2, b)
	d.Singular = [2]float64{math.Sqrt(math.Max(mid+r, 0)), math.Sqrt(math.Max(mid-r, 0))}
	d.PrincipalAngle = math.Atan2(u[1], u[0])

	for k, ax := range d.Axes {
		lo, hi := math.Inf(1), math.Inf(-1)
		for _, x := range d.V {
			p := x.Dot(ax)
			lo = math.Min(lo, p)
			hi = math.Max(hi, p)
		}
		d.Span[k] = hi - lo
	}

	d.NormPCA = make([]paths.Vec2, len(d.V))
	for i, x := range d.V {
		p := x.Sub(d.GCenter)
		for k, ax := range d.Axes {
			if d.Singular[k] > 0 {
				d.NormPCA[i][k] = p.Dot(ax) / d.Singular[k] * 100
			}
		}
	}
}

// Simplified returns the vertices whose persistence exceeds t.
func (d *Descriptor) Simplified(t float64) []paths.Vec2 {
	return paths.Filter(d.V, d.Persistence, t)
}

// IndexBounds returns the bounds of the vertices n1..n2 inclusive.
func (d *Descriptor) IndexBounds(n1, n2 int) paths.Bounds {
	return paths.BoundsOf(d.V[n1 : n2+1])
}

func (d *Descriptor) String() string {
	s := fmt.Sprintf("length %.1f, bbox center (%.2f, %.2f), gravity center (%.2f, %.2f)",
		d.Length, d.BBoxCenter[0], d.BBoxCenter[1], d.GCenter[0], d.GCenter[1])
	if d.Angles != nil {
		s += fmt.Sprintf(", max rotation %.2f turns", d.MaxRotation/(2*math.Pi))
	}
	return s
}
