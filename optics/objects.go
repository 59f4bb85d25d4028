// Package optics holds the diagram objects of an optical bench (a
// baseline, thin lenses and light rays) and traces rays through
// the lenses.
package optics

import (
	"fmt"

	"github.com/paulhankin/optosketch/paths"
)

// Kind identifies the type of a diagram object.
type Kind int

const (
	KindBaseline Kind = iota
	KindLens
	KindRay
)

func (k Kind) String() string {
	switch k {
	case KindBaseline:
		return "baseline"
	case KindLens:
		return "lens"
	case KindRay:
		return "ray"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// An Object is one of *Baseline, *Lens or *Ray.
type Object interface {
	Kind() Kind
	// Reference is the polyline a delete gesture has to cross.
	Reference() []paths.Vec2
	object()
}

// Baseline is the optical axis. Y is where it lies; it is drawn
// from -Span to Span.
type Baseline struct {
	Y    float64
	Span float64
}

func (*Baseline) Kind() Kind { return KindBaseline }
func (*Baseline) object()    {}

func (b *Baseline) Reference() []paths.Vec2 {
	return []paths.Vec2{{-b.Span, b.Y}, {b.Span, b.Y}}
}

// Lens is a thin lens standing on the baseline at X. A positive
// focal length converges, a negative one diverges. Span is its half
// height.
type Lens struct {
	X     float64
	Focal float64
	Span  float64

	baseline *Baseline
}

// NewLens returns a lens standing on b.
func NewLens(b *Baseline, x, focal, span float64) *Lens {
	return &Lens{X: x, Focal: focal, Span: span, baseline: b}
}

func (*Lens) Kind() Kind { return KindLens }
func (*Lens) object()    {}

// Y returns the height of the lens center, which is the baseline's.
func (l *Lens) Y() float64 {
	return l.baseline.Y
}

func (l *Lens) Reference() []paths.Vec2 {
	y := l.Y()
	return []paths.Vec2{{l.X, y - l.Span}, {l.X, y + l.Span}}
}

// Ray is a light ray through Base in direction Unit. Polyline is
// its path through the lenses and is only valid after Trace.
type Ray struct {
	Base     paths.Vec2
	Unit     paths.Vec2
	Polyline []paths.Vec2
}

func (*Ray) Kind() Kind { return KindRay }
func (*Ray) object()    {}

func (r *Ray) Reference() []paths.Vec2 {
	return r.Polyline
}
