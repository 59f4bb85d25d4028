package optics

import (
	"errors"
	"fmt"
	"strings"

	"github.com/paulhankin/optosketch/paths"
)

var (
	ErrNoBaseline     = errors.New("optics: no baseline")
	ErrBaselineExists = errors.New("optics: baseline already exists")
	ErrInvalidFocal   = errors.New("optics: focal length must be non-zero")
	ErrNoDirection    = errors.New("optics: ray direction must be non-zero")
)

// A Diagram is an optical bench: at most one baseline, and the lenses
// and rays that need it. Ray polylines are kept up to date by every
// method that changes lenses or rays.
type Diagram struct {
	Baseline *Baseline
	Lenses   []*Lens
	Rays     []*Ray
}

// SetBaseline creates the baseline.
func (d *Diagram) SetBaseline(y, span float64) (*Baseline, error) {
	if d.Baseline != nil {
		return nil, ErrBaselineExists
	}
	d.Baseline = &Baseline{Y: y, Span: span}
	return d.Baseline, nil
}

// NextFocal returns the default focal length of the next lens: f and
// -f alternate so that the diagram gets both kinds.
func (d *Diagram) NextFocal(f float64) float64 {
	if len(d.Lenses)%2 == 0 {
		return f
	}
	return -f
}

// AddLens puts a lens on the baseline at x.
func (d *Diagram) AddLens(x, focal, span float64) (*Lens, error) {
	if d.Baseline == nil {
		return nil, ErrNoBaseline
	}
	if focal == 0 {
		return nil, ErrInvalidFocal
	}
	l := NewLens(d.Baseline, x, focal, span)
	d.Lenses = append(d.Lenses, l)
	d.Retrace()
	return l, nil
}

// AddRay adds a ray through base in direction unit.
func (d *Diagram) AddRay(base, unit paths.Vec2) (*Ray, error) {
	if d.Baseline == nil {
		return nil, ErrNoBaseline
	}
	u, ok := unit.Unit()
	if !ok {
		return nil, ErrNoDirection
	}
	r := &Ray{Base: base, Unit: u}
	r.Polyline = Trace(r.Base, r.Unit, d.Lenses)
	d.Rays = append(d.Rays, r)
	return r, nil
}

// Retrace recomputes every ray's polyline.
func (d *Diagram) Retrace() {
	for _, r := range d.Rays {
		r.Polyline = Trace(r.Base, r.Unit, d.Lenses)
	}
}

// MoveLens moves l along the baseline to x.
func (d *Diagram) MoveLens(l *Lens, x float64) {
	l.X = x
	d.Retrace()
}

// SetFocal changes the focal length of l.
func (d *Diagram) SetFocal(l *Lens, f float64) error {
	if f == 0 {
		return ErrInvalidFocal
	}
	l.Focal = f
	d.Retrace()
	return nil
}

// MoveRay moves the base point of r.
func (d *Diagram) MoveRay(r *Ray, base paths.Vec2) {
	r.Base = base
	r.Polyline = Trace(r.Base, r.Unit, d.Lenses)
}

// AimRay changes the direction of r.
func (d *Diagram) AimRay(r *Ray, unit paths.Vec2) error {
	u, ok := unit.Unit()
	if !ok {
		return ErrNoDirection
	}
	r.Unit = u
	r.Polyline = Trace(r.Base, r.Unit, d.Lenses)
	return nil
}

// Remove deletes o from the diagram and returns everything that was
// removed with it: removing the baseline removes all lenses and rays.
func (d *Diagram) Remove(o Object) []Object {
	switch o := o.(type) {
	case *Baseline:
		if o != d.Baseline {
			return nil
		}
		removed := d.Objects()
		*d = Diagram{}
		return removed
	case *Lens:
		for i, l := range d.Lenses {
			if l == o {
				d.Lenses = append(d.Lenses[:i], d.Lenses[i+1:]...)
				d.Retrace()
				return []Object{o}
			}
		}
	case *Ray:
		for i, r := range d.Rays {
			if r == o {
				d.Rays = append(d.Rays[:i], d.Rays[i+1:]...)
				return []Object{o}
			}
		}
	}
	return nil
}

// Clone returns a deep copy of d. The lenses of the copy stand on
// the copy's baseline.
func (d *Diagram) Clone() Diagram {
	var c Diagram
	if d.Baseline != nil {
		b := *d.Baseline
		c.Baseline = &b
	}
	for _, l := range d.Lenses {
		cl := *l
		cl.baseline = c.Baseline
		c.Lenses = append(c.Lenses, &cl)
	}
	for _, r := range d.Rays {
		cr := *r
		cr.Polyline = append([]paths.Vec2(nil), r.Polyline...)
		c.Rays = append(c.Rays, &cr)
	}
	return c
}

// Objects returns the rays, then the lenses, then the baseline.
func (d *Diagram) Objects() []Object {
	var r []Object
	for _, x := range d.Rays {
		r = append(r, x)
	}
	for _, x := range d.Lenses {
		r = append(r, x)
	}
	if d.Baseline != nil {
		r = append(r, d.Baseline)
	}
	return r
}

// String lists the diagram's contents.
func (d *Diagram) String() string {
	var sb strings.Builder
	if d.Baseline == nil {
		sb.WriteString("no baseline\n")
	} else {
		fmt.Fprintf(&sb, "baseline at y=%.2f\n", d.Baseline.Y)
	}
	fmt.Fprintf(&sb, "%d lens(es)\n", len(d.Lenses))
	for _, l := range d.Lenses {
		fmt.Fprintf(&sb, "  lens at x=%.2f, focal %.2f\n", l.X, l.Focal)
	}
	fmt.Fprintf(&sb, "%d ray(s)\n", len(d.Rays))
	for _, r := range d.Rays {
		fmt.Fprintf(&sb, "  ray through (%.2f, %.2f) towards (%.3f, %.3f)\n", r.Base[0], r.Base[1], r.Unit[0], r.Unit[1])
	}
	return sb.String()
}
