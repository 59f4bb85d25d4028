package engine

import (
	"fmt"

	"github.com/paulhankin/optosketch/optics"
	"github.com/paulhankin/optosketch/paths"
)

func (e *Engine) register(o optics.Object, h Handle) {
	e.handles[o] = h
	e.objects[h] = o
}

func (e *Engine) forget(o optics.Object) Handle {
	h := e.handles[o]
	delete(e.handles, o)
	delete(e.objects, h)
	return h
}

// updateRays sends every ray's polyline to the front end.
func (e *Engine) updateRays() {
	for _, r := range e.diagram.Rays {
		e.fe.UpdateRay(e.handles[r], r.Polyline, r.Base, r.Unit)
	}
}

func (e *Engine) updateLens(l *optics.Lens) {
	e.fe.UpdateLens(e.handles[l], l.X, l.Y(), l.Focal, l.Span)
}

func (e *Engine) addBaseline(y float64) (Handle, error) {
	b, err := e.diagram.SetBaseline(y, e.cfg.BaselineSpan)
	if err != nil {
		return "", err
	}
	e.log.Printf("[engine] baseline at y=%.2f", y)
	h := e.fe.AddBaseline(b.Y, b.Span)
	e.register(b, h)
	return h, nil
}

func (e *Engine) addLens(x, focal float64) (Handle, error) {
	l, err := e.diagram.AddLens(x, focal, e.cfg.LensSpan)
	if err != nil {
		return "", err
	}
	e.log.Printf("[engine] lens at x=%.2f, focal %.2f", x, focal)
	h := e.fe.AddLens(l.X, l.Y(), l.Focal, l.Span)
	e.register(l, h)
	e.updateRays()
	return h, nil
}

func (e *Engine) addRay(base, unit paths.Vec2) (Handle, error) {
	r, err := e.diagram.AddRay(base, unit)
	if err != nil {
		return "", err
	}
	e.log.Printf("[engine] ray through %v towards %v", r.Base, r.Unit)
	h := e.fe.AddRay(r.Polyline, r.Base, r.Unit)
	e.register(r, h)
	return h, nil
}

// remove deletes o from the diagram and the front end, along with
// whatever depends on it, and returns the removed handles.
func (e *Engine) remove(o optics.Object) []Handle {
	var hs []Handle
	lens := false
	for _, x := range e.diagram.Remove(o) {
		h := e.forget(x)
		e.fe.Remove(h)
		hs = append(hs, h)
		lens = lens || x.Kind() == optics.KindLens
	}
	if lens && e.diagram.Baseline != nil {
		e.updateRays()
	}
	return hs
}

func (e *Engine) lookup(h Handle) (optics.Object, error) {
	o, ok := e.objects[h]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, h)
	}
	return o, nil
}

func (e *Engine) lens(h Handle) (*optics.Lens, error) {
	o, err := e.lookup(h)
	if err != nil {
		return nil, err
	}
	l, ok := o.(*optics.Lens)
	if !ok {
		return nil, fmt.Errorf("%w: %q is a %v, not a lens", ErrNotFound, h, o.Kind())
	}
	return l, nil
}

func (e *Engine) ray(h Handle) (*optics.Ray, error) {
	o, err := e.lookup(h)
	if err != nil {
		return nil, err
	}
	r, ok := o.(*optics.Ray)
	if !ok {
		return nil, fmt.Errorf("%w: %q is a %v, not a ray", ErrNotFound, h, o.Kind())
	}
	return r, nil
}

func (e *Engine) attached() error {
	if e.fe == nil {
		return ErrNoFrontEnd
	}
	return nil
}

// AddBaseline creates the baseline at y.
func (e *Engine) AddBaseline(y float64) (Handle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.attached(); err != nil {
		return "", err
	}
	return e.addBaseline(y)
}

// AddLens creates a lens at x. A zero focal length picks the next
// default one.
func (e *Engine) AddLens(x, focal float64) (Handle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.attached(); err != nil {
		return "", err
	}
	if focal == 0 {
		focal = e.diagram.NextFocal(e.cfg.DefaultFocal)
	}
	return e.addLens(x, focal)
}

// AddRay creates a ray through base in direction unit, which need
// not be normalised.
func (e *Engine) AddRay(base, unit paths.Vec2) (Handle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.attached(); err != nil {
		return "", err
	}
	return e.addRay(base, unit)
}

// MoveLens moves a lens along the baseline.
func (e *Engine) MoveLens(h Handle, x float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.attached(); err != nil {
		return err
	}
	l, err := e.lens(h)
	if err != nil {
		return err
	}
	e.diagram.MoveLens(l, x)
	e.updateLens(l)
	e.updateRays()
	return nil
}

// SetLensFocal changes the focal length of a lens.
func (e *Engine) SetLensFocal(h Handle, f float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.attached(); err != nil {
		return err
	}
	l, err := e.lens(h)
	if err != nil {
		return err
	}
	if err := e.diagram.SetFocal(l, f); err != nil {
		return err
	}
	e.updateLens(l)
	e.updateRays()
	return nil
}

// MoveRayBase moves the point a ray is drawn through.
func (e *Engine) MoveRayBase(h Handle, base paths.Vec2) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.attached(); err != nil {
		return err
	}
	r, err := e.ray(h)
	if err != nil {
		return err
	}
	e.diagram.MoveRay(r, base)
	e.fe.UpdateRay(h, r.Polyline, r.Base, r.Unit)
	return nil
}

// SetRayDirection changes the direction of a ray.
func (e *Engine) SetRayDirection(h Handle, unit paths.Vec2) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.attached(); err != nil {
		return err
	}
	r, err := e.ray(h)
	if err != nil {
		return err
	}
	if err := e.diagram.AimRay(r, unit); err != nil {
		return err
	}
	e.fe.UpdateRay(h, r.Polyline, r.Base, r.Unit)
	return nil
}

// Delete removes a baseline, lens or ray and returns the handles of
// everything removed. Deleting the baseline deletes the whole diagram.
func (e *Engine) Delete(h Handle) ([]Handle, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.attached(); err != nil {
		return nil, err
	}
	o, err := e.lookup(h)
	if err != nil {
		return nil, err
	}
	return e.remove(o), nil
}
