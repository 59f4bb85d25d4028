// Package engine turns pen strokes into an optical diagram. Each
// stroke is classified by a series of detectors, in priority order:
// scratch (delete), point, baseline, lens, ray, straight line, and
// otherwise a simplified rendering of the stroke. What is recognised
// is reported to a FrontEnd, which hands back handles that later
// edits refer to.
package engine

import (
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/paulhankin/optosketch/descriptor"
	"github.com/paulhankin/optosketch/intersect"
	"github.com/paulhankin/optosketch/optics"
	"github.com/paulhankin/optosketch/paths"
)

// Kind is what a stroke was recognised as.
type Kind int

const (
	KindFallback Kind = iota
	KindScratch
	KindPoint
	KindBaseline
	KindLens
	KindRay
	KindLine
)

func (k Kind) String() string {
	switch k {
	case KindScratch:
		return "scratch"
	case KindPoint:
		return "point"
	case KindBaseline:
		return "baseline"
	case KindLens:
		return "lens"
	case KindRay:
		return "ray"
	case KindLine:
		return "line"
	}
	return "fallback"
}

// Recognition is the outcome of one stroke.
type Recognition struct {
	Kind Kind
	// Added holds the handles of the items the stroke created, in
	// the order they were added to the front end.
	Added []Handle
	// Removed holds the handles a scratch deleted.
	Removed []Handle
}

// An Engine owns a diagram and classifies strokes into it. It is
// safe for concurrent use; strokes and edits are applied one at a time.
type Engine struct {
	mu      sync.Mutex
	cfg     Config
	log     *log.Logger
	fe      FrontEnd
	diagram optics.Diagram

	handles map[optics.Object]Handle
	objects map[Handle]optics.Object
}

// An Option configures an Engine.
type Option func(*Engine)

// WithLogger makes the engine log what it recognises to l.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// New returns an engine with an empty diagram. A front end must be
// attached before strokes are pushed.
func New(cfg Config, opts ...Option) *Engine {
	e := &Engine{
		cfg:     cfg,
		log:     log.New(io.Discard, "", 0),
		handles: map[optics.Object]Handle{},
		objects: map[Handle]optics.Object{},
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Attach sets the front end that receives the engine's output.
func (e *Engine) Attach(fe FrontEnd) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.fe = fe
}

// Content describes the diagram in a human readable form.
func (e *Engine) Content() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.diagram.String()
}

// Snapshot returns a copy of the diagram.
func (e *Engine) Snapshot() optics.Diagram {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.diagram.Clone()
}

// HandleOf returns the front end handle of a diagram object.
func (e *Engine) HandleOf(o optics.Object) (Handle, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	h, ok := e.handles[o]
	return h, ok
}

// PushStroke classifies a stroke and applies it to the diagram.
func (e *Engine) PushStroke(points []paths.Vec2) (Recognition, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.fe == nil {
		return Recognition{}, ErrNoFrontEnd
	}
	switch len(points) {
	case 0:
		return Recognition{}, ErrEmptyStroke
	case 1:
		e.log.Printf("[engine] single point stroke")
		h := e.fe.AddPoint(points[0], PointDefault)
		return Recognition{Kind: KindPoint, Added: []Handle{h}}, nil
	}

	v := append([]paths.Vec2(nil), points...)
	d, err := descriptor.NewWithParams(v, e.cfg.Params)
	if err != nil {
		return Recognition{}, fmt.Errorf("engine: stroke: %w", err)
	}
	e.log.Printf("[engine] %d points, %v", len(v), d)
	simplified := d.Simplified(e.cfg.SimplifyTolerance)

	if sc, ok := e.scratch(simplified); ok {
		e.log.Printf("[engine] scratch, inflections at %v", sc.points)
		if removed := e.scratchDelete(d, sc); len(removed) > 0 {
			return Recognition{Kind: KindScratch, Removed: removed}, nil
		}
		e.log.Printf("[engine] scratch crosses nothing")
	}

	if p, ok := d.Point(); ok {
		e.log.Printf("[engine] point at %v", p)
		h := e.fe.AddPoint(p, PointDefault)
		return Recognition{Kind: KindPoint, Added: []Handle{h}}, nil
	}

	orient, straight := d.StraightLine()
	first, last := v[0], v[len(v)-1]

	if straight && e.isBaseline(orient, first, last) {
		if e.diagram.Baseline == nil {
			h, err := e.addBaseline((first[1] + last[1]) / 2)
			if err != nil {
				return Recognition{}, err
			}
			return Recognition{Kind: KindBaseline, Added: []Handle{h}}, nil
		}
		e.log.Printf("[engine] baseline gesture ignored: already a baseline")
	}

	if straight && e.isLens(orient, first, last) {
		h, err := e.addLens((first[0]+last[0])/2, e.diagram.NextFocal(e.cfg.DefaultFocal))
		if err != nil {
			return Recognition{}, err
		}
		return Recognition{Kind: KindLens, Added: []Handle{h}}, nil
	}

	if straight {
		if base, unit, ok := e.isRay(first, last); ok {
			h, err := e.addRay(base, unit)
			if err != nil {
				return Recognition{}, err
			}
			return Recognition{Kind: KindRay, Added: []Handle{h}}, nil
		}
		e.log.Printf("[engine] %v line", orient)
		h := e.fe.AddPolyline([]paths.Vec2{first, last}, PolylineGeneric)
		return Recognition{Kind: KindLine, Added: []Handle{h}}, nil
	}

	return e.fallback(d, simplified), nil
}

// fallback displays an unrecognised stroke simplified, with the
// loops it closes and the places it crosses itself.
func (e *Engine) fallback(d *descriptor.Descriptor, simplified []paths.Vec2) Recognition {
	r := Recognition{Kind: KindFallback}
	r.Added = append(r.Added, e.fe.AddPolyline(simplified, PolylineSimplified))
	si := intersect.Self(d)
	for _, l := range si.Loops() {
		r.Added = append(r.Added, e.fe.AddPolyline(d.Extract(l[0], l[1]), PolylineLoop))
	}
	for _, c := range si.Crossings {
		r.Added = append(r.Added, e.fe.AddPoint(c.P, PointIntersection))
	}
	e.log.Printf("[engine] unrecognised stroke: %d crossings, %d added", len(si.Crossings), len(r.Added))
	return r
}
