// Package scene is an in-memory front end for the recognition engine.
// It keeps the items the engine creates, reports changes to an
// optional listener, and renders the diagram to SVG or PDF.
package scene

import (
	"sync"

	"github.com/google/uuid"

	"github.com/paulhankin/optosketch/engine"
	"github.com/paulhankin/optosketch/paths"
)

// ItemKind is the type of a scene item.
type ItemKind string

const (
	ItemPoint    ItemKind = "point"
	ItemPolyline ItemKind = "polyline"
	ItemBaseline ItemKind = "baseline"
	ItemLens     ItemKind = "lens"
	ItemRay      ItemKind = "ray"
)

// An Item is something displayed in the scene. Which fields are set
// depends on Kind: points and polylines have V and Style, baselines
// Y and Span, lenses X, Y, Focal and Span, and rays V, Base and Unit.
type Item struct {
	Handle engine.Handle `json:"handle"`
	Kind   ItemKind      `json:"kind"`
	Style  string        `json:"style,omitempty"`
	V      []paths.Vec2  `json:"points,omitempty"`
	X      float64       `json:"x,omitempty"`
	Y      float64       `json:"y,omitempty"`
	Focal  float64       `json:"focal,omitempty"`
	Span   float64       `json:"span,omitempty"`
	Base   paths.Vec2    `json:"base"`
	Unit   paths.Vec2    `json:"unit"`
}

// Op is the kind of change an Event reports.
type Op string

const (
	OpAdd    Op = "add"
	OpUpdate Op = "update"
	OpRemove Op = "remove"
)

// An Event reports a change to the scene. Removals carry only the
// item's handle.
type Event struct {
	Op   Op   `json:"op"`
	Item Item `json:"item"`
}

// View is the default drawing area, centered on the origin.
var View = paths.Bounds{Min: paths.Vec2{-500, -300}, Max: paths.Vec2{500, 300}}

// Scene is a set of items, in the order they were added. It is safe
// for concurrent use.
type Scene struct {
	// Bounds is the area rendered by SVG and PDF.
	Bounds paths.Bounds
	// OnEvent, if set, is called after each change, with the scene
	// unlocked.
	OnEvent func(Event)

	mu    sync.Mutex
	items map[engine.Handle]*Item
	order []engine.Handle
}

var _ engine.FrontEnd = (*Scene)(nil)

// New returns an empty scene viewing View.
func New() *Scene {
	return &Scene{Bounds: View, items: map[engine.Handle]*Item{}}
}

func (s *Scene) emit(op Op, it Item) {
	if s.OnEvent != nil {
		s.OnEvent(Event{Op: op, Item: it})
	}
}

func (s *Scene) add(it Item) engine.Handle {
	it.Handle = engine.Handle(uuid.NewString())
	s.mu.Lock()
	s.items[it.Handle] = &it
	s.order = append(s.order, it.Handle)
	s.mu.Unlock()
	s.emit(OpAdd, it)
	return it.Handle
}

func (s *Scene) update(h engine.Handle, it Item) {
	it.Handle = h
	s.mu.Lock()
	old, ok := s.items[h]
	if ok {
		*old = it
	}
	s.mu.Unlock()
	if ok {
		s.emit(OpUpdate, it)
	}
}

// Items returns copies of the items, in the order they were added.
func (s *Scene) Items() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := make([]Item, 0, len(s.order))
	for _, h := range s.order {
		r = append(r, *s.items[h])
	}
	return r
}

// Item returns the item with handle h.
func (s *Scene) Item(h engine.Handle) (Item, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[h]
	if !ok {
		return Item{}, false
	}
	return *it, true
}

// Clear removes every item, without reporting events.
func (s *Scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = map[engine.Handle]*Item{}
	s.order = nil
}

func (s *Scene) AddPoint(p paths.Vec2, kind engine.PointKind) engine.Handle {
	return s.add(Item{Kind: ItemPoint, Style: kind.String(), V: []paths.Vec2{p}})
}

func (s *Scene) AddPolyline(v []paths.Vec2, kind engine.PolylineKind) engine.Handle {
	return s.add(Item{Kind: ItemPolyline, Style: kind.String(), V: v})
}

func (s *Scene) AddBaseline(y, span float64) engine.Handle {
	return s.add(Item{Kind: ItemBaseline, Y: y, Span: span})
}

func (s *Scene) AddLens(x, baselineY, focal, span float64) engine.Handle {
	return s.add(Item{Kind: ItemLens, X: x, Y: baselineY, Focal: focal, Span: span})
}

func (s *Scene) UpdateLens(h engine.Handle, x, baselineY, focal, span float64) {
	s.update(h, Item{Kind: ItemLens, X: x, Y: baselineY, Focal: focal, Span: span})
}

func (s *Scene) AddRay(polyline []paths.Vec2, base, unit paths.Vec2) engine.Handle {
	return s.add(Item{Kind: ItemRay, V: polyline, Base: base, Unit: unit})
}

func (s *Scene) UpdateRay(h engine.Handle, polyline []paths.Vec2, base, unit paths.Vec2) {
	s.update(h, Item{Kind: ItemRay, V: polyline, Base: base, Unit: unit})
}

func (s *Scene) Remove(h engine.Handle) {
	s.mu.Lock()
	_, ok := s.items[h]
	if ok {
		delete(s.items, h)
		for i, x := range s.order {
			if x == h {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
	}
	s.mu.Unlock()
	if ok {
		s.emit(OpRemove, Item{Handle: h})
	}
}
