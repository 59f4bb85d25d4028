package engine

import "github.com/paulhankin/optosketch/paths"

// A Handle identifies an item created by a FrontEnd. The engine only
// compares handles and passes them back.
type Handle string

// PointKind says how a point should be displayed.
type PointKind int

const (
	PointDefault PointKind = iota
	PointIntersection
)

// PolylineKind says how a polyline should be displayed.
type PolylineKind int

const (
	PolylineGeneric PolylineKind = iota
	PolylineSimplified
	PolylineLoop
)

func (k PointKind) String() string {
	if k == PointIntersection {
		return "intersection"
	}
	return "default"
}

func (k PolylineKind) String() string {
	switch k {
	case PolylineSimplified:
		return "simplified"
	case PolylineLoop:
		return "loop"
	}
	return "generic"
}

// A FrontEnd displays what the engine recognises. Its methods are
// called with the engine locked and must not call back into it.
type FrontEnd interface {
	AddPoint(p paths.Vec2, kind PointKind) Handle
	AddPolyline(v []paths.Vec2, kind PolylineKind) Handle
	AddBaseline(y, span float64) Handle
	AddLens(x, baselineY, focal, span float64) Handle
	UpdateLens(h Handle, x, baselineY, focal, span float64)
	AddRay(polyline []paths.Vec2, base, unit paths.Vec2) Handle
	UpdateRay(h Handle, polyline []paths.Vec2, base, unit paths.Vec2)
	Remove(h Handle)
}
