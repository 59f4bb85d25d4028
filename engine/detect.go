package engine

import (
	"math"

	"github.com/paulhankin/optosketch/descriptor"
	"github.com/paulhankin/optosketch/paths"
)

// isBaseline reports whether a straight stroke from first to last
// reaches across the drawing area horizontally.
func (e *Engine) isBaseline(o descriptor.Orientation, first, last paths.Vec2) bool {
	if o != descriptor.Horizontal {
		return false
	}
	lo, hi := math.Min(first[0], last[0]), math.Max(first[0], last[0])
	return lo < -e.cfg.BaselineReach && hi > e.cfg.BaselineReach
}

// isLens reports whether a straight stroke is drawn vertically
// through the baseline, well clear of it at both ends.
func (e *Engine) isLens(o descriptor.Orientation, first, last paths.Vec2) bool {
	b := e.diagram.Baseline
	if b == nil || o != descriptor.Vertical {
		return false
	}
	ds, de := first[1]-b.Y, last[1]-b.Y
	c := e.cfg.LensClearance
	return ds*de < 0 && math.Abs(ds) > c && math.Abs(de) > c
}

// isRay reports whether a straight stroke starts or ends at a lens.
// The ray's base is put just beside the lens, on the side the stroke
// is drawn, where the stroke's line meets the lens.
func (e *Engine) isRay(first, last paths.Vec2) (base, unit paths.Vec2, ok bool) {
	lenses := e.diagram.Lenses
	if len(lenses) == 0 {
		return base, unit, false
	}
	nearest, best := -1, math.Inf(1)
	var far paths.Vec2
	for i, l := range lenses {
		if d := math.Abs(first[0] - l.X); d < best {
			nearest, best, far = i, d, last
		}
		if d := math.Abs(last[0] - l.X); d < best {
			nearest, best, far = i, d, first
		}
	}
	if best >= e.cfg.RaySnap {
		return base, unit, false
	}
	unit, ok = last.Sub(first).Unit()
	if !ok || unit[0] == 0 {
		return base, unit, false
	}
	lx := lenses[nearest].X
	y := far[1] + (lx-far[0])*unit[1]/unit[0]
	side := -1.0
	if far[0] > lx {
		side = 1
	}
	return paths.Vec2{lx + side, y}, unit, true
}
