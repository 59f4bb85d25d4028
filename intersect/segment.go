// Package intersect finds the crossings of a stroke with itself or
// with another polyline, locating each by arc length along both.
package intersect

import (
	"github.com/paulhankin/optosketch/paths"
)

// crossing tests segment x1-x2 against x3-x4. On a crossing it
// returns the point and the distances alpha from x1 along the first
// segment and beta from x3 along the second.
//
// Touching configurations are reported once between neighbouring
// segments: shared endpoints other than x2 == x3 are dropped, as is
// an endpoint lying on the other segment. Overlapping parallel
// segments report x1 with zero offsets.
func crossing(x1, x2, x3, x4 paths.Vec2) (p paths.Vec2, alpha, beta float64, ok bool) {
	if x1 == x2 || x3 == x4 {
		return p, 0, 0, false
	}
	if x1 == x4 || x1 == x3 || x2 == x4 {
		return p, 0, 0, false
	}
	if _, overlap := paths.BoundsOf([]paths.Vec2{x1, x2}).Intersect(paths.BoundsOf([]paths.Vec2{x3, x4})); !overlap {
		return p, 0, 0, false
	}

	cp := x2.Sub(x1).Cross(x4.Sub(x3))
	aligned := cp == 0
	if x2 == x3 && !aligned {
		return x2, x2.Sub(x1).Len(), 0, true
	}

	// Turns around the quadrilateral x1, x3, x2, x4: the segments
	// cross when it's convex.
	cp1 := x1.Sub(x3).Cross(x3.Sub(x2))
	cp2 := x3.Sub(x2).Cross(x2.Sub(x4))
	cp3 := x2.Sub(x4).Cross(x4.Sub(x1))
	cp4 := x4.Sub(x1).Cross(x1.Sub(x3))

	if !aligned && (cp1 == 0 || cp4 == 0) {
		// x3 lies on the first segment, or x1 on the second.
		return p, 0, 0, false
	}
	if cp1*cp2 < 0 || cp2*cp3 < 0 || cp3*cp4 < 0 {
		return p, 0, 0, false
	}
	if aligned {
		return x1, 0, 0, true
	}

	n1 := x2.Sub(x1).Len()
	n2 := x4.Sub(x3).Len()
	u1 := x2.Sub(x1).Scale(1 / n1)
	u2 := x4.Sub(x3).Scale(1 / n2)
	sin := cp / (n1 * n2)
	alpha = -u2.Cross(x3.Sub(x1)) / sin
	beta = -u1.Cross(x3.Sub(x1)) / sin
	return x1.Add(u1.Scale(alpha)), alpha, beta, true
}
