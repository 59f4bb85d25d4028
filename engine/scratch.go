package engine

import (
	"math"
	"sort"

	"github.com/paulhankin/optosketch/descriptor"
	"github.com/paulhankin/optosketch/intersect"
	"github.com/paulhankin/optosketch/optics"
	"github.com/paulhankin/optosketch/paths"
)

// A scratch is a zig-zag stroke drawn over objects to delete them.
type scratch struct {
	// inflections are the arc lengths, along the simplified stroke,
	// where the turning changes direction.
	inflections []float64
	points      []paths.Vec2
}

// scratch decides whether the simplified stroke s is a zig-zag:
// large enough, turning back and forth rather than round, over
// enough arcs. Turning angles of the raw stroke are too noisy, so s
// must already be simplified.
func (e *Engine) scratch(s []paths.Vec2) (scratch, bool) {
	if len(s) <= 2 {
		return scratch{}, false
	}
	d, err := descriptor.NewWithParams(s, e.cfg.Params)
	if err != nil {
		return scratch{}, false
	}
	a := d.Angles
	var zc []int
	for i := 0; i+1 < len(a); i++ {
		if a[i]*a[i+1] < 0 {
			zc = append(zc, i)
		}
	}
	if len(zc) < 2 || math.Max(d.Span[0], d.Span[1]) < e.cfg.ScratchMinSpan {
		return scratch{}, false
	}

	// Angles[i] is the turn at V[i+1]; the inflection lies on the
	// segment between the two turns, nearer the smaller one.
	sc := scratch{inflections: make([]float64, len(zc))}
	for k, i := range zc {
		wa, wb := math.Abs(a[i]), math.Abs(a[i+1])
		sc.inflections[k] = d.CumLength[i+1] + wa/(wa+wb)*d.Lengths[i+1]
	}
	sc.points = d.ResampleAt(sc.inflections)

	sum, abs := 0.0, 0.0
	for _, x := range a {
		sum += x
		abs += math.Abs(x)
	}
	zigzag := math.Abs(math.Abs(sum) - abs)
	arcs := arcCount(a, zc, e.cfg.ScratchEndRun)
	e.log.Printf("[engine] scratch? %d inflections, zig-zag %.2f, %d arcs", len(zc), zigzag, arcs)
	if zigzag < e.cfg.ScratchZigZag || arcs < e.cfg.ScratchMinArcs {
		return scratch{}, false
	}
	return sc, true
}

// arcCount counts the runs of same-signed turning between the sign
// changes zc. The runs at the two ends only count if they turn by
// more than the median interior run divided by endRun.
func arcCount(a []float64, zc []int, endRun float64) int {
	runs := make([]float64, 0, len(zc)+1)
	start := 0
	for _, z := range zc {
		runs = append(runs, runTurn(a[start:z+1]))
		start = z + 1
	}
	runs = append(runs, runTurn(a[start:]))

	interior := append([]float64(nil), runs[1:len(runs)-1]...)
	arcs := len(interior)
	if arcs == 0 {
		return len(runs)
	}
	sort.Float64s(interior)
	m := interior[len(interior)/2]
	if len(interior)%2 == 0 {
		m = (interior[len(interior)/2-1] + m) / 2
	}
	for _, r := range []float64{runs[0], runs[len(runs)-1]} {
		if r > m/endRun {
			arcs++
		}
	}
	return arcs
}

func runTurn(a []float64) float64 {
	s := 0.0
	for _, x := range a {
		s += x
	}
	return math.Abs(s)
}

// scratchDelete deletes the objects that the scratch stroke d
// crosses often enough, and returns their handles. A scratch over
// the baseline clears the diagram.
func (e *Engine) scratchDelete(d *descriptor.Descriptor, sc scratch) []Handle {
	var targets []optics.Object
	for _, o := range e.diagram.Objects() {
		ref, err := descriptor.NewWithParams(o.Reference(), e.cfg.Params)
		if err != nil {
			continue
		}
		n := intersect.Pair(d, ref).Len()
		if n > e.cfg.ScratchMinCrossings && n >= len(sc.inflections)-1 {
			e.log.Printf("[engine] scratch deletes %v (%d crossings)", o.Kind(), n)
			if o.Kind() == optics.KindBaseline {
				return e.remove(o)
			}
			targets = append(targets, o)
		}
	}
	var removed []Handle
	for _, o := range targets {
		removed = append(removed, e.remove(o)...)
	}
	return removed
}
