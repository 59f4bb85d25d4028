package engine

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulhankin/optosketch/paths"
)

type item struct {
	what     string
	v        []paths.Vec2
	point    PointKind
	polyline PolylineKind
	x, y     float64
	focal    float64
	span     float64
	base     paths.Vec2
	unit     paths.Vec2
}

// front records what the engine sends it.
type front struct {
	n       int
	items   map[Handle]*item
	removed []Handle
	updates int
}

func newFront() *front {
	return &front{items: map[Handle]*item{}}
}

func (f *front) add(it *item) Handle {
	f.n++
	h := Handle(fmt.Sprintf("%s-%d", it.what, f.n))
	f.items[h] = it
	return h
}

func (f *front) AddPoint(p paths.Vec2, kind PointKind) Handle {
	return f.add(&item{what: "point", v: []paths.Vec2{p}, point: kind})
}

func (f *front) AddPolyline(v []paths.Vec2, kind PolylineKind) Handle {
	return f.add(&item{what: "polyline", v: v, polyline: kind})
}

func (f *front) AddBaseline(y, span float64) Handle {
	return f.add(&item{what: "baseline", y: y, span: span})
}

func (f *front) AddLens(x, y, focal, span float64) Handle {
	return f.add(&item{what: "lens", x: x, y: y, focal: focal, span: span})
}

func (f *front) UpdateLens(h Handle, x, y, focal, span float64) {
	f.updates++
	*f.items[h] = item{what: "lens", x: x, y: y, focal: focal, span: span}
}

func (f *front) AddRay(v []paths.Vec2, base, unit paths.Vec2) Handle {
	return f.add(&item{what: "ray", v: v, base: base, unit: unit})
}

func (f *front) UpdateRay(h Handle, v []paths.Vec2, base, unit paths.Vec2) {
	f.updates++
	*f.items[h] = item{what: "ray", v: v, base: base, unit: unit}
}

func (f *front) Remove(h Handle) {
	f.removed = append(f.removed, h)
	delete(f.items, h)
}

func (f *front) count(what string) int {
	n := 0
	for _, it := range f.items {
		if it.what == what {
			n++
		}
	}
	return n
}

// line returns n+1 evenly spaced points from a to b.
func line(a, b paths.Vec2, n int) []paths.Vec2 {
	var v []paths.Vec2
	for i := 0; i <= n; i++ {
		v = append(v, a.Lerp(b, float64(i)/float64(n)))
	}
	return v
}

func pts(xy ...float64) []paths.Vec2 {
	var v []paths.Vec2
	for i := 0; i+1 < len(xy); i += 2 {
		v = append(v, paths.Vec2{xy[i], xy[i+1]})
	}
	return v
}

func newEngine(t *testing.T) (*Engine, *front) {
	t.Helper()
	var buf bytes.Buffer
	e := New(DefaultConfig(), WithLogger(log.New(&buf, "", 0)))
	t.Cleanup(func() {
		if t.Failed() {
			t.Log(buf.String())
		}
	})
	f := newFront()
	e.Attach(f)
	return e, f
}

func push(t *testing.T, e *Engine, v []paths.Vec2) Recognition {
	t.Helper()
	r, err := e.PushStroke(v)
	require.NoError(t, err)
	return r
}

func TestPushStrokeErrors(t *testing.T) {
	e := New(DefaultConfig())
	_, err := e.PushStroke(pts(0, 0, 1, 1))
	require.ErrorIs(t, err, ErrNoFrontEnd)
	_, err = e.AddBaseline(0)
	require.ErrorIs(t, err, ErrNoFrontEnd)

	e.Attach(newFront())
	_, err = e.PushStroke(nil)
	require.ErrorIs(t, err, ErrEmptyStroke)
}

func TestSinglePoint(t *testing.T) {
	e, f := newEngine(t)
	r := push(t, e, pts(3, 4))
	assert.Equal(t, KindPoint, r.Kind)
	require.Len(t, r.Added, 1)
	it := f.items[r.Added[0]]
	assert.Equal(t, []paths.Vec2{{3, 4}}, it.v)
	assert.Equal(t, PointDefault, it.point)
}

func TestPoint(t *testing.T) {
	e, f := newEngine(t)
	r := push(t, e, pts(0, 0, 1, 0, 1, 1, 0, 1, 0.5, 0.5))
	assert.Equal(t, KindPoint, r.Kind)
	assert.Equal(t, "point", f.items[r.Added[0]].what)
}

func TestBaseline(t *testing.T) {
	e, f := newEngine(t)
	r := push(t, e, line(paths.Vec2{-400, 2}, paths.Vec2{400, -2}, 40))
	assert.Equal(t, KindBaseline, r.Kind)
	b := f.items[r.Added[0]]
	assert.Equal(t, "baseline", b.what)
	assert.InDelta(t, 0, b.y, 1e-9)
	assert.Equal(t, 300.0, b.span)
	assert.Contains(t, e.Content(), "baseline at y=0.00")

	// A second baseline is refused and drawn as a plain line.
	r = push(t, e, line(paths.Vec2{-400, 50}, paths.Vec2{400, 50}, 40))
	assert.Equal(t, KindLine, r.Kind)
	assert.Equal(t, 1, f.count("baseline"))
	assert.InDelta(t, 0, e.Snapshot().Baseline.Y, 1e-9)
}

func TestBaselineRightToLeft(t *testing.T) {
	e, _ := newEngine(t)
	r := push(t, e, line(paths.Vec2{400, 10}, paths.Vec2{-400, 10}, 40))
	assert.Equal(t, KindBaseline, r.Kind)
}

func TestBaselineTooShort(t *testing.T) {
	e, f := newEngine(t)
	r := push(t, e, line(paths.Vec2{-100, 0}, paths.Vec2{100, 0}, 20))
	assert.Equal(t, KindLine, r.Kind)
	it := f.items[r.Added[0]]
	assert.Equal(t, PolylineGeneric, it.polyline)
	assert.Equal(t, []paths.Vec2{{-100, 0}, {100, 0}}, it.v)
	assert.Nil(t, e.Snapshot().Baseline)
}

func TestLens(t *testing.T) {
	e, f := newEngine(t)

	// No baseline yet: just a vertical line.
	r := push(t, e, line(paths.Vec2{10, -60}, paths.Vec2{10, 60}, 12))
	assert.Equal(t, KindLine, r.Kind)

	_, err := e.AddBaseline(0)
	require.NoError(t, err)
	r = push(t, e, line(paths.Vec2{10, -60}, paths.Vec2{12, 60}, 12))
	require.Equal(t, KindLens, r.Kind)
	l := f.items[r.Added[0]]
	assert.InDelta(t, 11, l.x, 1e-9)
	assert.Equal(t, 50.0, l.focal)
	assert.Equal(t, 70.0, l.span)

	r = push(t, e, line(paths.Vec2{-100, 60}, paths.Vec2{-100, -60}, 12))
	require.Equal(t, KindLens, r.Kind)
	assert.Equal(t, -50.0, f.items[r.Added[0]].focal)

	// Both ends must be well clear of the baseline.
	r = push(t, e, line(paths.Vec2{100, -30}, paths.Vec2{100, 60}, 12))
	assert.Equal(t, KindLine, r.Kind)
	assert.Len(t, e.Snapshot().Lenses, 2)
}

func TestRay(t *testing.T) {
	e, f := newEngine(t)
	_, err := e.AddBaseline(0)
	require.NoError(t, err)

	// No lens: no ray.
	r := push(t, e, line(paths.Vec2{-150, 30}, paths.Vec2{-5, 30}, 20))
	assert.Equal(t, KindLine, r.Kind)

	lh, err := e.AddLens(0, 0)
	require.NoError(t, err)
	r = push(t, e, line(paths.Vec2{-150, 30}, paths.Vec2{-5, 30}, 20))
	require.Equal(t, KindRay, r.Kind)
	ray := f.items[r.Added[0]]
	assert.Equal(t, paths.Vec2{-1, 30}, ray.base)
	assert.Equal(t, paths.Vec2{1, 0}, ray.unit)
	require.Len(t, ray.v, 3)
	assert.Equal(t, paths.Vec2{0, 30}, ray.v[1])

	// Drawn leftwards from beside the lens: based on its right.
	r = push(t, e, line(paths.Vec2{20, 0}, paths.Vec2{200, -40}, 20))
	require.Equal(t, KindRay, r.Kind)
	ray = f.items[r.Added[0]]
	assert.InDelta(t, 1, ray.base[0], 1e-9)
	assert.InDelta(t, 40.0/9, ray.base[1], 1e-9)

	// Moving the lens redraws both rays.
	require.NoError(t, e.MoveLens(lh, -20))
	assert.Equal(t, 3, f.updates)
	assert.InDelta(t, -20, f.items[lh].x, 1e-9)
	assert.Len(t, e.Snapshot().Rays, 2)
}

// zigzag returns a stroke that swings between x0 and x1 while
// climbing from y0, turning sharply at each vertex.
func zigzag(x0, x1, y0 float64, n int) []paths.Vec2 {
	var v []paths.Vec2
	for i := 0; i < n; i++ {
		x := x0
		if i%2 == 1 {
			x = x1
		}
		v = append(v, paths.Vec2{x, y0 + 15*float64(i)})
	}
	return v
}

func TestScratchLens(t *testing.T) {
	e, f := newEngine(t)
	bh, _ := e.AddBaseline(0)
	lh, err := e.AddLens(0, 0)
	require.NoError(t, err)
	keep, _ := e.AddLens(200, 0)

	r := push(t, e, zigzag(-30, 30, -40, 7))
	require.Equal(t, KindScratch, r.Kind)
	assert.Equal(t, []Handle{lh}, r.Removed)
	assert.Equal(t, []Handle{lh}, f.removed)
	_, ok := f.items[bh]
	assert.True(t, ok)
	assert.Equal(t, 200.0, e.Snapshot().Lenses[0].X)

	_, err = e.Delete(lh)
	require.ErrorIs(t, err, ErrNotFound)
	require.NoError(t, e.MoveLens(keep, 210))
}

func TestScratchSingleCrossing(t *testing.T) {
	e, _ := newEngine(t)
	e.AddBaseline(0)
	e.AddLens(0, 0)

	v := append(pts(-30, -40), zigzag(70, 10, -25, 6)...)
	r := push(t, e, v)
	assert.Equal(t, KindFallback, r.Kind)
	assert.Empty(t, r.Removed)
	assert.Len(t, e.Snapshot().Lenses, 1)
}

func TestScratchBaseline(t *testing.T) {
	e, f := newEngine(t)
	e.AddBaseline(0)
	e.AddLens(200, 0)
	e.AddRay(paths.Vec2{-100, 100}, paths.Vec2{1, 0})

	var v []paths.Vec2
	for i := 0; i < 7; i++ {
		y := -30.0
		if i%2 == 1 {
			y = 30
		}
		v = append(v, paths.Vec2{-40 + 15*float64(i), y})
	}
	r := push(t, e, v)
	require.Equal(t, KindScratch, r.Kind)
	assert.Len(t, r.Removed, 3)
	assert.Empty(t, f.items)
	snap := e.Snapshot()
	assert.Nil(t, snap.Baseline)
	assert.Empty(t, snap.Lenses)
	assert.Empty(t, snap.Rays)

	// The next baseline gesture starts a new diagram.
	r = push(t, e, line(paths.Vec2{-400, 0}, paths.Vec2{400, 0}, 40))
	assert.Equal(t, KindBaseline, r.Kind)
}

func TestArcCount(t *testing.T) {
	a := []float64{1, -1, 1, -1, 1}
	assert.Equal(t, 5, arcCount(a, []int{0, 1, 2, 3}, 1.5))
	// Small turns at the ends don't count as arcs.
	a = []float64{0.1, -1, 1, -1, 0.1}
	assert.Equal(t, 3, arcCount(a, []int{0, 1, 2, 3}, 1.5))
}

func TestFallbackLoops(t *testing.T) {
	e, f := newEngine(t)
	v := pts(0, 0, 1, -1, 0, -2, -1, -1, 1, 1, 0, 2, -1, 1, 0, 0)
	for i := range v {
		v[i] = v[i].Scale(50)
	}
	r := push(t, e, v)
	require.Equal(t, KindFallback, r.Kind)
	require.Len(t, r.Added, 4)

	kinds := map[string]int{}
	for _, h := range r.Added {
		it := f.items[h]
		switch it.what {
		case "polyline":
			kinds[it.polyline.String()]++
		case "point":
			kinds[it.point.String()]++
			assert.InDelta(t, 0, it.v[0].Len(), 1e-9)
		}
	}
	assert.Equal(t, map[string]int{"simplified": 1, "loop": 2, "intersection": 1}, kinds)
}

func TestEdits(t *testing.T) {
	e, f := newEngine(t)
	_, err := e.AddLens(0, 50)
	require.ErrorIs(t, err, ErrNoBaseline)

	bh, err := e.AddBaseline(10)
	require.NoError(t, err)
	_, err = e.AddBaseline(20)
	require.ErrorIs(t, err, ErrBaselineExists)

	lh, err := e.AddLens(0, 40)
	require.NoError(t, err)
	rh, err := e.AddRay(paths.Vec2{-50, 20}, paths.Vec2{2, 0})
	require.NoError(t, err)
	assert.Equal(t, paths.Vec2{1, 0}, f.items[rh].unit)

	before := e.Content()
	require.ErrorIs(t, e.MoveLens("nope", 3), ErrNotFound)
	require.ErrorIs(t, e.MoveLens(rh, 3), ErrNotFound)
	require.ErrorIs(t, e.MoveRayBase(lh, paths.Vec2{}), ErrNotFound)
	require.ErrorIs(t, e.SetLensFocal(lh, 0), ErrInvalidFocal)
	require.ErrorIs(t, e.SetRayDirection(rh, paths.Vec2{}), ErrInvalidDirection)
	_, err = e.Delete("nope")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, before, e.Content())

	require.NoError(t, e.SetLensFocal(lh, -25))
	assert.Equal(t, -25.0, f.items[lh].focal)
	require.NoError(t, e.MoveRayBase(rh, paths.Vec2{-60, 30}))
	assert.Equal(t, paths.Vec2{-60, 30}, f.items[rh].base)
	require.NoError(t, e.SetRayDirection(rh, paths.Vec2{0, -3}))
	assert.Len(t, f.items[rh].v, 2, "a vertical ray meets no lens")

	removed, err := e.Delete(lh)
	require.NoError(t, err)
	assert.Equal(t, []Handle{lh}, removed)
	_, ok := f.items[rh]
	assert.True(t, ok)

	removed, err = e.Delete(bh)
	require.NoError(t, err)
	assert.ElementsMatch(t, []Handle{bh, rh}, removed)
	assert.Empty(t, f.items)
	assert.True(t, strings.HasPrefix(e.Content(), "no baseline"))
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(strings.NewReader(`
baseline_reach = 200
scratch_min_arcs = 5
straight_ratio = 1.05
`))
	require.NoError(t, err)
	assert.Equal(t, 200.0, cfg.BaselineReach)
	assert.Equal(t, 5, cfg.ScratchMinArcs)
	assert.Equal(t, 1.05, cfg.StraightRatio)
	assert.Equal(t, 70.0, cfg.LensSpan)

	_, err = LoadConfig(strings.NewReader("lens_spam = 3\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "lens_spam")

	_, err = LoadConfig(strings.NewReader("baseline_reach = \"far\"\n"))
	require.Error(t, err)
}
