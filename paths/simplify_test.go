package paths

import (
	"math"
	"reflect"
	"testing"
)

type simplifyTestCase struct {
	desc string
	path Path
	tol  float64
	want []Path
}

func pathHelper(t *testing.T) func(args ...float64) Path {
	return func(args ...float64) Path {
		if len(args)%2 != 0 {
			t.Fatalf("p helper needs an even number of args, got %v", args)
		}
		path := Path{}
		for i := 0; i < len(args); i += 2 {
			path.V = append(path.V, Vec2{args[i], args[i+1]})
		}
		return path
	}
}

func TestSimplify(t *testing.T) {
	p := pathHelper(t)

	cases := []simplifyTestCase{
		{
			desc: "line with slightly displaced midpoint, high tolerance",
			path: p(-1, 0, 0, 0.25, 1.0, 0),
			tol:  0.5,
			want: []Path{p(-1, 0, 1, 0)},
		},
		{
			desc: "line with slightly displaced midpoint, low tolerance",
			path: p(-1, 0, 0, 0.5, 1.0, 0),
			tol:  0.2,
			want: []Path{p(-1, 0, 0, 0.5, 1.0, 0)},
		},
		{
			desc: "square with slightly displaced midpoints, high tolerance",
			path: p(-1, -1, 0, -1.1, 1, -1, 0.9, 0, 1, 1, 0, 1.1, -1, 1, -0.9, 0, -1, -1),
			tol:  0.2,
			want: []Path{p(-1, -1, 1, -1, 1, 1, -1, 1, -1, -1)},
		},
		{
			desc: "collinear points are dropped at zero tolerance",
			path: p(0, 0, 1, 0, 2, 0, 3, 0),
			tol:  0,
			want: []Path{p(0, 0, 3, 0)},
		},
	}
	for _, c := range cases {
		arg := &Paths{
			Bounds: Bounds{Min: Vec2{-1000, -1000}, Max: Vec2{1000, 1000}},
			P:      []Path{c.path},
		}
		ps := &Paths{
			Bounds: arg.Bounds,
			P:      []Path{{V: append([]Vec2{}, c.path.V...)}},
		}
		ps.Simplify(c.tol)
		if !reflect.DeepEqual(ps.P, c.want) {
			t.Errorf("%s: %v.Simplify(%v).P = %v, want %v", c.desc, arg, c.tol, ps.P, c.want)
		}
	}
}

func TestSimplifyDPPersistence(t *testing.T) {
	p := pathHelper(t)
	path := p(0, 0, 1, 3, 2, -1, 3, 0.5, 4, 0.1, 5, 2, 6, 0)
	d := SimplifyDP(path.V)

	if !math.IsInf(d[0], 1) || !math.IsInf(d[len(d)-1], 1) {
		t.Fatalf("endpoints should have infinite persistence, got %v", d)
	}
	// The persistence of a point never exceeds that of the point whose
	// split created its interval, so keeping above a higher threshold
	// gives a subset.
	thresholds := []float64{0, 0.1, 0.5, 1, 2, 3, 10}
	for i := 1; i < len(thresholds); i++ {
		lo := Filter(path.V, d, thresholds[i-1])
		hi := Filter(path.V, d, thresholds[i])
		if !isSubsequence(hi, lo) {
			t.Errorf("Filter(%v) = %v is not a subset of Filter(%v) = %v", thresholds[i], hi, thresholds[i-1], lo)
		}
	}
	if got := Filter(path.V, d, 0); !reflect.DeepEqual(got, path.V) {
		t.Errorf("Filter(0) = %v, want all of %v", got, path.V)
	}
	if got, want := Filter(path.V, d, 100), p(0, 0, 6, 0).V; !reflect.DeepEqual(got, want) {
		t.Errorf("Filter(100) = %v, want %v", got, want)
	}
}

func TestSimplifyDPClosed(t *testing.T) {
	p := pathHelper(t)
	path := p(0, 0, 4, 0, 4, 4, 0, 4, 0, 0)
	d := SimplifyDP(path.V)
	// The chord of a closed path has no length; the farthest
	// point from the shared endpoint splits first.
	if got, want := d[2], math.Hypot(4, 4); got != want {
		t.Errorf("persistence of opposite corner = %v, want %v", got, want)
	}
	if got := Filter(path.V, d, 1); !reflect.DeepEqual(got, path.V) {
		t.Errorf("Filter(1) = %v, want %v", got, path.V)
	}
}

func TestSimplifyDPShort(t *testing.T) {
	p := pathHelper(t)
	for _, path := range []Path{p(), p(1, 1), p(1, 1, 2, 2)} {
		d := SimplifyDP(path.V)
		if len(d) != len(path.V) {
			t.Fatalf("SimplifyDP(%v) has %d values", path.V, len(d))
		}
		for _, x := range d {
			if !math.IsInf(x, 1) {
				t.Errorf("SimplifyDP(%v) = %v, want all endpoints", path.V, d)
			}
		}
	}
}

// isSubsequence reports whether a appears in order within b.
func isSubsequence(a, b []Vec2) bool {
	j := 0
	for _, x := range b {
		if j < len(a) && a[j] == x {
			j++
		}
	}
	return j == len(a)
}
