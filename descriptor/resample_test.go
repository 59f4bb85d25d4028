package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulhankin/optosketch/paths"
)

func TestAt(t *testing.T) {
	d, err := New(pts(0, 0, 10, 0, 10, 10))
	require.NoError(t, err)

	cases := []struct {
		l    float64
		want paths.Vec2
	}{
		{-5, paths.Vec2{0, 0}},
		{0, paths.Vec2{0, 0}},
		{2.5, paths.Vec2{2.5, 0}},
		{10, paths.Vec2{10, 0}},
		{15, paths.Vec2{10, 5}},
		{20, paths.Vec2{10, 10}},
		{25, paths.Vec2{10, 10}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, d.At(c.l), "At(%v)", c.l)
	}
}

func TestResample(t *testing.T) {
	d, err := New(pts(0, 0, 10, 0, 10, 10))
	require.NoError(t, err)
	assert.Equal(t, pts(0, 0, 5, 0, 10, 0, 10, 5, 10, 10), d.Resample(5))
	assert.Equal(t, pts(0, 0, 10, 10), d.Resample(1))
	assert.Equal(t, pts(10, 2, 1, 0), d.ResampleAt([]float64{12, 1}))
}

func TestExtract(t *testing.T) {
	d, err := New(pts(0, 0, 10, 0, 10, 10, 0, 10))
	require.NoError(t, err)

	assert.Equal(t, pts(5, 0, 10, 0, 10, 10, 5, 10), d.Extract(5, 25))
	assert.Equal(t, pts(2, 0, 4, 0), d.Extract(2, 4))
	assert.Equal(t, pts(10, 0, 10, 10), d.Extract(10, 20))
	// Out of range lengths are clamped.
	assert.Equal(t, pts(0, 0, 10, 0, 10, 10, 0, 10), d.Extract(-3, 99))
}

func TestExtractWholeStroke(t *testing.T) {
	strokes := [][]paths.Vec2{
		pts(0, 0, 1, 0),
		pts(0, 0, 0.1, 0.3, 0.7, 0.2, 1.3, 1.9, 2.2, 0.4),
		circle(paths.Vec2{1, 2}, 7, 40),
		pts(0, 0, 5, 5, 5, 5, 9, 1),
	}
	for _, v := range strokes {
		d, err := New(v)
		require.NoError(t, err)
		got := d.Extract(0, d.Length)
		assert.Equal(t, v[0], got[0])
		assert.Equal(t, v[len(v)-1], got[len(got)-1])
	}
}

func TestCorners(t *testing.T) {
	d, err := New(pts(0, 100, 0, 0, 100, 0))
	require.NoError(t, err)
	c := d.Corners(64, 3)
	require.Len(t, c, 3)
	assert.Equal(t, paths.Vec2{0, 100}, c[0])
	assert.InDelta(t, 0, c[1].Dist(paths.Vec2{0, 0}), 2)
	assert.Equal(t, paths.Vec2{100, 0}, c[2])

	straight, err := New(pts(0, 0, 100, 0))
	require.NoError(t, err)
	assert.Len(t, straight.Corners(64, 3), 2)
}
