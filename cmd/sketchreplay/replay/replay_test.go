package replay

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paulhankin/optosketch/engine"
	"github.com/paulhankin/optosketch/paths"
	"github.com/paulhankin/optosketch/scene"
)

const strokes = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="-500 -300 1000 600">
<polyline points="-400,0 -200,0 0,0 200,0 400,0"/>
<polyline points="30,-60 30,-20 30,20 30,60"/>
<polyline points="-150,25 -100,25 -50,25 -5,25"/>
</svg>`

func TestRun(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "strokes.svg")
	require.NoError(t, os.WriteFile(in, []byte(strokes), 0o644))

	for _, out := range []string{"out.svg", "out.pdf"} {
		cfg := &Config{In: in, Out: filepath.Join(dir, out), Engine: engine.DefaultConfig()}
		content, err := Run(cfg)
		require.NoError(t, err)
		assert.Contains(t, content, "baseline at y=0.00")
		assert.Contains(t, content, "lens at x=30.00")
		assert.Contains(t, content, "1 ray(s)")
		fi, err := os.Stat(cfg.Out)
		require.NoError(t, err)
		assert.NotZero(t, fi.Size())
	}
}

func TestRunErrors(t *testing.T) {
	_, err := Run(&Config{Out: "x.svg"})
	require.Error(t, err)
	_, err = Run(&Config{In: "x.svg", Out: "x.gcode"})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), ".svg or .pdf"))
	_, err = Run(&Config{In: filepath.Join(t.TempDir(), "missing.svg"), Out: "x.svg"})
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestAdjustSize(t *testing.T) {
	b := paths.Bounds{Min: paths.Vec2{0, 0}, Max: paths.Vec2{200, 100}}
	testCases := []struct {
		sz      paths.Vec2
		want    paths.Bounds
		wantErr bool
	}{
		{sz: paths.Vec2{0, 0}, want: b},
		{sz: paths.Vec2{400, 200}, want: paths.Bounds{Min: paths.Vec2{-200, -100}, Max: paths.Vec2{200, 100}}},
		{sz: paths.Vec2{400, 0}, want: paths.Bounds{Min: paths.Vec2{-200, -100}, Max: paths.Vec2{200, 100}}},
		{sz: paths.Vec2{0, 100}, want: paths.Bounds{Min: paths.Vec2{-100, -50}, Max: paths.Vec2{100, 50}}},
		{sz: paths.Vec2{400, 400}, wantErr: true},
		{sz: paths.Vec2{2000, 1000}, wantErr: true},
	}
	for _, tc := range testCases {
		got, err := adjustSize(tc.sz, scene.View, b)
		if tc.wantErr {
			assert.Error(t, err, "size %v", tc.sz)
			continue
		}
		require.NoError(t, err, "size %v", tc.sz)
		assert.Equal(t, tc.want, got, "size %v", tc.sz)
	}
}
