// Package replay provides the functionality for the sketchreplay
// binary as a library: strokes read from an SVG file are pushed
// through the recognition engine, one path per stroke, and the
// resulting diagram is written out.
package replay

import (
	"fmt"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"

	"github.com/paulhankin/optosketch/engine"
	"github.com/paulhankin/optosketch/paths"
	"github.com/paulhankin/optosketch/scene"
)

type Config struct {
	In  string
	Out string

	// Size, if set, scales the strokes to that size and centers
	// them in the scene view. One of the two may be zero to keep
	// the aspect ratio. Otherwise SVG units are scene units.
	Size paths.Vec2
	// Drawing reads the input with the drawing instruction parser,
	// which understands more of SVG but ignores the view box.
	Drawing bool

	Engine engine.Config
	Log    *log.Logger
}

func adjustSize(sz paths.Vec2, view, b paths.Bounds) (paths.Bounds, error) {
	if sz[0] == 0 && sz[1] == 0 {
		return b, nil
	}
	ow := b.Max[0] - b.Min[0]
	oh := b.Max[1] - b.Min[1]
	if ow <= 0 || oh <= 0 {
		return paths.Bounds{}, fmt.Errorf("can't scale strokes with bounds %g,%g", ow, oh)
	}
	if sz[1] == 0 {
		sz[1] = sz[0] * oh / ow
	} else if sz[0] == 0 {
		sz[0] = sz[1] * ow / oh
	}

	if !(math.Abs(sz[0]/sz[1]-ow/oh) < 1e-3) {
		return paths.Bounds{}, fmt.Errorf("target size %g,%g not compatible with stroke bounds %g,%g", sz[0], sz[1], ow, oh)
	}
	vs := view.Size()
	if sz[0] > vs[0] || sz[1] > vs[1] {
		return paths.Bounds{}, fmt.Errorf("view %g,%g is smaller than target size %g,%g", vs[0], vs[1], sz[0], sz[1])
	}

	c := view.Center()
	half := sz.Scale(0.5)
	return paths.Bounds{Min: c.Sub(half), Max: c.Add(half)}, nil
}

func readStrokes(cfg *Config) (*paths.Paths, error) {
	f, err := os.Open(cfg.In)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if cfg.Drawing {
		return paths.FromSVGDrawing(f)
	}
	return paths.FromSVG(f)
}

// Run replays the strokes of cfg.In and writes the diagram to
// cfg.Out, as SVG or PDF depending on its extension. It returns the
// engine's description of the diagram.
func Run(cfg *Config) (string, error) {
	if cfg.In == "" {
		return "", fmt.Errorf("input file must be specified")
	}
	var write func(*scene.Scene, io.Writer) error
	switch filepath.Ext(cfg.Out) {
	case ".svg":
		write = (*scene.Scene).SVG
	case ".pdf":
		write = (*scene.Scene).PDF
	default:
		return "", fmt.Errorf("output file %q must be .svg or .pdf", cfg.Out)
	}
	logger := cfg.Log
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	ps, err := readStrokes(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to read strokes: %w", err)
	}
	bounds, err := adjustSize(cfg.Size, scene.View, ps.Bounds)
	if err != nil {
		return "", err
	}
	if bounds != ps.Bounds {
		ps.Transform(bounds)
	}

	sc := scene.New()
	e := engine.New(cfg.Engine, engine.WithLogger(logger))
	e.Attach(sc)
	for i, p := range ps.P {
		r, err := e.PushStroke(p.V)
		if err != nil {
			return "", fmt.Errorf("stroke %d: %w", i, err)
		}
		logger.Printf("[replay] stroke %d: %v", i, r.Kind)
	}

	out, err := os.Create(cfg.Out)
	if err != nil {
		return "", fmt.Errorf("failed to open output file: %w", err)
	}
	if err := write(sc, out); err != nil {
		out.Close()
		return "", fmt.Errorf("failed to write %s: %w", cfg.Out, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", cfg.Out, err)
	}
	return e.Content(), nil
}
