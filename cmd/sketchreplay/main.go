// Command sketchreplay pushes the strokes of an SVG file through the
// recognition engine and writes the recognised diagram.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/paulhankin/optosketch/cmd/sketchreplay/replay"
	"github.com/paulhankin/optosketch/engine"
	"github.com/paulhankin/optosketch/paths"
)

type flagSizeValue paths.Vec2

func (fs *flagSizeValue) String() string {
	return fmt.Sprintf("%.2f,%.2f", fs[0], fs[1])
}

func parseSizePart(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if len(s) == 0 {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func (fs *flagSizeValue) Set(s string) error {
	var err error
	parts := strings.Split(s, ",")
	if len(parts) == 1 {
		fs[0], err = parseSizePart(parts[0])
		return err
	}
	if len(parts) > 2 {
		return fmt.Errorf("can't parse %q as size", s)
	}
	if fs[0], err = parseSizePart(parts[0]); err != nil {
		return err
	}
	if fs[1], err = parseSizePart(parts[1]); err != nil {
		return err
	}
	return nil
}

var (
	cfg        replay.Config
	flagSize   flagSizeValue
	flagConfig string
	flagV      bool
)

func init() {
	flag.StringVar(&cfg.In, "in", "", "svg file of strokes, one path per stroke")
	flag.StringVar(&cfg.Out, "out", "out.svg", "diagram output file (.svg or .pdf)")
	flag.Var(&flagSize, "size", "scale the strokes to this size, centered in the view")
	flag.BoolVar(&cfg.Drawing, "drawing", false, "read the input with the full SVG drawing parser")
	flag.StringVar(&flagConfig, "config", "", "TOML file of recognition thresholds")
	flag.BoolVar(&flagV, "v", false, "log recognition details")
}

func loadConfig(name string) (engine.Config, error) {
	if name == "" {
		return engine.DefaultConfig(), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return engine.Config{}, err
	}
	defer f.Close()
	return engine.LoadConfig(f)
}

func main() {
	fail := func(s string, args ...interface{}) {
		fmt.Fprintf(os.Stderr, s+"\n", args...)
		os.Exit(2)
	}

	flag.Parse()
	if cfg.In == "" {
		fail("must specify -in <svg file>")
	}
	var err error
	if cfg.Engine, err = loadConfig(flagConfig); err != nil {
		fail("%v", err)
	}
	cfg.Size = paths.Vec2(flagSize)
	w := io.Discard
	if flagV {
		w = os.Stderr
	}
	cfg.Log = log.New(w, "", log.Lshortfile)

	content, err := replay.Run(&cfg)
	if err != nil {
		fail("%v", err)
	}
	fmt.Print(content)
}
