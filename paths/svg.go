package paths

import (
	"bufio"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"text/scanner"

	"github.com/JoshVarga/svgparser"
	"golang.org/x/net/html/charset"
)

// parseBounds reads the view bounds of the document. A viewBox wins
// over width and height, which may carry a "px" suffix.
func parseBounds(e *svgparser.Element) (Bounds, error) {
	if vb := e.Attributes["viewBox"]; vb != "" {
		f, err := parseFloats(strings.FieldsFunc(vb, isListSep))
		if err != nil {
			return Bounds{}, fmt.Errorf("bad viewBox %q: %w", vb, err)
		}
		if len(f) != 4 {
			return Bounds{}, fmt.Errorf("bad viewBox %q: want 4 numbers", vb)
		}
		return Bounds{Min: Vec2{f[0], f[1]}, Max: Vec2{f[0] + f[2], f[1] + f[3]}}, nil
	}
	width, werr := strconv.ParseFloat(strings.TrimSuffix(e.Attributes["width"], "px"), 64)
	height, herr := strconv.ParseFloat(strings.TrimSuffix(e.Attributes["height"], "px"), 64)
	if werr != nil {
		return Bounds{}, werr
	}
	if herr != nil {
		return Bounds{}, herr
	}
	return Bounds{
		Max: Vec2{width, height},
	}, nil
}

func isListSep(r rune) bool {
	return r == ',' || r == ' ' || r == '\t' || r == '\n' || r == '\r'
}

func parseLine(ps *Paths, xform *svgXform, e *svgparser.Element) error {
	var ferr error
	pf := func(s string) float64 {
		if ferr != nil {
			return 0
		}
		f, err := strconv.ParseFloat(s, 64)
		ferr = err
		return f
	}
	x1 := pf(e.Attributes["x1"])
	x2 := pf(e.Attributes["x2"])
	y1 := pf(e.Attributes["y1"])
	y2 := pf(e.Attributes["y2"])
	ps.move(xform.Apply(Vec2{x1, y1}))
	ps.line(xform.Apply(Vec2{x2, y2}))
	return ferr
}

// parsePolyline reads the points attribute of a polyline element
// as a single path.
func parsePolyline(ps *Paths, xform *svgXform, e *svgparser.Element) error {
	f, err := parseFloats(strings.FieldsFunc(e.Attributes["points"], isListSep))
	if err != nil {
		return err
	}
	if len(f)%2 != 0 {
		return fmt.Errorf("polyline has an odd number of coordinates: %d", len(f))
	}
	if len(f) == 0 {
		return nil
	}
	path := Path{}
	for i := 0; i < len(f); i += 2 {
		path.V = append(path.V, xform.Apply(Vec2{f[i], f[i+1]}))
	}
	ps.P = append(ps.P, path)
	return nil
}

type xformScannerState int

const (
	xfsName xformScannerState = 1 + iota
	xfsBra
	xfsMaybeComma
	xfsArg
)

func parseFloats(a []string) ([]float64, error) {
	var r []float64
	for _, x := range a {
		f, err := strconv.ParseFloat(x, 64)
		if err != nil {
			return nil, err
		}
		r = append(r, f)
	}
	return r, nil
}

func svgXformTranslate(x, y float64) *svgXform {
	return &svgXform{
		M: [3][3]float64{
			{1, 0, x},
			{0, 1, y},
			{0, 0, 1},
		},
	}
}

func svgXformScale(x, y float64) *svgXform {
	return &svgXform{
		M: [3][3]float64{
			{x, 0, 0},
			{0, y, 0},
			{0, 0, 1},
		},
	}
}

func parseSingleXform(name string, args []string) (*svgXform, error) {
	switch name {
	case "translate":
		fa, err := parseFloats(args)
		if err != nil {
			return nil, err
		}
		if len(fa) != 1 && len(fa) != 2 {
			return nil, fmt.Errorf("translate should have one or two parameters: got %s", args)
		}
		if len(fa) == 1 {
			fa = append(fa, 0)
		}
		return svgXformTranslate(fa[0], fa[1]), nil
	case "scale":
		fa, err := parseFloats(args)
		if err != nil {
			return nil, err
		}
		if len(fa) != 1 && len(fa) != 2 {
			return nil, fmt.Errorf("scale should have one or two parameters: got %s", args)
		}
		if len(fa) == 1 {
			fa = append(fa, fa[0])
		}
		return svgXformScale(fa[0], fa[1]), nil
	default:
		return nil, fmt.Errorf("unknown transform function %q", name)
	}
}

func parseSVGXForm(x string) (*svgXform, error) {
	var s scanner.Scanner
	xf := svgIdentity
	s.Init(strings.NewReader(x))
	state := xfsName
	fname := ""
	var args []string
	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		switch state {
		case xfsName:
			if tok != scanner.Ident {
				return nil, fmt.Errorf("failed to parse transform: expected transform name, but got %q", s.TokenText())
			}
			fname = s.TokenText()
			state = xfsBra
		case xfsBra:
			if tok != '(' {
				return nil, fmt.Errorf("failed to parse transform: expected (, but got %q", s.TokenText())
			}
			state = xfsArg
		case xfsMaybeComma:
			if tok == ',' {
				continue
			}
			fallthrough
		case xfsArg:
			if tok == ')' {
				newxform, err := parseSingleXform(fname, args)
				if err != nil {
					return nil, err
				}
				xf = xf.Compose(newxform)
				state = xfsName
				args = nil
			} else if tok == scanner.Float || tok == scanner.Int {
				args = append(args, s.TokenText())
				state = xfsMaybeComma
			} else {
				return nil, fmt.Errorf("unexpected token %q parsing transform %q", s.TokenText(), x)
			}
		}
	}
	if state != xfsName {
		return nil, fmt.Errorf("failed to parse transform: %q", x)
	}
	return xf, nil
}

// pathTokens splits path data into command letters and numbers.
// Numbers may run together where a sign or a second decimal point
// starts the next one, as in "l5-5" or "0.5.5".
func pathTokens(d string) []string {
	var toks []string
	start := -1
	dot := false
	flush := func(i int) {
		if start >= 0 {
			toks = append(toks, d[start:i])
			start = -1
		}
	}
	for i := 0; i < len(d); i++ {
		c := d[i]
		switch {
		case isListSep(rune(c)):
			flush(i)
		case c == '-' || c == '+':
			if start >= 0 && (d[i-1] == 'e' || d[i-1] == 'E') {
				continue
			}
			flush(i)
			start, dot = i, false
		case c == '.':
			if start >= 0 && dot {
				flush(i)
			}
			if start < 0 {
				start = i
			}
			dot = true
		case c >= '0' && c <= '9':
			if start < 0 {
				start, dot = i, false
			}
		case (c == 'e' || c == 'E') && start >= 0:
			// exponent
		default:
			flush(i)
			toks = append(toks, d[i:i+1])
		}
	}
	flush(len(d))
	return toks
}

// parsePath reads the d attribute of a path element. Only straight
// segments are understood: M, L, H, V and Z in absolute and relative
// forms, with coordinates after a move taken as implicit lines.
func parsePath(ps *Paths, xf *svgXform, e *svgparser.Element) error {
	var (
		cmd        byte
		args       []float64
		cur, start Vec2
		moved      bool
		closed     bool
	)
	lineTo := func(p Vec2) {
		if closed {
			ps.P = append(ps.P, Path{V: []Vec2{xf.Apply(start)}})
			closed = false
		}
		last := &ps.P[len(ps.P)-1]
		last.V = append(last.V, xf.Apply(p))
		cur = p
	}
	for _, tok := range pathTokens(e.Attributes["d"]) {
		if c := tok[0]; len(tok) == 1 && (c < '0' || c > '9') && c != '.' && c != '-' && c != '+' {
			if len(args) != 0 {
				return fmt.Errorf("got stray component before %s", tok)
			}
			switch c {
			case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v':
				cmd = c
			case 'Z', 'z':
				if !moved {
					return fmt.Errorf("close before any move in path")
				}
				if last := ps.P[len(ps.P)-1].V; !closed && last[len(last)-1] != xf.Apply(start) {
					lineTo(start)
				}
				cur, closed = start, true
				cmd = c
			default:
				return fmt.Errorf("unsupported path command %q", tok)
			}
			continue
		}
		x, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return err
		}
		if cmd == 0 || cmd == 'Z' || cmd == 'z' {
			return fmt.Errorf("coordinate %s outside any path command", tok)
		}
		args = append(args, x)
		rel := cmd >= 'a'
		switch cmd {
		case 'M', 'm', 'L', 'l':
			if len(args) < 2 {
				continue
			}
			p := Vec2{args[0], args[1]}
			if rel {
				p = cur.Add(p)
			}
			if cmd == 'M' || cmd == 'm' {
				ps.P = append(ps.P, Path{V: []Vec2{xf.Apply(p)}})
				cur, start = p, p
				moved, closed = true, false
				if rel {
					cmd = 'l'
				} else {
					cmd = 'L'
				}
			} else {
				if !moved {
					return fmt.Errorf("line before any move in path")
				}
				lineTo(p)
			}
		case 'H', 'h', 'V', 'v':
			if !moved {
				return fmt.Errorf("line before any move in path")
			}
			p := cur
			i := 0
			if cmd == 'V' || cmd == 'v' {
				i = 1
			}
			if rel {
				p[i] += x
			} else {
				p[i] = x
			}
			lineTo(p)
		}
		args = args[:0]
	}
	if len(args) != 0 {
		return fmt.Errorf("got stray component in path")
	}
	return nil
}

type svgXform struct {
	M [3][3]float64
}

func (xf *svgXform) Compose(xf2 *svgXform) *svgXform {
	var a svgXform
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				a.M[i][k] += xf.M[i][j] * xf2.M[j][k]
			}
		}
	}
	return &a
}

func (xf *svgXform) Apply(v Vec2) Vec2 {
	x := [3]float64{v[0], v[1], 1.0}
	var r [3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i] += xf.M[i][j] * x[j]
		}
	}
	return Vec2{r[0] / r[2], r[1] / r[2]}
}

var svgIdentity = &svgXform{
	M: [3][3]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
}

func parsePaths(p *Paths, xform *svgXform, e *svgparser.Element) error {
	for _, c := range e.Children {
		switch c.Name {
		case "g":
			gxf, err := parseSVGXForm(c.Attributes["transform"])
			if err != nil {
				return err
			}
			xf2 := xform.Compose(gxf)
			if err := parsePaths(p, xf2, c); err != nil {
				return err
			}
		case "path":
			if err := parsePath(p, xform, c); err != nil {
				return err
			}
		case "line":
			if err := parseLine(p, xform, c); err != nil {
				return err
			}
		case "polyline":
			if err := parsePolyline(p, xform, c); err != nil {
				return err
			}
		case "defs", "circle", "title", "desc":
			continue
		default:
			log.Printf("[svg] unknown child node type %q", c.Name)
		}
	}
	return nil
}

// FromSVG parses an SVG file, extracting paths.
// This provides only limited SVG parsing support, and
// will fail or produce incorrect results if the SVG file
// uses features that it doesn't understand.
func FromSVG(r io.Reader) (p *Paths, rerr error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	decoder := xml.NewDecoder(bytes.NewReader(raw))
	decoder.CharsetReader = charset.NewReaderLabel
	elt, err := svgparser.DecodeFirst(decoder)
	if err != nil {
		return nil, err
	}
	if err := elt.Decode(decoder); err != nil && err != io.EOF {
		return nil, err
	}
	bs, err := parseBounds(elt)
	if err != nil {
		return nil, err
	}
	p = &Paths{Bounds: bs}
	return p, parsePaths(p, svgIdentity, elt)
}

var (
	svgh = `<svg height="%d" width="%d" viewBox="%d %d %d %d" version="1.1" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">`
)

// Style describes how the paths of a Layer are stroked.
type Style struct {
	Stroke string // any SVG colour, eg "black" or "#ff8800"
	Width  float64
	Dash   string // stroke-dasharray; empty for a solid line
}

// A Layer is a group of paths drawn in one style. Paths with a
// single vertex are drawn as dots with the stroke width as radius.
type Layer struct {
	Style Style
	P     []Path
}

// SVG writes an SVG file that contains black strokes along the paths.
func (ps *Paths) SVG(w io.Writer) error {
	return WriteSVG(w, ps.Bounds, []Layer{{
		Style: Style{Stroke: "black", Width: 0.1},
		P:     ps.P,
	}})
}

// WriteSVG writes the layers, in order, as an SVG document viewing
// the bounds b.
func WriteSVG(w io.Writer, b Bounds, layers []Layer) error {
	var werr error
	bi := bufio.NewWriter(w)
	wr := func(f string, args ...interface{}) {
		if werr != nil {
			return
		}
		_, werr = fmt.Fprintf(bi, f, args...)
	}
	sz := b.Size()
	wr(svgh, int(sz[1]), int(sz[0]), int(b.Min[0]), int(b.Min[1]), int(sz[0]), int(sz[1]))
	wr("\n")
	for _, l := range layers {
		wr("<g fill=\"none\" stroke=\"%s\" stroke-width=\"%g\"", l.Style.Stroke, l.Style.Width)
		if l.Style.Dash != "" {
			wr(" stroke-dasharray=\"%s\"", l.Style.Dash)
		}
		wr(">\n")
		for _, p := range l.P {
			switch len(p.V) {
			case 0:
				continue
			case 1:
				wr("<circle cx=\"%.2f\" cy=\"%.2f\" r=\"%g\" fill=\"%s\"/>\n", p.V[0][0], p.V[0][1], l.Style.Width, l.Style.Stroke)
				continue
			}
			wr(`<path d="`)
			for i, v := range p.V {
				if i == 0 {
					wr("M %.2f, %.2f", v[0], v[1])
				} else {
					wr(" %.2f, %.2f", v[0], v[1])
				}
			}
			wr("\"/>\n")
		}
		wr("</g>\n")
	}
	wr("</svg>")
	if werr == nil {
		werr = bi.Flush()
	}
	return werr
}
