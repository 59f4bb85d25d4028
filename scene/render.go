package scene

import (
	"fmt"
	"io"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/paulhankin/optosketch/paths"
)

// arrow is the size of the heads drawn at the ends of a lens.
const arrow = 8

// Shape returns the paths that draw it. Points are single-vertex
// paths. Lenses get arrowheads at both ends, pointing out for a
// converging lens and in for a diverging one.
func Shape(it Item) []paths.Path {
	switch it.Kind {
	case ItemBaseline:
		return []paths.Path{{V: []paths.Vec2{{-it.Span, it.Y}, {it.Span, it.Y}}}}
	case ItemLens:
		top, bot := paths.Vec2{it.X, it.Y - it.Span}, paths.Vec2{it.X, it.Y + it.Span}
		h := float64(arrow)
		if it.Focal < 0 {
			h = -h
		}
		return []paths.Path{
			{V: []paths.Vec2{top, bot}},
			{V: []paths.Vec2{{it.X - arrow, top[1] + h}, top, {it.X + arrow, top[1] + h}}},
			{V: []paths.Vec2{{it.X - arrow, bot[1] - h}, bot, {it.X + arrow, bot[1] - h}}},
		}
	}
	if len(it.V) == 0 {
		return nil
	}
	return []paths.Path{{V: it.V}}
}

// clipped returns the shape of it clipped to the scene bounds.
func (s *Scene) clipped(it Item) []paths.Path {
	var r []paths.Path
	for _, p := range Shape(it) {
		r = append(r, p.Clip(s.Bounds)...)
	}
	return r
}

func trimFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// SVG writes the scene as an SVG document, one group per item.
func (s *Scene) SVG(w io.Writer) error {
	var layers []paths.Layer
	for _, it := range s.Items() {
		l := lookOf(it)
		layers = append(layers, paths.Layer{
			Style: paths.Style{Stroke: l.color.Hex(), Width: l.width, Dash: l.dashString()},
			P:     s.clipped(it),
		})
	}
	return paths.WriteSVG(w, s.Bounds, layers)
}

// PDF writes the scene as a single page PDF, one point per scene unit.
func (s *Scene) PDF(w io.Writer) error {
	sz := s.Bounds.Size()
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: sz[0], Ht: sz[1]},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	org := s.Bounds.Min
	for _, it := range s.Items() {
		l := lookOf(it)
		r, g, b := l.color.RGB255()
		pdf.SetDrawColor(int(r), int(g), int(b))
		pdf.SetFillColor(int(r), int(g), int(b))
		pdf.SetLineWidth(l.width)
		pdf.SetDashPattern(l.dash, 0)
		for _, p := range s.clipped(it) {
			if len(p.V) == 1 {
				v := p.V[0].Sub(org)
				pdf.Circle(v[0], v[1], l.width, "F")
				continue
			}
			for i := 1; i < len(p.V); i++ {
				a, b := p.V[i-1].Sub(org), p.V[i].Sub(org)
				pdf.Line(a[0], a[1], b[0], b[1])
			}
		}
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("scene: pdf: %w", err)
	}
	return nil
}
