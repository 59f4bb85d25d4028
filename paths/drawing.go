package paths

import (
	"fmt"
	"io"

	"github.com/rustyoz/svg"
)

// FromSVGDrawing reads an SVG document through its drawing
// instructions, which covers far more of SVG than FromSVG (paths
// with relative commands, rects, nested transforms) at the cost of
// losing the document bounds. Curves are reduced to their end
// points. The returned bounds are tight around the paths.
func FromSVGDrawing(r io.Reader) (*Paths, error) {
	doc, err := svg.ParseSvgFromReader(r, "", 1.0)
	if err != nil {
		return nil, err
	}
	ps := &Paths{}
	var start Vec2
	dis, errs := doc.ParseDrawingInstructions()
	// Both channels are read to the end so the parser's goroutines
	// can finish, even once an error has been found.
	for di := range dis {
		if err != nil {
			continue
		}
		switch di.Kind {
		case svg.MoveInstruction:
			start = Vec2{di.M[0], di.M[1]}
			ps.move(start)
		case svg.LineInstruction:
			if len(ps.P) == 0 {
				err = fmt.Errorf("line instruction before any move")
				continue
			}
			ps.line(Vec2{di.M[0], di.M[1]})
		case svg.CurveInstruction:
			if len(ps.P) == 0 {
				err = fmt.Errorf("curve instruction before any move")
				continue
			}
			if di.CurvePoints != nil && di.CurvePoints.T != nil {
				ps.line(Vec2{di.CurvePoints.T[0], di.CurvePoints.T[1]})
			}
		case svg.CloseInstruction:
			if len(ps.P) > 0 {
				ps.line(start)
			}
		}
	}
	for e := range errs {
		if err == nil {
			err = e
		}
	}
	if err != nil {
		return nil, err
	}
	ps.TightenBounds()
	return ps, nil
}
