package scene

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

var (
	ink          = mustHex("#202020")
	faint        = mustHex("#9a9a9a")
	loopColor    = mustHex("#2a9d4b")
	crossColor   = mustHex("#e07b00")
	baseColor    = mustHex("#4a4a8a")
	rayColor     = mustHex("#d4a017")
	convergeTint = mustHex("#1f5fbf")
	divergeTint  = mustHex("#bf1f3a")
)

// lensColor is blue for converging lenses and red for diverging
// ones, fading towards grey as the lens gets weaker.
func lensColor(focal float64) colorful.Color {
	c := convergeTint
	if focal < 0 {
		c = divergeTint
	}
	return c.BlendLab(faint, math.Min(math.Abs(focal)/400, 0.8)).Clamped()
}

// A look is how one item is drawn.
type look struct {
	color colorful.Color
	width float64
	dash  []float64
}

func (l look) dashString() string {
	s := ""
	for i, d := range l.dash {
		if i > 0 {
			s += " "
		}
		s += trimFloat(d)
	}
	return s
}

func lookOf(it Item) look {
	switch it.Kind {
	case ItemPoint:
		if it.Style == "intersection" {
			return look{color: crossColor, width: 3}
		}
		return look{color: ink, width: 2}
	case ItemPolyline:
		switch it.Style {
		case "simplified":
			return look{color: faint, width: 1, dash: []float64{4, 2}}
		case "loop":
			return look{color: loopColor, width: 1.5}
		}
		return look{color: ink, width: 1}
	case ItemBaseline:
		return look{color: baseColor, width: 1, dash: []float64{10, 4}}
	case ItemLens:
		return look{color: lensColor(it.Focal), width: 2}
	case ItemRay:
		return look{color: rayColor, width: 1}
	}
	return look{color: ink, width: 1}
}
