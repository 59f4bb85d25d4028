package descriptor

import (
	"math"
	"sort"

	"github.com/paulhankin/optosketch/paths"
)

// At returns the point at arc length l along the stroke. l is
// clamped to [0, Length].
func (d *Descriptor) At(l float64) paths.Vec2 {
	i := sort.SearchFloat64s(d.CumLength, l)
	if i == 0 {
		return d.V[0]
	}
	if i >= len(d.CumLength) {
		return d.V[len(d.V)-1]
	}
	if d.CumLength[i] == l {
		return d.V[i]
	}
	t := (l - d.CumLength[i-1]) / d.Lengths[i-1]
	return d.V[i-1].Add(d.Vectors[i-1].Scale(t))
}

// ResampleAt returns the points at each of the given arc lengths.
func (d *Descriptor) ResampleAt(lengths []float64) []paths.Vec2 {
	r := make([]paths.Vec2, len(lengths))
	for i, l := range lengths {
		r[i] = d.At(l)
	}
	return r
}

// Resample returns n points spread evenly along the stroke,
// including both ends. n is raised to 2 if smaller.
func (d *Descriptor) Resample(n int) []paths.Vec2 {
	if n < 2 {
		n = 2
	}
	ls := make([]float64, n)
	for i := range ls {
		ls[i] = d.Length * float64(i) / float64(n-1)
	}
	ls[n-1] = d.Length
	return d.ResampleAt(ls)
}

// Extract returns the part of the stroke between arc lengths l1 and
// l2, with interpolated end points. The lengths are clamped so that
// 0 <= l1 <= l2 <= Length.
func (d *Descriptor) Extract(l1, l2 float64) []paths.Vec2 {
	l1 = math.Max(0, math.Min(l1, d.Length))
	l2 = math.Max(l1, math.Min(l2, d.Length))
	r := []paths.Vec2{d.At(l1)}
	i := sort.SearchFloat64s(d.CumLength, l1)
	for ; i < len(d.V)-1 && d.CumLength[i] < l2; i++ {
		if d.CumLength[i] > l1 {
			r = append(r, d.V[i])
		}
	}
	return append(r, d.At(l2))
}

// Corners finds the corners of the stroke resampled to n points,
// using short straws: the chord across a window of w points either
// side of each point shortens at a corner. Each run of straws below
// StrawFactor times the median contributes its shortest straw. The
// first and last points are always included.
func (d *Descriptor) Corners(n, w int) []paths.Vec2 {
	r := d.Resample(n)
	if w < 1 || len(r) <= 2*w {
		return []paths.Vec2{r[0], r[len(r)-1]}
	}
	straws := make([]float64, len(r))
	for i := w; i < len(r)-w; i++ {
		straws[i] = r[i-w].Dist(r[i+w])
	}
	t := median(straws[w:len(r)-w]) * d.P.StrawFactor

	corners := []paths.Vec2{r[0]}
	for i := w; i < len(r)-w; i++ {
		if straws[i] >= t {
			continue
		}
		best := i
		for ; i < len(r)-w && straws[i] < t; i++ {
			if straws[i] < straws[best] {
				best = i
			}
		}
		corners = append(corners, r[best])
	}
	return append(corners, r[len(r)-1])
}

func median(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	s := append([]float64(nil), x...)
	sort.Float64s(s)
	m := len(s) / 2
	if len(s)%2 == 1 {
		return s[m]
	}
	return (s[m-1] + s[m]) / 2
}
