package descriptor

// Params holds the thresholds of the shape detectors. The zero value
// is not useful; start from DefaultParams.
type Params struct {
	// PointMax bounds span.max*span.mean/length for a point.
	PointMax float64 `toml:"point_max"`

	// StraightTolerance is the simplification threshold applied
	// before measuring straightness, and StraightRatio the largest
	// simplified-length to end-to-end ratio of a straight line.
	StraightTolerance float64 `toml:"straight_tolerance"`
	StraightRatio     float64 `toml:"straight_ratio"`

	// AxisRatio is how far a line may lean and still be horizontal
	// or vertical, as |minor delta| / |major delta|.
	AxisRatio float64 `toml:"axis_ratio"`
	// A line is diagonal when DiagonalMin < |dx|/|dy| < DiagonalMax.
	DiagonalMin float64 `toml:"diagonal_min"`
	DiagonalMax float64 `toml:"diagonal_max"`

	// ClosedFraction is the share of the length, at the opposite end,
	// that each endpoint is compared with. ClosedRatio is the largest
	// distance, in percent of the minor principal span, of a closed stroke.
	ClosedFraction float64 `toml:"closed_fraction"`
	ClosedRatio    float64 `toml:"closed_ratio"`

	// StrawFactor scales the median straw into the corner threshold.
	StrawFactor float64 `toml:"straw_factor"`
}

// DefaultParams returns the thresholds tuned for pen input in
// scene units.
func DefaultParams() Params {
	return Params{
		PointMax:          5,
		StraightTolerance: 1,
		StraightRatio:     1.03,
		AxisRatio:         0.2,
		DiagonalMin:       0.8,
		DiagonalMax:       1.2,
		ClosedFraction:    0.2,
		ClosedRatio:       8,
		StrawFactor:       0.95,
	}
}
