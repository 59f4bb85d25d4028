package engine

import (
	"fmt"
	"io"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/paulhankin/optosketch/descriptor"
)

// Config holds the recognition thresholds. Distances are in scene
// units; the scene's origin is the middle of the drawing area.
type Config struct {
	descriptor.Params

	// SimplifyTolerance is the Douglas-Peucker threshold of the
	// stroke the scratch detector and the fallback rendering use.
	SimplifyTolerance float64 `toml:"simplify_tolerance"`

	// A baseline gesture must reach left of -BaselineReach and right
	// of BaselineReach. It is displayed from -BaselineSpan to BaselineSpan.
	BaselineReach float64 `toml:"baseline_reach"`
	BaselineSpan  float64 `toml:"baseline_span"`

	// Both ends of a lens gesture must be further than LensClearance
	// from the baseline, on opposite sides.
	LensClearance float64 `toml:"lens_clearance"`
	LensSpan      float64 `toml:"lens_span"`
	// New lenses alternate between DefaultFocal and -DefaultFocal.
	DefaultFocal float64 `toml:"default_focal"`

	// A ray gesture must end within RaySnap (horizontally) of a lens.
	RaySnap float64 `toml:"ray_snap"`

	ScratchMinSpan float64 `toml:"scratch_min_span"`
	// ScratchZigZag is the smallest difference between the summed
	// absolute turns and the absolute summed turns of a scratch.
	ScratchZigZag float64 `toml:"scratch_zigzag"`
	// End runs of turning count as arcs when they turn by more than
	// the median interior run divided by ScratchEndRun.
	ScratchEndRun  float64 `toml:"scratch_end_run"`
	ScratchMinArcs int     `toml:"scratch_min_arcs"`
	// An object is deleted by a scratch that crosses it more than
	// ScratchMinCrossings times.
	ScratchMinCrossings int `toml:"scratch_min_crossings"`
}

// DefaultConfig returns thresholds tuned for a drawing area of
// roughly 1000x600 units.
func DefaultConfig() Config {
	return Config{
		Params:              descriptor.DefaultParams(),
		SimplifyTolerance:   1,
		BaselineReach:       270,
		BaselineSpan:        300,
		LensClearance:       40,
		LensSpan:            70,
		DefaultFocal:        50,
		RaySnap:             50,
		ScratchMinSpan:      17,
		ScratchZigZag:       3.8,
		ScratchEndRun:       1.5,
		ScratchMinArcs:      4,
		ScratchMinCrossings: 2,
	}
}

// LoadConfig reads TOML from r over the defaults. Keys that don't
// name a threshold are an error.
func LoadConfig(r io.Reader) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.NewDecoder(r).Decode(&cfg)
	if err != nil {
		return Config{}, fmt.Errorf("engine: config: %w", err)
	}
	if und := md.Undecoded(); len(und) > 0 {
		keys := make([]string, len(und))
		for i, k := range und {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return Config{}, fmt.Errorf("engine: config: unknown keys %v", keys)
	}
	return cfg, nil
}
