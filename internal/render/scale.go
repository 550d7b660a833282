package render

import (
	"fmt"
	"math"
)

// Scale chooses how field values are mapped onto [0, 1].
type Scale int

const (
	// MinMax stretches [min, max] of the field over the palette.
	MinMax Scale = iota
	// Symmetric maps [-max|ω|, max|ω|] so zero lands mid-palette.
	Symmetric
)

func ParseScale(s string) (Scale, error) {
	switch s {
	case "", "minmax":
		return MinMax, nil
	case "symmetric", "signed":
		return Symmetric, nil
	}
	return MinMax, fmt.Errorf("unknown scale %q", s)
}

// Normalize returns the function mapping values of f onto [0, 1]. A flat
// field maps to 0.5.
func Normalize(f []float64, s Scale) func(float64) float64 {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range f {
		if math.IsNaN(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	if s == Symmetric {
		m := math.Max(math.Abs(lo), math.Abs(hi))
		lo, hi = -m, m
	}
	span := hi - lo
	if !(span > 0) || math.IsInf(span, 0) {
		return func(float64) float64 { return 0.5 }
	}
	return func(v float64) float64 { return (v - lo) / span }
}
