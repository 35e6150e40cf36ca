// Package sweep turns a parameter range and a trajectory count into the
// concrete ordered parameter list driven through every backend. The
// generator is pure: identical inputs always produce identical output,
// so independently run backends see byte-identical sweeps.
package sweep

import (
	"errors"
	"fmt"
)

// ErrInvalidCount indicates a non-positive trajectory count.
var ErrInvalidCount = errors.New("trajectory count must be a positive integer")

// Precision selects the numeric precision parameter values are
// generated at. Float32 matches ensembles solved on the device in
// single precision.
type Precision int

const (
	Float64 Precision = iota
	Float32
)

// ParsePrecision maps a config string to a Precision.
func ParsePrecision(s string) (Precision, error) {
	switch s {
	case "", "float64":
		return Float64, nil
	case "float32":
		return Float32, nil
	default:
		return Float64, fmt.Errorf("unknown precision %q (want float32 or float64)", s)
	}
}

// Generate returns count values evenly spaced from lo to hi inclusive,
// one per trajectory. count == 1 yields [lo]. The result is
// monotonically non-decreasing for lo <= hi.
func Generate(lo, hi float64, count int, prec Precision) ([]float64, error) {
	if count < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidCount, count)
	}

	out := make([]float64, count)
	if count == 1 {
		out[0] = round(lo, prec)
		return out, nil
	}

	step := (hi - lo) / float64(count-1)
	for i := range out {
		out[i] = round(lo+float64(i)*step, prec)
	}
	// Endpoints are exact regardless of accumulated rounding.
	out[count-1] = round(hi, prec)
	return out, nil
}

func round(v float64, prec Precision) float64 {
	if prec == Float32 {
		return float64(float32(v))
	}
	return v
}
